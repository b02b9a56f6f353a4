// Package mongodb implements the stores on MongoDB. A post is a single
// document with its likes and comments embedded, replaced as a whole on save
// under a version filter.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tsm98/social-mern/internal/post"
	"github.com/tsm98/social-mern/internal/profile"
	"github.com/tsm98/social-mern/internal/user"
)

var _ user.Store = (*UserStore)(nil)
var _ post.Store = (*PostStore)(nil)
var _ profile.Store = (*ProfileStore)(nil)

const (
	usersCollection    = "users"
	postsCollection    = "posts"
	profilesCollection = "profiles"
)

// EnsureIndexes creates the unique and sort indexes the stores rely on.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{usersCollection, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{postsCollection, mongo.IndexModel{Keys: bson.D{{Key: "date", Value: -1}}}},
		{postsCollection, mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}}},
		{profilesCollection, mongo.IndexModel{Keys: bson.D{{Key: "user", Value: 1}}, Options: options.Index().SetUnique(true)}},
	}
	for _, idx := range indexes {
		if _, err := database.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}
