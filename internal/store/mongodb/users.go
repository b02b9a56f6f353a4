package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/tsm98/social-mern/internal/user"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Avatar       string    `bson:"avatar"`
	PasswordHash string    `bson:"password"`
	Date         time.Time `bson:"date"`
}

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(database *mongo.Database) *UserStore {
	return &UserStore{coll: database.Collection(usersCollection)}
}

func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	_, err := s.coll.InsertOne(ctx, userDoc(u))
	if mongo.IsDuplicateKeyError(err) {
		return user.User{}, user.ErrEmailTaken
	}
	if err != nil {
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (user.User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *UserStore) findOne(ctx context.Context, filter bson.D) (user.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("find user: %w", err)
	}
	return user.User(doc), nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
