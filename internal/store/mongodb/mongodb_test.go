package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tsm98/social-mern/internal/post"
	"github.com/tsm98/social-mern/internal/user"
)

func TestPostDocRestoresCommentPostID(t *testing.T) {
	now := time.Now().UTC()
	p := post.Post{
		ID:       "p1",
		Text:     "hello",
		AuthorID: "u1",
		Date:     now,
		Likes:    []post.Like{{UserID: "u2"}},
		Comments: []post.Comment{{ID: "c1", Text: "hi", AuthorID: "u2", Date: now}},
		Version:  2,
	}

	raw, err := bson.Marshal(toPostDoc(p))
	require.NoError(t, err)

	var doc postDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	got := fromPostDoc(doc)

	require.Equal(t, "p1", got.Comments[0].PostID)
	require.Equal(t, "u2", got.Likes[0].UserID)
	require.EqualValues(t, 2, got.Version)
}

func TestPostDocEmptySlices(t *testing.T) {
	got := fromPostDoc(postDoc{ID: "p1"})
	require.NotNil(t, got.Likes)
	require.NotNil(t, got.Comments)
}

// testDatabase connects to SOCIAL_TEST_MONGO_URI and drops the database when
// the test finishes.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("SOCIAL_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SOCIAL_TEST_MONGO_URI not set")
	}
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)

	database := client.Database("social_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = database.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	require.NoError(t, EnsureIndexes(context.Background(), database))
	return database
}

func TestMongoPostStoreSaveChecksVersion(t *testing.T) {
	database := testDatabase(t)
	ctx := context.Background()
	store := NewPostStore(database)

	created, err := store.Create(ctx, post.Post{ID: "p1", Text: "hello", AuthorID: "u1", Date: time.Now()})
	require.NoError(t, err)
	require.EqualValues(t, 1, created.Version)

	liked := created.Clone()
	liked.Likes = append(liked.Likes, post.Like{UserID: "u2"})
	saved, err := store.Save(ctx, liked)
	require.NoError(t, err)
	require.EqualValues(t, 2, saved.Version)

	_, err = store.Save(ctx, liked)
	require.ErrorIs(t, err, post.ErrStale)

	loaded, err := store.FindByID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, loaded.Likes, 1)
}

func TestMongoUserStoreUniqueEmail(t *testing.T) {
	database := testDatabase(t)
	ctx := context.Background()
	store := NewUserStore(database)

	_, err := store.Create(ctx, user.User{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)
	_, err = store.Create(ctx, user.User{ID: "u2", Email: "a@example.com"})
	require.ErrorIs(t, err, user.ErrEmailTaken)
}
