package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tsm98/social-mern/internal/post"
)

type postDoc struct {
	ID           string       `bson:"_id"`
	Text         string       `bson:"text"`
	AuthorName   string       `bson:"name"`
	AuthorAvatar string       `bson:"avatar"`
	AuthorID     string       `bson:"user"`
	Date         time.Time    `bson:"date"`
	Likes        []likeDoc    `bson:"likes"`
	Comments     []commentDoc `bson:"comments"`
	Version      int64        `bson:"version"`
}

type likeDoc struct {
	UserID string `bson:"user"`
}

type commentDoc struct {
	ID           string    `bson:"_id"`
	Text         string    `bson:"text"`
	AuthorName   string    `bson:"name"`
	AuthorAvatar string    `bson:"avatar"`
	AuthorID     string    `bson:"user"`
	Date         time.Time `bson:"date"`
}

func toPostDoc(p post.Post) postDoc {
	doc := postDoc{
		ID:           p.ID,
		Text:         p.Text,
		AuthorName:   p.AuthorName,
		AuthorAvatar: p.AuthorAvatar,
		AuthorID:     p.AuthorID,
		Date:         p.Date,
		Likes:        make([]likeDoc, 0, len(p.Likes)),
		Comments:     make([]commentDoc, 0, len(p.Comments)),
		Version:      p.Version,
	}
	for _, l := range p.Likes {
		doc.Likes = append(doc.Likes, likeDoc{UserID: l.UserID})
	}
	for _, c := range p.Comments {
		doc.Comments = append(doc.Comments, commentDoc{
			ID:           c.ID,
			Text:         c.Text,
			AuthorName:   c.AuthorName,
			AuthorAvatar: c.AuthorAvatar,
			AuthorID:     c.AuthorID,
			Date:         c.Date,
		})
	}
	return doc
}

// fromPostDoc restores the comment's post id, which is implied by nesting.
func fromPostDoc(doc postDoc) post.Post {
	p := post.Post{
		ID:           doc.ID,
		Text:         doc.Text,
		AuthorName:   doc.AuthorName,
		AuthorAvatar: doc.AuthorAvatar,
		AuthorID:     doc.AuthorID,
		Date:         doc.Date,
		Likes:        make([]post.Like, 0, len(doc.Likes)),
		Comments:     make([]post.Comment, 0, len(doc.Comments)),
		Version:      doc.Version,
	}
	for _, l := range doc.Likes {
		p.Likes = append(p.Likes, post.Like{UserID: l.UserID})
	}
	for _, c := range doc.Comments {
		p.Comments = append(p.Comments, post.Comment{
			ID:           c.ID,
			Text:         c.Text,
			AuthorName:   c.AuthorName,
			AuthorAvatar: c.AuthorAvatar,
			AuthorID:     c.AuthorID,
			PostID:       doc.ID,
			Date:         c.Date,
		})
	}
	return p
}

type PostStore struct {
	coll *mongo.Collection
}

func NewPostStore(database *mongo.Database) *PostStore {
	return &PostStore{coll: database.Collection(postsCollection)}
}

func (s *PostStore) Create(ctx context.Context, p post.Post) (post.Post, error) {
	p.Version = 1
	doc := toPostDoc(p)
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return post.Post{}, fmt.Errorf("insert post: %w", err)
	}
	return fromPostDoc(doc), nil
}

func (s *PostStore) FindByID(ctx context.Context, id string) (post.Post, error) {
	var doc postDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return post.Post{}, post.ErrPostNotFound
	}
	if err != nil {
		return post.Post{}, fmt.Errorf("find post %s: %w", id, err)
	}
	return fromPostDoc(doc), nil
}

func (s *PostStore) ListAll(ctx context.Context) ([]post.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]post.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, fromPostDoc(doc))
	}
	return posts, nil
}

// Save replaces the document only if it still carries p.Version.
func (s *PostStore) Save(ctx context.Context, p post.Post) (post.Post, error) {
	filter := bson.D{{Key: "_id", Value: p.ID}, {Key: "version", Value: p.Version}}
	doc := toPostDoc(p)
	doc.Version = p.Version + 1
	res, err := s.coll.ReplaceOne(ctx, filter, doc)
	if err != nil {
		return post.Post{}, fmt.Errorf("replace post %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return post.Post{}, post.ErrStale
	}
	return fromPostDoc(doc), nil
}

func (s *PostStore) DeleteByID(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (s *PostStore) DeleteByAuthor(ctx context.Context, authorID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.D{{Key: "user", Value: authorID}}); err != nil {
		return fmt.Errorf("delete posts of %s: %w", authorID, err)
	}
	return nil
}
