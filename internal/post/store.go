package post

import (
	"context"
	"errors"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrNotAuthor       = errors.New("user not authorized")
	ErrEmptyText       = errors.New("text is required")
	// ErrStale is returned by Store.Save when the stored version no longer
	// matches the version the caller read.
	ErrStale = errors.New("post was modified concurrently")
)

// Store is the post collection. Each post is one document; operations are
// atomic per post.
type Store interface {
	Create(ctx context.Context, p Post) (Post, error)
	FindByID(ctx context.Context, id string) (Post, error)
	// ListAll returns every post, newest first.
	ListAll(ctx context.Context) ([]Post, error)
	// Save persists likes and comments of p if p.Version is current and
	// returns the post with its new version.
	Save(ctx context.Context, p Post) (Post, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByAuthor(ctx context.Context, authorID string) error
}
