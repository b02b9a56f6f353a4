package profile

import (
	"context"
	"errors"
)

var ErrProfileNotFound = errors.New("profile not found")

// Store keeps at most one profile per user.
type Store interface {
	Upsert(ctx context.Context, p Profile) (Profile, error)
	FindByUser(ctx context.Context, userID string) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	DeleteByUser(ctx context.Context, userID string) error
}
