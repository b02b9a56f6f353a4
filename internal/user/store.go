package user

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Store persists users. Emails are unique; Create returns ErrEmailTaken on a
// duplicate and lookups return ErrUserNotFound.
type Store interface {
	Create(ctx context.Context, u User) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Delete(ctx context.Context, id string) error
}
