package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tsm98/social-mern/internal/validate"
)

var (
	hashPasswordFn    = bcrypt.GenerateFromPassword
	comparePasswordFn = bcrypt.CompareHashAndPassword
)

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, error) {
	req.Email = NormalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return User{}, err
	}

	email := req.Email
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hash, err := hashPasswordFn([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.store.Create(ctx, User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        email,
		Avatar:       GravatarURL(email),
		PasswordHash: string(hash),
		Date:         s.now().UTC(),
	})
}

// Authenticate returns ErrInvalidCredentials for both an unknown email and a
// wrong password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if err := comparePasswordFn([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
