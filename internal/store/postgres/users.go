package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tsm98/social-mern/internal/db"
	"github.com/tsm98/social-mern/internal/user"
)

type UserStore struct {
	db db.Querier
}

func NewUserStore(q db.Querier) *UserStore {
	return &UserStore{db: q}
}

func (s *UserStore) Create(ctx context.Context, u user.User) (user.User, error) {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, name, email, avatar, password_hash, date)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, u.ID, u.Name, u.Email, u.Avatar, u.PasswordHash, u.Date)
	if isUniqueViolation(err) {
		return user.User{}, user.ErrEmailTaken
	}
	if err != nil {
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (user.User, error) {
	return s.findOne(ctx, `
		SELECT id, name, email, avatar, password_hash, date
		FROM users WHERE id = $1
	`, id)
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return s.findOne(ctx, `
		SELECT id, name, email, avatar, password_hash, date
		FROM users WHERE email = $1
	`, email)
}

func (s *UserStore) findOne(ctx context.Context, query string, arg string) (user.User, error) {
	var u user.User
	err := s.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.PasswordHash, &u.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
