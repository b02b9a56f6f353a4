package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tsm98/social-mern/internal/user"
	"github.com/tsm98/social-mern/internal/validate"
)

type Users interface {
	Get(ctx context.Context, id string) (user.User, error)
	Delete(ctx context.Context, id string) error
}

type Posts interface {
	DeleteByAuthor(ctx context.Context, authorID string) error
}

type Service struct {
	store Store
	users Users
	posts Posts
	now   func() time.Time
}

func NewService(store Store, users Users, posts Posts) *Service {
	return &Service{store: store, users: users, posts: posts, now: time.Now}
}

// Upsert creates the caller's profile or replaces its fields.
func (s *Service) Upsert(ctx context.Context, userID string, req UpsertRequest) (Profile, error) {
	if err := validate.Struct(req); err != nil {
		return Profile{}, err
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return Profile{}, err
	}

	p, err := s.store.FindByUser(ctx, userID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		p = Profile{ID: uuid.NewString(), UserID: userID, Date: s.now().UTC()}
	case err != nil:
		return Profile{}, err
	}

	p.Name = u.Name
	p.Avatar = u.Avatar
	p.Status = strings.TrimSpace(req.Status)
	p.Skills = SplitSkills(req.Skills)
	p.Company = req.Company
	p.Website = req.Website
	p.Location = req.Location
	p.Bio = req.Bio
	p.GitHubUsername = req.GitHubUsername
	p.Social = Social{
		YouTube:   req.YouTube,
		Twitter:   req.Twitter,
		Facebook:  req.Facebook,
		LinkedIn:  req.LinkedIn,
		Instagram: req.Instagram,
	}
	return s.store.Upsert(ctx, p)
}

func (s *Service) ByUser(ctx context.Context, userID string) (Profile, error) {
	return s.store.FindByUser(ctx, userID)
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.store.List(ctx)
}

// DeleteAccount removes the user's posts, profile and user record.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.posts.DeleteByAuthor(ctx, userID); err != nil {
		return err
	}
	if err := s.store.DeleteByUser(ctx, userID); err != nil && !errors.Is(err, ErrProfileNotFound) {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return err
	}
	return nil
}

func SplitSkills(raw string) []string {
	skills := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
