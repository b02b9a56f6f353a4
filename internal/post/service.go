package post

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tsm98/social-mern/internal/metrics"
	"github.com/tsm98/social-mern/internal/user"
)

// maxSaveAttempts bounds how often a like or comment mutation is re-applied
// after losing a version race.
const maxSaveAttempts = 3

// Authors resolves the display name and avatar copied onto posts and comments.
type Authors interface {
	Get(ctx context.Context, id string) (user.User, error)
}

type Service struct {
	store  Store
	users  Authors
	events Publisher
	now    func() time.Time
}

// NewService wires the post service. events may be nil.
func NewService(store Store, users Authors, events Publisher) *Service {
	return &Service{store: store, users: users, events: events, now: time.Now}
}

func (s *Service) Create(ctx context.Context, authorID, text string) (Post, error) {
	if strings.TrimSpace(text) == "" {
		return Post{}, ErrEmptyText
	}
	author, err := s.users.Get(ctx, authorID)
	if err != nil {
		return Post{}, err
	}

	created, err := s.store.Create(ctx, Post{
		ID:           uuid.NewString(),
		Text:         text,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		AuthorID:     author.ID,
		Date:         s.now().UTC(),
		Likes:        []Like{},
		Comments:     []Comment{},
	})
	if err != nil {
		return Post{}, err
	}
	s.publish(Event{Type: EventPostCreated, PostID: created.ID, Post: &created})
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Post, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Post, error) {
	return s.store.FindByID(ctx, id)
}

// Delete removes the post if requesterID is its author.
func (s *Service) Delete(ctx context.Context, requesterID, id string) error {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.AuthorID != requesterID {
		return ErrNotAuthor
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.publish(Event{Type: EventPostDeleted, PostID: id})
	return nil
}

func (s *Service) DeleteByAuthor(ctx context.Context, authorID string) error {
	return s.store.DeleteByAuthor(ctx, authorID)
}

func (s *Service) Like(ctx context.Context, postID, userID string) ([]Like, error) {
	p, err := s.mutate(ctx, "like", postID, func(p *Post) error {
		return AddLike(p, userID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: EventPostLiked, PostID: p.ID, Likes: p.Likes})
	return p.Likes, nil
}

func (s *Service) Unlike(ctx context.Context, postID, userID string) ([]Like, error) {
	p, err := s.mutate(ctx, "unlike", postID, func(p *Post) error {
		return RemoveLike(p, userID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: EventPostUnliked, PostID: p.ID, Likes: p.Likes})
	return p.Likes, nil
}

func (s *Service) Comment(ctx context.Context, postID, userID, text string) ([]Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	author, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := Comment{
		ID:           uuid.NewString(),
		Text:         text,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		AuthorID:     author.ID,
		Date:         s.now().UTC(),
	}
	p, err := s.mutate(ctx, "comment", postID, func(p *Post) error {
		return AddComment(p, comment)
	})
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: EventCommentAdded, PostID: p.ID, Comments: p.Comments})
	return p.Comments, nil
}

func (s *Service) Uncomment(ctx context.Context, postID, userID, commentID string) ([]Comment, error) {
	p, err := s.mutate(ctx, "uncomment", postID, func(p *Post) error {
		return RemoveComment(p, userID, commentID)
	})
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: EventCommentRemoved, PostID: p.ID, Comments: p.Comments})
	return p.Comments, nil
}

// mutate reads the post, applies fn and saves it. A stale save re-reads and
// re-applies fn, up to maxSaveAttempts in total.
func (s *Service) mutate(ctx context.Context, op, postID string, fn func(*Post) error) (Post, error) {
	for attempt := 1; ; attempt++ {
		p, err := s.store.FindByID(ctx, postID)
		if err != nil {
			metrics.PostMutation(op, err)
			return Post{}, err
		}
		if err := fn(&p); err != nil {
			metrics.PostMutation(op, err)
			return Post{}, err
		}
		saved, err := s.store.Save(ctx, p)
		if errors.Is(err, ErrStale) && attempt < maxSaveAttempts {
			continue
		}
		metrics.PostMutation(op, err)
		return saved, err
	}
}
