package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tsm98/social-mern/internal/profile"
)

type ProfileStore struct {
	mu     sync.RWMutex
	byUser map[string]profile.Profile
}

func NewProfileStore() *ProfileStore {
	return &ProfileStore{byUser: make(map[string]profile.Profile)}
}

func (s *ProfileStore) Upsert(_ context.Context, p profile.Profile) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Skills = append([]string{}, p.Skills...)
	s.byUser[p.UserID] = p
	return p, nil
}

func (s *ProfileStore) FindByUser(_ context.Context, userID string) (profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byUser[userID]
	if !ok {
		return profile.Profile{}, profile.ErrProfileNotFound
	}
	p.Skills = append([]string{}, p.Skills...)
	return p, nil
}

func (s *ProfileStore) List(_ context.Context) ([]profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]profile.Profile, 0, len(s.byUser))
	for _, p := range s.byUser {
		p.Skills = append([]string{}, p.Skills...)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *ProfileStore) DeleteByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUser[userID]; !ok {
		return profile.ErrProfileNotFound
	}
	delete(s.byUser, userID)
	return nil
}
