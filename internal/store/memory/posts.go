package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tsm98/social-mern/internal/post"
)

// PostStore keeps clones of posts so callers never share like or comment
// slices with the stored copy.
type PostStore struct {
	mu    sync.Mutex
	posts map[string]post.Post
}

func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[string]post.Post)}
}

func (s *PostStore) Create(_ context.Context, p post.Post) (post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p = p.Clone()
	p.Version = 1
	s.posts[p.ID] = p
	return p.Clone(), nil
}

func (s *PostStore) FindByID(_ context.Context, id string) (post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return post.Post{}, post.ErrPostNotFound
	}
	return p.Clone(), nil
}

func (s *PostStore) ListAll(_ context.Context) ([]post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]post.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID > out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (s *PostStore) Save(_ context.Context, p post.Post) (post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.posts[p.ID]
	if !ok {
		return post.Post{}, post.ErrPostNotFound
	}
	if current.Version != p.Version {
		return post.Post{}, post.ErrStale
	}
	current.Likes = p.Likes
	current.Comments = p.Comments
	current = current.Clone()
	current.Version++
	s.posts[p.ID] = current
	return current.Clone(), nil
}

func (s *PostStore) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *PostStore) DeleteByAuthor(_ context.Context, authorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.posts {
		if p.AuthorID == authorID {
			delete(s.posts, id)
		}
	}
	return nil
}
