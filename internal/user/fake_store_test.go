package user

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	mu    sync.Mutex
	users map[string]User
	err   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]User{}}
}

func (f *fakeStore) Create(_ context.Context, u User) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return User{}, f.err
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return User{}, ErrEmailTaken
		}
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return User{}, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fastHash swaps bcrypt's default cost for the minimum for the test's
// duration.
func fastHash(t interface{ Cleanup(func()) }) {
	old := hashPasswordFn
	hashPasswordFn = func(pw []byte, _ int) ([]byte, error) {
		return bcrypt.GenerateFromPassword(pw, bcrypt.MinCost)
	}
	t.Cleanup(func() { hashPasswordFn = old })
}
