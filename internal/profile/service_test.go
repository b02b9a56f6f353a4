package profile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tsm98/social-mern/internal/apierr"
	"github.com/tsm98/social-mern/internal/post"
	"github.com/tsm98/social-mern/internal/profile"
	"github.com/tsm98/social-mern/internal/store/memory"
	"github.com/tsm98/social-mern/internal/user"
)

type fixture struct {
	users    *memory.UserStore
	posts    *post.Service
	profiles *profile.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	users := memory.NewUserStore()
	_, err := users.Create(context.Background(), user.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Avatar: "//ann"})
	require.NoError(t, err)

	userSvc := user.NewService(users)
	posts := post.NewService(memory.NewPostStore(), userSvc, nil)
	return fixture{
		users:    users,
		posts:    posts,
		profiles: profile.NewService(memory.NewProfileStore(), userSvc, posts),
	}
}

func TestUpsertCreatesThenUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.profiles.Upsert(ctx, "u1", profile.UpsertRequest{
		Status: "Developer", Skills: "go, sql ,, docker", Twitter: "https://twitter.com/ann",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "sql", "docker"}, created.Skills)
	require.Equal(t, "Ann", created.Name)
	require.Equal(t, "https://twitter.com/ann", created.Social.Twitter)

	updated, err := f.profiles.Upsert(ctx, "u1", profile.UpsertRequest{Status: "Lead", Skills: "go"})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, created.Date, updated.Date)
	require.Equal(t, "Lead", updated.Status)
	require.Empty(t, updated.Social.Twitter)

	all, err := f.profiles.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpsertValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.profiles.Upsert(context.Background(), "u1", profile.UpsertRequest{Website: "not a url"})
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	require.Len(t, apiErr.Messages, 3)
}

func TestUpsertUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.profiles.Upsert(context.Background(), "ghost", profile.UpsertRequest{Status: "x", Skills: "y"})
	require.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.profiles.Upsert(ctx, "u1", profile.UpsertRequest{Status: "Developer", Skills: "go"})
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, "u1", "hello")
	require.NoError(t, err)

	require.NoError(t, f.profiles.DeleteAccount(ctx, "u1"))

	_, err = f.profiles.ByUser(ctx, "u1")
	require.ErrorIs(t, err, profile.ErrProfileNotFound)
	_, err = f.users.FindByID(ctx, "u1")
	require.ErrorIs(t, err, user.ErrUserNotFound)
	posts, err := f.posts.List(ctx)
	require.NoError(t, err)
	require.Empty(t, posts)

	require.NoError(t, f.profiles.DeleteAccount(ctx, "u1"), "deleting twice is not an error")
}

func TestSplitSkills(t *testing.T) {
	require.Equal(t, []string{}, profile.SplitSkills(" , "))
	require.Equal(t, []string{"a", "b"}, profile.SplitSkills("a,b"))
}
