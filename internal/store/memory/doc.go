// Package memory implements the user, post and profile stores in process
// memory for development and tests.
package memory

import (
	"github.com/tsm98/social-mern/internal/post"
	"github.com/tsm98/social-mern/internal/profile"
	"github.com/tsm98/social-mern/internal/user"
)

// Ensure interfaces are met.
var _ user.Store = (*UserStore)(nil)
var _ post.Store = (*PostStore)(nil)
var _ profile.Store = (*ProfileStore)(nil)
