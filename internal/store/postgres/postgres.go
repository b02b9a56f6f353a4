// Package postgres implements the stores on PostgreSQL. Posts are kept as
// documents: likes and comments live in JSONB columns of the post row and a
// version column guards read-modify-write updates.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tsm98/social-mern/internal/post"
	"github.com/tsm98/social-mern/internal/profile"
	"github.com/tsm98/social-mern/internal/user"
)

var _ user.Store = (*UserStore)(nil)
var _ post.Store = (*PostStore)(nil)
var _ profile.Store = (*ProfileStore)(nil)

const uniqueViolation = "23505"

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
