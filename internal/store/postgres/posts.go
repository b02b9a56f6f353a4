package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tsm98/social-mern/internal/db"
	"github.com/tsm98/social-mern/internal/post"
)

const postColumns = `id, text, author_name, author_avatar, author_id, date, likes, comments, version`

type PostStore struct {
	db db.Querier
}

func NewPostStore(q db.Querier) *PostStore {
	return &PostStore{db: q}
}

func (s *PostStore) Create(ctx context.Context, p post.Post) (post.Post, error) {
	p = p.Clone()
	likes, comments, err := encodeEmbedded(p)
	if err != nil {
		return post.Post{}, err
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO posts (id, text, author_name, author_avatar, author_id, date, likes, comments, version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,1)
	`, p.ID, p.Text, p.AuthorName, p.AuthorAvatar, p.AuthorID, p.Date, likes, comments)
	if err != nil {
		return post.Post{}, fmt.Errorf("insert post: %w", err)
	}
	p.Version = 1
	return p, nil
}

func (s *PostStore) FindByID(ctx context.Context, id string) (post.Post, error) {
	row := s.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return post.Post{}, post.ErrPostNotFound
	}
	if err != nil {
		return post.Post{}, fmt.Errorf("select post %s: %w", id, err)
	}
	return p, nil
}

func (s *PostStore) ListAll(ctx context.Context) ([]post.Post, error) {
	rows, err := s.db.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []post.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Save writes likes and comments only when the row still has p.Version.
func (s *PostStore) Save(ctx context.Context, p post.Post) (post.Post, error) {
	p = p.Clone()
	likes, comments, err := encodeEmbedded(p)
	if err != nil {
		return post.Post{}, err
	}
	row := s.db.QueryRow(ctx, `
		UPDATE posts
		SET likes = $2, comments = $3, version = version + 1
		WHERE id = $1 AND version = $4
		RETURNING version
	`, p.ID, likes, comments, p.Version)
	if err := row.Scan(&p.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrStale
		}
		return post.Post{}, fmt.Errorf("update post %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *PostStore) DeleteByID(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}
	return nil
}

func (s *PostStore) DeleteByAuthor(ctx context.Context, authorID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM posts WHERE author_id = $1`, authorID); err != nil {
		return fmt.Errorf("delete posts of %s: %w", authorID, err)
	}
	return nil
}

func scanPost(row rowScanner) (post.Post, error) {
	var p post.Post
	var likes, comments []byte
	if err := row.Scan(&p.ID, &p.Text, &p.AuthorName, &p.AuthorAvatar, &p.AuthorID, &p.Date, &likes, &comments, &p.Version); err != nil {
		return post.Post{}, err
	}
	if err := decodeJSON(likes, &p.Likes); err != nil {
		return post.Post{}, fmt.Errorf("decode likes: %w", err)
	}
	if err := decodeJSON(comments, &p.Comments); err != nil {
		return post.Post{}, fmt.Errorf("decode comments: %w", err)
	}
	return p.Clone(), nil
}

func encodeEmbedded(p post.Post) ([]byte, []byte, error) {
	likes, err := json.Marshal(p.Likes)
	if err != nil {
		return nil, nil, fmt.Errorf("encode likes: %w", err)
	}
	comments, err := json.Marshal(p.Comments)
	if err != nil {
		return nil, nil, fmt.Errorf("encode comments: %w", err)
	}
	return likes, comments, nil
}

func decodeJSON(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
