package post

import "time"

type Post struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	AuthorID     string    `json:"author_id"`
	Date         time.Time `json:"date"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	// Version is bumped by every successful Save.
	Version int64 `json:"-"`
}

type Like struct {
	UserID string `json:"user_id"`
}

type Comment struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	AuthorID     string    `json:"author_id"`
	PostID       string    `json:"post_id"`
	Date         time.Time `json:"date"`
}

type TextRequest struct {
	Text string `json:"text" validate:"notblank"`
}

// Clone returns a copy whose likes and comments do not share backing arrays
// with p.
func (p Post) Clone() Post {
	out := p
	out.Likes = append(make([]Like, 0, len(p.Likes)), p.Likes...)
	out.Comments = append(make([]Comment, 0, len(p.Comments)), p.Comments...)
	return out
}
