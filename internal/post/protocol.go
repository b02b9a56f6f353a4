package post

import "strings"

// AddLike prepends a like by userID. A user likes a post at most once.
func AddLike(p *Post, userID string) error {
	if indexOfLike(p.Likes, userID) >= 0 {
		return ErrAlreadyLiked
	}
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
	return nil
}

// RemoveLike drops the like by userID.
func RemoveLike(p *Post, userID string) error {
	i := indexOfLike(p.Likes, userID)
	if i < 0 {
		return ErrNotLiked
	}
	p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
	return nil
}

func HasLiked(p Post, userID string) bool {
	return indexOfLike(p.Likes, userID) >= 0
}

func indexOfLike(likes []Like, userID string) int {
	for i, l := range likes {
		if l.UserID == userID {
			return i
		}
	}
	return -1
}

// AddComment prepends c. The comment text must not be blank.
func AddComment(p *Post, c Comment) error {
	if strings.TrimSpace(c.Text) == "" {
		return ErrEmptyText
	}
	c.PostID = p.ID
	p.Comments = append([]Comment{c}, p.Comments...)
	return nil
}

// RemoveComment deletes the comment with commentID. Only its author may
// remove it.
func RemoveComment(p *Post, requesterID, commentID string) error {
	i := -1
	for j, c := range p.Comments {
		if c.ID == commentID {
			i = j
			break
		}
	}
	if i < 0 {
		return ErrCommentNotFound
	}
	if p.Comments[i].AuthorID != requesterID {
		return ErrNotAuthor
	}
	p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
	return nil
}
