package post

import (
	"encoding/json"
	"log"
)

// FeedTopic receives every post event; each event is also sent on a topic
// named after the post id.
const FeedTopic = "feed"

const (
	EventPostCreated    = "post.created"
	EventPostDeleted    = "post.deleted"
	EventPostLiked      = "post.liked"
	EventPostUnliked    = "post.unliked"
	EventCommentAdded   = "comment.added"
	EventCommentRemoved = "comment.removed"
)

type Event struct {
	Type     string    `json:"type"`
	PostID   string    `json:"post_id"`
	Post     *Post     `json:"post,omitempty"`
	Likes    []Like    `json:"likes,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
}

// Publisher fans events out to subscribers of a topic.
type Publisher interface {
	Broadcast(topic string, payload []byte)
}

func (s *Service) publish(ev Event) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("post event %s: %v", ev.Type, err)
		return
	}
	s.events.Broadcast(FeedTopic, payload)
	s.events.Broadcast(ev.PostID, payload)
}
