package domain

import "time"

const AnonymousAuthor = "Anonymous"

// Comment on a roadmap item. A comment with a ParentID is a reply; replies are never listed at
// the top level and are nested only one level deep.
type Comment struct {
	ID              string    `json:"id"`
	Body            string    `json:"body"`
	AuthorName      string    `json:"author_name"`
	AuthorAvatarURL string    `json:"author_avatar_url"`
	LikeCount       int       `json:"like_count"`
	Liked           bool      `json:"liked"`
	ItemID          string    `json:"item_id"`
	ParentID        *string   `json:"parent_id"`
	Replies         []Comment `json:"replies"`
	CreatedAt       time.Time `json:"created_at"`
}

func (c Comment) IsReply() bool {
	return c.ParentID != nil
}
