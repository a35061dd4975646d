package models

import (
	"time"
)

// Comment represents a comment on a post
type Comment struct {
	ID             string    `json:"id" db:"id"`
	PostID         string    `json:"post_id" db:"post_id"`
	AuthorID       string    `json:"author_id" db:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty" db:"-"` // resolved on read
	Text           string    `json:"text" db:"text"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CommentForm is the add-comment form payload
type CommentForm struct {
	Comment string `json:"comment" form:"comment" binding:"required"`
}

// MaxCommentWords is the maximum allowed words in a comment body
const MaxCommentWords = 500
