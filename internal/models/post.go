package models

import (
	"time"
)

// Post represents a post. CommentIDs is the ordered list of comment
// references; insertion order is display order.
type Post struct {
	ID         string    `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Text       string    `json:"text" db:"text"`
	CommentIDs []string  `json:"comment_ids" db:"comment_ids"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// PostSummary is the list view of a post
type PostSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostWithComments is a post with its comment references resolved in order
type PostWithComments struct {
	Post
	Comments []*Comment `json:"comments"`
}

// PostForm is the create-post form payload
type PostForm struct {
	Title string `json:"title" form:"title" binding:"required"`
	Text  string `json:"text" form:"text" binding:"required"`
}

// MaxTitleLength is the maximum post title length in characters
const MaxTitleLength = 200
