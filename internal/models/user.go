package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // bcrypt, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// MaxUsernameLength is the maximum username length in bytes
const MaxUsernameLength = 64

// MaxPasswordLength is the longest password bcrypt will accept
const MaxPasswordLength = 72

// Credentials is the register/login form payload
type Credentials struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}
