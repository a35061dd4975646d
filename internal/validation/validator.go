package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blog-publishing-api/internal/models"
	"github.com/google/uuid"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) String() string {
	return e.Field + ": " + e.Message
}

// Validator provides validation methods for form input
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCredentials validates a username/password pair.
// Usernames are case-sensitive and compared byte for byte, so no folding happens here.
func (v *Validator) ValidateCredentials(username, password string) []ValidationError {
	var errors []ValidationError

	// Validate username
	if username == "" {
		errors = append(errors, ValidationError{Field: "username", Message: "username is required"})
	} else if len(username) > models.MaxUsernameLength {
		errors = append(errors, ValidationError{
			Field:   "username",
			Message: fmt.Sprintf("username exceeds maximum of %d bytes", models.MaxUsernameLength),
		})
	} else if !WellFormed(username) {
		errors = append(errors, ValidationError{Field: "username", Message: "username must be valid UTF-8 without NUL bytes"})
	} else if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		errors = append(errors, ValidationError{Field: "username", Message: "username must not contain whitespace", Value: username})
	}

	// Validate password, never echo the value back
	if password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	} else if len(password) > models.MaxPasswordLength {
		errors = append(errors, ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password exceeds maximum of %d bytes", models.MaxPasswordLength),
		})
	}

	return errors
}

// ValidatePost validates a new post
func (v *Validator) ValidatePost(title, text string) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	} else if !WellFormed(title) {
		errors = append(errors, ValidationError{Field: "title", Message: "title must be valid UTF-8 without NUL bytes"})
	} else if utf8.RuneCountInString(title) > models.MaxTitleLength {
		errors = append(errors, ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title exceeds maximum of %d characters", models.MaxTitleLength),
		})
	}

	if strings.TrimSpace(text) == "" {
		errors = append(errors, ValidationError{Field: "text", Message: "text is required"})
	} else if !WellFormed(text) {
		errors = append(errors, ValidationError{Field: "text", Message: "text must be valid UTF-8 without NUL bytes"})
	}

	return errors
}

// ValidateComment validates comment text. Callers trim before validating.
func (v *Validator) ValidateComment(text string) []ValidationError {
	var errors []ValidationError

	if text == "" {
		errors = append(errors, ValidationError{Field: "comment", Message: "comment is required"})
	} else if !WellFormed(text) {
		errors = append(errors, ValidationError{Field: "comment", Message: "comment must be valid UTF-8 without NUL bytes"})
	} else {
		// Check word count (max 500 words)
		wordCount := len(strings.Fields(text))
		if wordCount > models.MaxCommentWords {
			errors = append(errors, ValidationError{
				Field:   "comment",
				Message: fmt.Sprintf("comment exceeds maximum of %d words (has %d)", models.MaxCommentWords, wordCount),
			})
		}
	}

	return errors
}

// WellFormed reports whether s is valid UTF-8 free of NUL bytes, which
// PostgreSQL text columns reject.
func WellFormed(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// IsValidID checks if a string is a valid UUID
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
