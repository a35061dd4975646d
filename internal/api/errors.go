package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blog-publishing-api/internal/service"
	"github.com/blog-publishing-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// msgInvalidCredentials is the only login failure clients ever see
const msgInvalidCredentials = "invalid username or password"

// respondError maps a service error to a status code and JSON body.
// Server errors are logged with their cause and rendered generically.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var vErr *service.ValidationFailedError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": vErr.Errors})
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrWrongPassword):
		log.Warn().Err(err).Msg("Login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": msgInvalidCredentials})
	case errors.Is(err, service.ErrDuplicateUsername):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondBindError renders a form binding failure as field errors
func respondBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	details := make([]validation.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.ToLower(fe.Field())
		details = append(details, validation.ValidationError{Field: field, Message: field + " is " + fe.Tag()})
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": details})
}
