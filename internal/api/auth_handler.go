package api

import (
	"errors"
	"net/http"

	"github.com/blog-publishing-api/internal/metrics"
	"github.com/blog-publishing-api/internal/models"
	"github.com/blog-publishing-api/internal/service"
	"github.com/blog-publishing-api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles register, login and logout
type AuthHandler struct {
	services *service.Services
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, m *metrics.Metrics, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		metrics:  m,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": "login"})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		h.metrics.RecordAuth("login", "invalid_form")
		respondBindError(c, err)
		return
	}

	id, err := h.services.AuthFlow.HandleLogin(c.Request.Context(), creds.Username, creds.Password)
	if err != nil {
		h.metrics.RecordAuth("login", authOutcome(err))
		respondError(c, h.log.With().Str("username", creds.Username).Logger(), err)
		return
	}

	h.metrics.RecordAuth("login", "success")
	h.log.Debug().Str("user_id", id.UserID).Msg("Login succeeded")
	c.Redirect(http.StatusSeeOther, session.HomePath)
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": "register"})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBind(&creds); err != nil {
		h.metrics.RecordAuth("register", "invalid_form")
		respondBindError(c, err)
		return
	}

	if err := h.services.AuthFlow.HandleRegister(c.Request.Context(), creds.Username, creds.Password); err != nil {
		h.metrics.RecordAuth("register", authOutcome(err))
		respondError(c, h.log, err)
		return
	}

	h.metrics.RecordAuth("register", "success")
	c.Redirect(http.StatusSeeOther, session.LoginPath)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.services.AuthFlow.HandleLogout(c.Request.Context()); err != nil {
		h.metrics.RecordAuth("logout", "error")
		respondError(c, h.log, err)
		return
	}

	h.metrics.RecordAuth("logout", "success")
	c.Redirect(http.StatusSeeOther, session.LoginPath)
}

func authOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrWrongPassword):
		return "invalid_credentials"
	case errors.Is(err, service.ErrDuplicateUsername):
		return "duplicate"
	case errors.Is(err, service.ErrValidation):
		return "invalid_form"
	default:
		return "error"
	}
}
