package api

import (
	"errors"
	"net/http"

	"github.com/blog-publishing-api/internal/metrics"
	"github.com/blog-publishing-api/internal/models"
	"github.com/blog-publishing-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PostHandler handles post and comment endpoints
type PostHandler struct {
	services *service.Services
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(services *service.Services, m *metrics.Metrics, log zerolog.Logger) *PostHandler {
	return &PostHandler{
		services: services,
		metrics:  m,
		log:      log.With().Str("handler", "posts").Logger(),
	}
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.services.Content.ListPosts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"username": identityFrom(c).Username,
	})
}

// CreatePost handles POST /posts
func (h *PostHandler) CreatePost(c *gin.Context) {
	var form models.PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.metrics.RecordWrite("post", "invalid_form")
		respondBindError(c, err)
		return
	}

	if _, err := h.services.Content.CreatePost(c.Request.Context(), identityFrom(c), form.Title, form.Text); err != nil {
		h.metrics.RecordWrite("post", writeOutcome(err))
		respondError(c, h.log, err)
		return
	}

	h.metrics.RecordWrite("post", "success")
	c.Redirect(http.StatusSeeOther, "/posts")
}

// GetPost handles GET /posts/:id
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.services.Content.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// AddComment handles POST /posts/:id
func (h *PostHandler) AddComment(c *gin.Context) {
	postID := c.Param("id")

	var form models.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		h.metrics.RecordWrite("comment", "invalid_form")
		respondBindError(c, err)
		return
	}

	if _, err := h.services.Content.AddComment(c.Request.Context(), identityFrom(c), postID, form.Comment); err != nil {
		h.metrics.RecordWrite("comment", writeOutcome(err))
		respondError(c, h.log, err)
		return
	}

	h.metrics.RecordWrite("comment", "success")
	c.Redirect(http.StatusSeeOther, "/posts/"+postID)
}

func writeOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrValidation):
		return "invalid_form"
	case errors.Is(err, service.ErrPostNotFound):
		return "not_found"
	default:
		return "error"
	}
}
