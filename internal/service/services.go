package service

import (
	"context"

	"github.com/blog-publishing-api/internal/config"
	"github.com/blog-publishing-api/internal/models"
	"github.com/blog-publishing-api/internal/repository"
	"github.com/blog-publishing-api/internal/session"
	"github.com/rs/zerolog"
)

// CredentialService registers users and verifies their passwords
type CredentialService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, username, password string) (string, error)
}

// ContentService manages posts and their comment sequences
type ContentService interface {
	CreatePost(ctx context.Context, author session.Identity, title, text string) (string, error)
	ListPosts(ctx context.Context) ([]*models.PostSummary, error)
	GetPost(ctx context.Context, postID string) (*models.PostWithComments, error)
	AddComment(ctx context.Context, author session.Identity, postID, text string) (string, error)
}

// AuthFlowService orchestrates register, login and logout against the session
type AuthFlowService interface {
	HandleRegister(ctx context.Context, username, password string) error
	HandleLogin(ctx context.Context, username, password string) (session.Identity, error)
	HandleLogout(ctx context.Context) error
}

// StatsService reports row counts
type StatsService interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

// SessionStore attaches identities to, and destroys, the session in ctx.
// session.Manager satisfies it.
type SessionStore interface {
	Attach(ctx context.Context, id session.Identity) error
	Destroy(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Credentials CredentialService
	Content     ContentService
	AuthFlow    AuthFlowService
	Stats       StatsService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, sessions SessionStore, cfg *config.Config, log zerolog.Logger) (*Services, error) {
	credentials, err := newCredentialService(repos.User, cfg.Auth, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		Credentials: credentials,
		Content:     newContentService(repos, log),
		AuthFlow:    newAuthFlowService(credentials, sessions, log),
		Stats:       newStatsService(repos),
	}, nil
}
