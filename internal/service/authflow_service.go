package service

import (
	"context"

	"github.com/blog-publishing-api/internal/session"
	"github.com/rs/zerolog"
)

// authFlowService is the concrete implementation of AuthFlowService
type authFlowService struct {
	credentials CredentialService
	sessions    SessionStore
	log         zerolog.Logger
}

// newAuthFlowService creates a new AuthFlowService
func newAuthFlowService(credentials CredentialService, sessions SessionStore, log zerolog.Logger) *authFlowService {
	return &authFlowService{
		credentials: credentials,
		sessions:    sessions,
		log:         log.With().Str("service", "authflow").Logger(),
	}
}

// HandleRegister registers the user without touching the session
func (s *authFlowService) HandleRegister(ctx context.Context, username, password string) error {
	_, err := s.credentials.Register(ctx, username, password)
	return err
}

// HandleLogin verifies credentials and attaches the identity to the
// session. Nothing is attached on failure.
func (s *authFlowService) HandleLogin(ctx context.Context, username, password string) (session.Identity, error) {
	userID, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		return session.Identity{}, err
	}

	id := session.Identity{UserID: userID, Username: username}
	if err := s.sessions.Attach(ctx, id); err != nil {
		return session.Identity{}, serverError(CodeSession, "attach identity", err)
	}

	s.log.Info().Str("user_id", userID).Str("username", username).Msg("User logged in")
	return id, nil
}

// HandleLogout destroys the session. Logging out twice is not an error.
func (s *authFlowService) HandleLogout(ctx context.Context) error {
	if err := s.sessions.Destroy(ctx); err != nil {
		return serverError(CodeSession, "destroy session", err)
	}
	return nil
}
