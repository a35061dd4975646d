package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/blog-publishing-api/internal/config"
	"github.com/blog-publishing-api/internal/mocks"
	"github.com/blog-publishing-api/internal/service"
	"github.com/blog-publishing-api/internal/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeSessions records what the auth flow does to the session
type fakeSessions struct {
	mu        sync.Mutex
	attached  *session.Identity
	destroyed int
	attachErr error
}

func (f *fakeSessions) Attach(ctx context.Context, id session.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attachErr != nil {
		return f.attachErr
	}
	f.attached = &id
	return nil
}

func (f *fakeSessions) Destroy(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attached = nil
	f.destroyed++
	return nil
}

type testHarness struct {
	services    *service.Services
	userRepo    *mocks.MockUserRepository
	postRepo    *mocks.MockPostRepository
	commentRepo *mocks.MockCommentRepository
	sessions    *fakeSessions
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost},
	}
}

func newTestHarness(t testing.TB) *testHarness {
	t.Helper()

	repos, users, posts, comments := mocks.NewMockRepositories()
	sessions := &fakeSessions{}

	services, err := service.NewServices(repos, sessions, testConfig(), zerolog.Nop())
	require.NoError(t, err)

	return &testHarness{
		services:    services,
		userRepo:    users,
		postRepo:    posts,
		commentRepo: comments,
		sessions:    sessions,
	}
}

// register creates a user and returns its identity
func (h *testHarness) register(t testing.TB, username, password string) session.Identity {
	t.Helper()
	id, err := h.services.Credentials.Register(context.Background(), username, password)
	require.NoError(t, err)
	return session.Identity{UserID: id, Username: username}
}
