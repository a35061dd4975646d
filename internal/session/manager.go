package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/blog-publishing-api/internal/config"
	"github.com/rs/zerolog"
)

const (
	keyUserID   = "user_id"
	keyUsername = "username"
)

// Manager attaches, reads and destroys session identities
type Manager struct {
	sm  *scs.SessionManager
	log zerolog.Logger
}

// NewManager creates a Manager over the given store. Idle timeout and
// absolute lifetime both come from configuration.
func NewManager(cfg config.SessionConfig, store scs.Store, log zerolog.Logger) *Manager {
	sm := scs.New()
	// scs.New starts a cleanup goroutine for its default memstore
	if def, ok := sm.Store.(*memstore.MemStore); ok {
		def.StopCleanup()
	}
	sm.Store = store
	sm.IdleTimeout = cfg.IdleTimeout
	sm.Lifetime = cfg.Lifetime
	sm.Cookie.Name = cfg.CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.CookieSecure
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	m := &Manager{
		sm:  sm,
		log: log.With().Str("component", "session").Logger(),
	}
	sm.ErrorFunc = m.handleError
	return m
}

// LoadAndSave loads the session for each request and commits it afterwards
func (m *Manager) LoadAndSave(next http.Handler) http.Handler {
	return m.sm.LoadAndSave(next)
}

// Load loads the session for token into ctx. An unknown or expired token
// yields an empty session.
func (m *Manager) Load(ctx context.Context, token string) (context.Context, error) {
	return m.sm.Load(ctx, token)
}

// Commit persists the session in ctx and returns its token
func (m *Manager) Commit(ctx context.Context) (string, time.Time, error) {
	return m.sm.Commit(ctx)
}

// Identity returns the identity attached to the session in ctx
func (m *Manager) Identity(ctx context.Context) (Identity, bool) {
	userID := m.sm.GetString(ctx, keyUserID)
	if userID == "" {
		return Identity{}, false
	}
	return Identity{UserID: userID, Username: m.sm.GetString(ctx, keyUsername)}, true
}

// Attach binds id to the session, issuing a fresh token first so a token
// obtained before login cannot be reused afterwards.
func (m *Manager) Attach(ctx context.Context, id Identity) error {
	if err := m.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renew session token: %w", err)
	}
	m.sm.Put(ctx, keyUserID, id.UserID)
	m.sm.Put(ctx, keyUsername, id.Username)
	return nil
}

// Destroy removes the session from the store. Destroying a session that
// was never stored is not an error.
func (m *Manager) Destroy(ctx context.Context) error {
	if err := m.sm.Destroy(ctx); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (m *Manager) handleError(w http.ResponseWriter, r *http.Request, err error) {
	m.log.Error().Err(err).Str("path", r.URL.Path).Msg("Session store failure")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
