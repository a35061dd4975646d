package session

import (
	"context"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/blog-publishing-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		Store:       config.SessionStoreMemory,
		IdleTimeout: time.Minute,
		Lifetime:    time.Hour,
		CookieName:  "session_id",
	}
}

func newTestManager(t *testing.T, cfg config.SessionConfig, store scs.Store) *Manager {
	t.Helper()
	if store == nil {
		store = memstore.NewWithCleanupInterval(0)
	}
	return NewManager(cfg, store, zerolog.Nop())
}

// roundTrip commits the session in ctx and loads it back as a new request would
func roundTrip(t *testing.T, m *Manager, ctx context.Context) (context.Context, string) {
	t.Helper()
	token, _, err := m.Commit(ctx)
	require.NoError(t, err)
	next, err := m.Load(context.Background(), token)
	require.NoError(t, err)
	return next, token
}

func TestNewManager_StartsNoBackgroundWork(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	for i := 0; i < 3; i++ {
		NewManager(testSessionConfig(), memstore.NewWithCleanupInterval(0), zerolog.Nop())
	}
}

func TestManager_AttachAndRead(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m := newTestManager(t, testSessionConfig(), nil)
	ctx, err := m.Load(context.Background(), "")
	require.NoError(t, err)

	_, ok := m.Identity(ctx)
	assert.False(t, ok, "fresh session is anonymous")

	alice := Identity{UserID: "u-1", Username: "alice"}
	require.NoError(t, m.Attach(ctx, alice))

	next, _ := roundTrip(t, m, ctx)
	got, ok := m.Identity(next)
	require.True(t, ok)
	assert.Equal(t, alice, got)
}

func TestManager_AttachRenewsToken(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m := newTestManager(t, testSessionConfig(), nil)
	ctx, err := m.Load(context.Background(), "")
	require.NoError(t, err)
	_, before := roundTrip(t, m, ctx)

	ctx, err = m.Load(context.Background(), before)
	require.NoError(t, err)
	require.NoError(t, m.Attach(ctx, Identity{UserID: "u-1", Username: "alice"}))
	_, after := roundTrip(t, m, ctx)

	assert.NotEqual(t, before, after)

	stale, err := m.Load(context.Background(), before)
	require.NoError(t, err)
	_, ok := m.Identity(stale)
	assert.False(t, ok, "pre-login token must not carry the identity")
}

func TestManager_Destroy(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m := newTestManager(t, testSessionConfig(), nil)
	ctx, err := m.Load(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, m.Attach(ctx, Identity{UserID: "u-1", Username: "alice"}))
	_, token := roundTrip(t, m, ctx)

	ctx, err = m.Load(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, m.Destroy(ctx))
	_, ok := m.Identity(ctx)
	assert.False(t, ok)

	reloaded, err := m.Load(context.Background(), token)
	require.NoError(t, err)
	_, ok = m.Identity(reloaded)
	assert.False(t, ok, "destroyed token resolves to an anonymous session")
}

func TestManager_DestroyIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m := newTestManager(t, testSessionConfig(), nil)
	ctx, err := m.Load(context.Background(), "")
	require.NoError(t, err)

	assert.NoError(t, m.Destroy(ctx))
	assert.NoError(t, m.Destroy(ctx))
}

func TestManager_IdleTimeoutExpiresSession(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cfg := testSessionConfig()
	cfg.IdleTimeout = 20 * time.Millisecond
	m := newTestManager(t, cfg, nil)

	ctx, err := m.Load(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, m.Attach(ctx, Identity{UserID: "u-1", Username: "alice"}))
	token, _, err := m.Commit(ctx)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	expired, err := m.Load(context.Background(), token)
	require.NoError(t, err)
	_, ok := m.Identity(expired)
	assert.False(t, ok, "expired session must read as absent")
}

func TestManager_GateIntegration(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m := newTestManager(t, testSessionConfig(), nil)
	gate := NewGate(m)

	ctx, err := m.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, LoginPath, gate.RequireAuthenticated(ctx).RedirectTo)
	assert.True(t, gate.RequireAnonymous(ctx).Allowed)

	require.NoError(t, m.Attach(ctx, Identity{UserID: "u-1", Username: "alice"}))
	assert.True(t, gate.RequireAuthenticated(ctx).Allowed)
	assert.Equal(t, HomePath, gate.RequireAnonymous(ctx).RedirectTo)
}
