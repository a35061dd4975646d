package session

import "context"

// Default entry points used by the gate
const (
	LoginPath = "/login"
	HomePath  = "/posts"
)

// Identity is the user attached to a session
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// IdentityReader exposes the identity attached to the current session.
// ok is false for anonymous, destroyed and expired sessions alike.
type IdentityReader interface {
	Identity(ctx context.Context) (id Identity, ok bool)
}

// Decision is the outcome of a guard. When Allowed is false the request
// layer redirects to RedirectTo.
type Decision struct {
	Allowed    bool
	Identity   Identity
	RedirectTo string
}

// Gate decides per request whether an identity is attached
type Gate struct {
	reader    IdentityReader
	loginPath string
	homePath  string
}

// NewGate creates a gate that redirects to LoginPath and HomePath
func NewGate(reader IdentityReader) *Gate {
	return &Gate{reader: reader, loginPath: LoginPath, homePath: HomePath}
}

// RequireAuthenticated allows the request with the attached identity, or
// denies it with a redirect to the login entry point.
func (g *Gate) RequireAuthenticated(ctx context.Context) Decision {
	id, ok := g.reader.Identity(ctx)
	if !ok {
		return Decision{RedirectTo: g.loginPath}
	}
	return Decision{Allowed: true, Identity: id}
}

// RequireAnonymous allows the request only when no identity is attached,
// otherwise it denies with a redirect to the home entry point.
func (g *Gate) RequireAnonymous(ctx context.Context) Decision {
	if _, ok := g.reader.Identity(ctx); ok {
		return Decision{RedirectTo: g.homePath}
	}
	return Decision{Allowed: true}
}
