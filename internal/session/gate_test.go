package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticReader struct {
	id Identity
	ok bool
}

func (r staticReader) Identity(context.Context) (Identity, bool) { return r.id, r.ok }

func TestGate(t *testing.T) {
	alice := Identity{UserID: "u-1", Username: "alice"}
	anonymous := NewGate(staticReader{})
	signedIn := NewGate(staticReader{id: alice, ok: true})
	ctx := context.Background()

	tests := []struct {
		name string
		got  Decision
		want Decision
	}{
		{"authenticated required, none attached", anonymous.RequireAuthenticated(ctx), Decision{RedirectTo: LoginPath}},
		{"authenticated required, attached", signedIn.RequireAuthenticated(ctx), Decision{Allowed: true, Identity: alice}},
		{"anonymous required, none attached", anonymous.RequireAnonymous(ctx), Decision{Allowed: true}},
		{"anonymous required, attached", signedIn.RequireAnonymous(ctx), Decision{RedirectTo: HomePath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
