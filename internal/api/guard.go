package api

import (
	"net/http"

	"github.com/blog-publishing-api/internal/session"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// guard inspects a request and decides whether it may proceed
type guard func(c *gin.Context) session.Decision

func requireAuthenticated(gate *session.Gate) guard {
	return func(c *gin.Context) session.Decision {
		return gate.RequireAuthenticated(c.Request.Context())
	}
}

func requireAnonymous(gate *session.Gate) guard {
	return func(c *gin.Context) session.Decision {
		return gate.RequireAnonymous(c.Request.Context())
	}
}

// guardPipeline runs guards in order. The first denial short-circuits
// with a 303 redirect to the decision's target.
func guardPipeline(guards ...guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, g := range guards {
			d := g(c)
			if !d.Allowed {
				c.Redirect(http.StatusSeeOther, d.RedirectTo)
				c.Abort()
				return
			}
			if d.Identity.UserID != "" {
				c.Set(identityKey, d.Identity)
			}
		}
		c.Next()
	}
}

// identityFrom returns the identity stored by an authenticated guard
func identityFrom(c *gin.Context) session.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(session.Identity); ok {
			return id
		}
	}
	return session.Identity{}
}
