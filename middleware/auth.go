// Package middleware provides request filters and security checks for the application.
// File: middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderlust/logger"
	"wanderlust/models"
	"wanderlust/repository"
	"wanderlust/services"
	"wanderlust/session"
)

const (
	identityKey = "identity"
	viaTokenKey = "identityViaToken"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(token string) (models.Identity, error)
}

// UserFinder loads the stored account behind a credential.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// -------------- authentication middleware --------------

// AuthRequired lets the request through when the caller holds a signed session or a valid
// "Authorization: Bearer" token whose user still exists, and stores the identity for
// CurrentIdentity. The role is always taken from the stored user, so deleting or demoting an
// account takes effect on its next request.
// Page requests without a credential are redirected to /login; API requests get 401.
// The loggedIn and username cookies are never consulted.
func AuthRequired(tokens TokenParser, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimed, viaToken, ok := resolveCredential(c, tokens)
		if ok {
			user, err := users.FindByUsername(c.Request.Context(), claimed.Username)
			switch {
			case err == nil:
				id := models.Identity{Username: user.Username, Role: user.Role}
				c.Set(identityKey, id)
				c.Set(viaTokenKey, viaToken)
				logger.Debug.Printf("[AuthRequired] %s authenticated for %s", id.Username, c.Request.URL.Path)
				c.Next()
				return
			case errors.Is(err, repository.ErrNotFound):
				logger.Warn.Printf("[AuthRequired] account %s no longer exists", claimed.Username)
			default:
				logger.Error.Printf("[AuthRequired] loading account %s: %v", claimed.Username, err)
				if isAPIRequest(c) {
					c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": services.MsgTryAgain})
					return
				}
				c.String(http.StatusServiceUnavailable, services.MsgTryAgain)
				c.Abort()
				return
			}
		}

		logger.Warn.Printf("[AuthRequired] unauthenticated request to %s", c.Request.URL.Path)
		if isAPIRequest(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// CurrentIdentity returns the identity stored by AuthRequired.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// AuthenticatedByToken reports whether AuthRequired accepted a bearer token rather than a session.
func AuthenticatedByToken(c *gin.Context) bool {
	return c.GetBool(viaTokenKey)
}

// resolveCredential returns the identity claimed by the session, or failing that the bearer token.
func resolveCredential(c *gin.Context, tokens TokenParser) (models.Identity, bool, bool) {
	if id, ok := session.Current(c); ok {
		return id, false, true
	}
	if tokens == nil {
		return models.Identity{}, false, false
	}
	header := c.GetHeader("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return models.Identity{}, false, false
	}
	id, err := tokens.Parse(raw)
	if err != nil {
		logger.Warn.Printf("[AuthRequired] rejected bearer token: %v", err)
		return models.Identity{}, false, false
	}
	return id, true, true
}

func isAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
