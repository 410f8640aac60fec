package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/bridges/internal/identity"
	"github.com/gogotex/bridges/pkg/logger"
)

// ClaimsKey is the gin context key holding the verified claims map.
const ClaimsKey = "claims"

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// Revocations reports tokens that were explicitly revoked before expiry.
type Revocations interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware rejects requests without a valid, non-revoked Bearer token.
// The verified claims are stored under ClaimsKey and the caller identity is
// attached to the request context.
func AuthMiddleware(ver Verifier, rev Revocations) gin.HandlerFunc {
	return authenticate(ver, rev, true)
}

// OptionalAuthMiddleware lets anonymous requests through but still rejects
// malformed, invalid or revoked tokens.
func OptionalAuthMiddleware(ver Verifier, rev Revocations) gin.HandlerFunc {
	return authenticate(ver, rev, false)
}

func authenticate(ver Verifier, rev Revocations, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
				return
			}
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(auth, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}
		if ver == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token verification not configured"})
			return
		}

		if rev != nil {
			revoked, err := rev.IsRevoked(c.Request.Context(), token)
			if err != nil {
				logger.Warnf("revocation check failed: %v", err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "token revocation check failed"})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
				return
			}
		}

		idToken, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "details": err.Error()})
			return
		}

		var claims map[string]interface{}
		if err := idToken.Claims(&claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "failed to parse claims"})
			return
		}

		c.Set(ClaimsKey, claims)
		if who := identity.FromClaims(claims); who != nil {
			c.Request = c.Request.WithContext(identity.NewContext(c.Request.Context(), who))
		}
		c.Next()
	}
}
