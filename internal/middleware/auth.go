package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"onthegomusic/internal/auth"
)

const keyPrincipal = "principal"

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Principal, error)
}

// VerifyToken attaches the principal asserted by the Authorization header.
// A missing or non-bearer header is 401, a bad or expired token is 403.
func VerifyToken(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthenticated: bearer token required"})
			return
		}
		principal, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden: invalid or expired token"})
			return
		}
		c.Set(keyPrincipal, principal)
		c.Next()
	}
}

// Guard applies policy to action using the principal attached by VerifyToken.
// Guard runs after VerifyToken, so a missing principal is treated like a
// disallowed role.
func Guard(policy auth.Policy, action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := auth.Authorize(GetPrincipal(c), policy, action)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, auth.ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden: no principal"})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden: role not allowed"})
		}
	}
}

// GetPrincipal returns the principal attached by VerifyToken, or nil.
func GetPrincipal(c *gin.Context) *auth.Principal {
	v, ok := c.Get(keyPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
