package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"edquiz-service/internal/identity"
)

const userKey = "authUser"

// Authenticator resolves bearer tokens; app.AccountService satisfies it.
type Authenticator interface {
	Verify(ctx context.Context, token string) (identity.User, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved user on the context.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		user, err := auth.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authMessage(err)})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth resolves the bearer token when present but lets anonymous
// requests through. Quiz play does not require an account.
func OptionalAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := auth.Verify(c.Request.Context(), token); err == nil {
				c.Set(userKey, user)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func currentUser(c *gin.Context) (identity.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return identity.User{}, false
	}
	user, ok := v.(identity.User)
	return user, ok
}

func authMessage(err error) string {
	var idErr *identity.Error
	if errors.As(err, &idErr) {
		return idErr.Message()
	}
	return "Authentication failed. Please try again."
}
