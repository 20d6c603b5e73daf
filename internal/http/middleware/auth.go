package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"chem.app/api/common/logger"
	"chem.app/api/internal/identity"
)

const identityContextKey = "identity"

// Authenticate verifies the caller before any handler runs. A bearer token
// in Authorization takes precedence over the session cookie.
func Authenticate(provider identity.Provider, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var (
			ident *identity.Identity
			err   error
		)
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			ident, err = provider.VerifyIDToken(ctx, token)
		} else if cookie, cerr := c.Cookie(cookieName); cerr == nil && cookie != "" {
			ident, err = provider.VerifySessionCookie(ctx, cookie)
		} else {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err != nil {
			if !errors.Is(err, identity.ErrInvalidToken) {
				slog.WarnContext(ctx, "credential verification failed", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		ctx = identity.WithIdentity(ctx, ident)
		ctx = logger.WithLogFields(ctx, logger.LogFields{FirebaseUID: &ident.UID})
		c.Request = c.Request.WithContext(ctx)
		c.Set(identityContextKey, ident)

		c.Next()
	}
}

// GetIdentity returns the identity set by Authenticate, or nil.
func GetIdentity(c *gin.Context) *identity.Identity {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return nil
	}
	ident, _ := v.(*identity.Identity)
	return ident
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
