// Package auth guards the back office with signed session tokens.
package auth

import (
	"context"
	"net/http"
	"strings"

	"gamestudio/website/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieName carries the token for the HTML admin pages.
const CookieName = "studio_admin_token"

// Context keys set by the middlewares.
const (
	ProfileIDKey = "profileID"
	ProfileKey   = "profile"
)

// TokenParser verifies a token and returns its profile ID.
type TokenParser interface {
	ParseToken(token string) (uuid.UUID, error)
}

// ProfileLookup loads the profile behind a token.
type ProfileLookup interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// AuthMiddleware rejects requests without a valid token in the Authorization
// header or the admin cookie.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		profileID, err := tokens.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ProfileIDKey, profileID)
		c.Next()
	}
}

// TokenFromRequest returns the bearer token, falling back to the cookie.
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

// ProfileID returns the authenticated profile ID, if any.
func ProfileID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ProfileIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
