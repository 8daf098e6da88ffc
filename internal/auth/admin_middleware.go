package auth

import (
	"errors"
	"net/http"

	"gamestudio/website/internal/database"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware creates a gin middleware to check the admin flag of the
// caller's profile. It must be used AFTER AuthMiddleware.
func AdminMiddleware(profiles ProfileLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := ProfileID(c)
		if !ok {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		profile, err := profiles.Get(c.Request.Context(), profileID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Authenticated user not found"})
			return
		case errors.Is(err, database.ErrUnavailable):
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Backend unavailable"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
			return
		}

		if !profile.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		c.Set(ProfileKey, profile)
		c.Next()
	}
}
