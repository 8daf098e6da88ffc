package auth

import "github.com/gin-gonic/gin"

// OptionalAuthMiddleware inspects for a token and sets the profileID if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := TokenFromRequest(c); tokenString != "" {
			if profileID, err := tokens.ParseToken(tokenString); err == nil {
				c.Set(ProfileIDKey, profileID)
			}
		}
		c.Next()
	}
}
