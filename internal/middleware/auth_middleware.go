package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/campusworks/studenttrack/internal/pkg/auth"
)

const subjectKey = "subject"

// AuthMiddleware validates the Bearer token on protected routes and stores
// the token subject in the context.
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(subjectKey, claims.Subject)
		c.Next()
	}
}
