package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Janushan11/scout-api/internal/domain"
	"github.com/Janushan11/scout-api/internal/service"
	"github.com/Janushan11/scout-api/pkg/response"
)

// Context keys set by the auth middleware
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"
)

// AuthMiddleware validates the Bearer token and stores the verified claims
// on the request context
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := authService.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, string(claims.Role))
		c.Next()
	}
}

// RequireRole rejects requests whose verified role is not in the allowed set.
// Must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := domain.Role(c.GetString(ContextKeyRole))
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		response.Forbidden(c, "Insufficient privileges")
		c.Abort()
	}
}
