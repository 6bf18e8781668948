package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"saltbay-backend/models"
	"saltbay-backend/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	CtxUserID    = "userID"
	CtxUserRole  = "userRole"
	CtxUserEmail = "userEmail"
)

// RequireAuth validates the Bearer token and stores the caller's identity on
// the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := utils.ParseAccessToken(tokenString, utils.JWTSecret())
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		userID := claims.Subject
		role := models.Role(claims.Role)
		if userID == "" || !role.IsValid() {
			utils.JSONError(c, http.StatusUnauthorized, "invalid token claims")
			c.Abort()
			return
		}

		c.Set(CtxUserID, parseUint(userID))
		c.Set(CtxUserRole, role)
		c.Set(CtxUserEmail, claims.Email)
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. Must run after RequireAuth.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(CtxUserRole)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		role := value.(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "insufficient role")
		c.Abort()
	}
}

func parseUint(s string) uint {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
