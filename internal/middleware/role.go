package middleware

import (
	"net/http"

	"vales/internal/domain"
	"vales/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through when the caller holds any of roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[string(r)] = struct{}{}
	}

	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		if _, ok := allowed[role.(string)]; !ok {
			response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// ApproversOnly admits the roles allowed to decide vouchers.
func ApproversOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleAnfitrion)
}
