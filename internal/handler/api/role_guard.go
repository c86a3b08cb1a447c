package api

import (
	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// RoleGuard provides helper functions for role-based access control in handlers
type RoleGuard struct{}

// NewRoleGuard creates a new role guard instance
func NewRoleGuard() *RoleGuard {
	return &RoleGuard{}
}

// GetCurrentUser extracts user information from context
func (rg *RoleGuard) GetCurrentUser(c *gin.Context) (userID, role string, exists bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return "", "", false
	}

	roleVal, exists := c.Get("user_role")
	if !exists {
		return "", "", false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return "", "", false
	}

	roleStr, ok := roleVal.(string)
	if !ok {
		return "", "", false
	}

	return userIDStr, roleStr, true
}

// RequireRole checks if user has required role
func (rg *RoleGuard) RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, exists := rg.GetCurrentUser(c)
		if !exists {
			logger.Warn("Access denied - user not authenticated",
				logger.String("required_role", requiredRole),
				logger.String("ip", c.ClientIP()),
			)
			xresponse.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if role != requiredRole {
			logger.Warn("Access denied - insufficient role",
				logger.String("user_role", role),
				logger.String("required_role", requiredRole),
				logger.String("ip", c.ClientIP()),
			)
			xresponse.Forbidden(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin is shorthand for RequireRole(ADMIN).
func (rg *RoleGuard) RequireAdmin() gin.HandlerFunc {
	return rg.RequireRole(domain.RoleAdmin)
}
