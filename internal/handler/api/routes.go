package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// Handlers bundles every API handler for route registration
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Task         *TaskHandler
	Settlement   *SettlementHandler
	Product      *ProductHandler
	Vip          *VipHandler
	Notification *NotificationHandler
	Ledger       *LedgerHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, h *Handlers, authService domain.AuthService) {
	v1 := router.Group("/api/v1")
	{
		configureAuthRoutes(v1, h.Auth)
		configureUserRoutes(v1, h, authService)
		configureAdminRoutes(v1, h, authService)
	}

	logger.Info("API routes configured successfully")
}

func configureAuthRoutes(group *gin.RouterGroup, authHandler *AuthHandler) {
	routes := group.Group("/auth")
	{
		routes.POST("/register", authHandler.Register)
		routes.POST("/login", authHandler.Login)
	}
}

func configureUserRoutes(group *gin.RouterGroup, h *Handlers, authService domain.AuthService) {
	routes := group.Group("")
	routes.Use(authMiddleware(authService))
	{
		routes.GET("/me", h.User.GetMe)

		tasks := routes.Group("/tasks")
		{
			tasks.GET("", h.Task.ListTasks)
			tasks.GET("/current", h.Task.GetCurrentTask)
			tasks.GET("/history", h.Task.ListHistory)
			tasks.PATCH("/:id/complete", h.Task.CompleteTask)
			tasks.PATCH("/:id/decline", h.Task.DeclineTask)
		}

		routes.POST("/deposits", h.Settlement.CreateDeposit)
		routes.GET("/deposits", h.Settlement.ListDeposits)
		routes.POST("/withdrawals", h.Settlement.RequestWithdrawal)
		routes.GET("/withdrawals", h.Settlement.ListWithdrawals)

		routes.GET("/ledger", h.Ledger.ListEntries)

		routes.GET("/notifications", h.Notification.ListNotifications)
		routes.PATCH("/notifications/:id/read", h.Notification.MarkRead)
	}
}

func configureAdminRoutes(group *gin.RouterGroup, h *Handlers, authService domain.AuthService) {
	adminRoutes := group.Group("/admin")
	adminRoutes.Use(authMiddleware(authService), adminMiddleware())
	{
		adminRoutes.POST("/tasks/assign", h.Task.AssignBatch)
		adminRoutes.PUT("/tasks/:id", h.Task.EditTask)

		adminRoutes.GET("/users", h.User.ListUsers)
		adminRoutes.PUT("/users/:id", h.User.UpdateUser)

		adminRoutes.PUT("/deposits/verify", h.Settlement.VerifyDeposit)
		adminRoutes.PUT("/withdrawals/process", h.Settlement.ProcessWithdrawal)

		products := adminRoutes.Group("/products")
		{
			products.POST("", h.Product.CreateProduct)
			products.GET("", h.Product.ListProducts)
			products.GET("/:id", h.Product.GetProduct)
			products.PUT("/:id", h.Product.UpdateProduct)
			products.DELETE("/:id", h.Product.DeleteProduct)
		}

		vipLevels := adminRoutes.Group("/vip-levels")
		{
			vipLevels.GET("", h.Vip.ListLevels)
			vipLevels.POST("", h.Vip.CreateLevel)
			vipLevels.PUT("/:level", h.Vip.UpdateLevel)
			vipLevels.DELETE("/:level", h.Vip.DeleteLevel)
		}

		adminRoutes.POST("/notifications", h.Notification.Broadcast)
	}
}

// authMiddleware validates the Bearer token and sets user context
func authMiddleware(authService domain.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil {
			xresponse.Internal(c, "Auth service not available", nil)
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			xresponse.Unauthorized(c, "Authorization header with Bearer token required")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			xresponse.Unauthorized(c, "Token is empty")
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			logger.Warn("Token validation failed",
				logger.String("ip", c.ClientIP()),
				logger.ErrorField(err),
			)
			xresponse.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// adminMiddleware requires the ADMIN role; run it after authMiddleware
func adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		role, ok := roleVal.(string)
		if !exists || !ok {
			xresponse.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		if role != domain.RoleAdmin {
			logger.Warn("Admin access denied",
				logger.String("role", role),
				logger.String("ip", c.ClientIP()),
			)
			xresponse.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
