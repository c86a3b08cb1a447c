package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/utils"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// UserHandler handles account reads and admin user management
type UserHandler struct {
	userUC    domain.UserUsecase
	roleGuard *RoleGuard
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUC domain.UserUsecase) *UserHandler {
	return &UserHandler{
		userUC:    userUC,
		roleGuard: NewRoleGuard(),
	}
}

// MeResponse carries the account plus its profile
type MeResponse struct {
	User    *domain.User    `json:"user"`
	Profile *domain.Profile `json:"profile"`
}

// GetMe returns the authenticated user's account and profile
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _, exists := h.roleGuard.GetCurrentUser(c)
	if !exists {
		xresponse.Unauthorized(c, "Authentication required")
		return
	}

	user, profile, err := h.userUC.GetMe(userID)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	xresponse.Success(c, "Account retrieved", MeResponse{User: user, Profile: profile})
}

// ListUsers returns a paginated user list for admins
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.userUC.ListUsers(page, limit)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	page, limit, _ = utils.NormalizePagination(page, limit)
	xresponse.Paginated(c, "Users retrieved", users, page, limit, total)
}

// UpdateUser applies an admin update to a user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var req domain.AdminUserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	user, err := h.userUC.AdminUpdateUser(id, req)
	if err != nil {
		respondError(c, err, "user")
		return
	}

	xresponse.Success(c, "User updated", user)
}
