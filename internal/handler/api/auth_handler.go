package api

import (
	"github.com/gin-gonic/gin"

	"github.com/adityarizkyr/reviora/internal/domain"
	"github.com/adityarizkyr/reviora/pkg/logger"
	"github.com/adityarizkyr/reviora/pkg/xresponse"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC domain.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login payload. Identifier accepts an email or
// a username.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AuthResponse carries the authenticated user and access token
type AuthResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	user, token, err := h.authUC.Register(req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err, "auth")
		return
	}

	xresponse.Created(c, "Account created", AuthResponse{User: user, Token: token})
}

// Login authenticates a user and issues an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid request body", logger.ErrorField(err))
		xresponse.BadRequest(c, "Invalid request format")
		return
	}

	user, token, err := h.authUC.Login(req.Identifier, req.Password)
	if err != nil {
		respondError(c, err, "auth")
		return
	}

	xresponse.Success(c, "Login successful", AuthResponse{User: user, Token: token})
}
