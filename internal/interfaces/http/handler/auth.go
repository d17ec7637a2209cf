package handler

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/paintdesk/backend/internal/infrastructure/auth"
	"github.com/paintdesk/backend/internal/infrastructure/config"
)

// AuthHandler handles operator login and token refresh. The shop runs
// as a single-operator deployment: there is no user table, the admin
// account lives in configuration.
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
	authCfg    config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *auth.JWTService, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		authCfg:    authCfg,
	}
}

// LoginRequest is the operator login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=200"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login verifies the configured admin credentials and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if h.authCfg.AdminPasswordHash == "" {
		h.Unauthorized(c, "Login is not configured")
		return
	}

	usernameMatch := subtle.ConstantTimeCompare(
		[]byte(req.Username), []byte(h.authCfg.AdminUsername)) == 1
	passwordErr := auth.VerifyPassword(h.authCfg.AdminPasswordHash, req.Password)
	if !usernameMatch || passwordErr != nil {
		h.Unauthorized(c, "Invalid username or password")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(req.Username)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pair)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pair, err := h.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		h.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	h.Success(c, pair)
}
