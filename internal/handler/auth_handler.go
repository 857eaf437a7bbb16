package handler

import (
	"net/http"
	"strings"

	"blkout_community_go/internal/service"
	"blkout_community_go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves moderator login, token refresh, logout and profile.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the moderator login body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Username and password are required",
		})
		return
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		log.Warnf("AuthHandler.Login: login failed for %q: %v", req.Username, err)
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Login successful",
		"data":    result,
	})
}

// RefreshRequest carries the refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    http.StatusBadRequest,
			"message": "Refresh token is required",
		})
		return
	}

	result, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Token refreshed",
		"data":    result,
	})
}

// Logout handles POST /api/auth/logout: blacklists the presented access token.
func (h *AuthHandler) Logout(c *gin.Context) {
	accessToken := extractBearer(c.GetHeader("Authorization"))
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    http.StatusUnauthorized,
			"message": "Authorization header missing",
		})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken); err != nil {
		status, msg := mapServiceError(err)
		c.JSON(status, gin.H{
			"code":    status,
			"message": msg,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Logout successful",
	})
}

// Profile handles GET /api/auth/profile for the authenticated moderator.
func (h *AuthHandler) Profile(c *gin.Context) {
	moderator, ok := getModeratorFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    http.StatusOK,
		"message": "Profile retrieved successfully",
		"data":    moderator,
	})
}

func extractBearer(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
