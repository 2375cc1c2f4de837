// internal/handler/auth.go
package handler

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"rewards-tracker/internal/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	tokens *auth.TokenService
	apiKey string
}

// NewAuthHandler — an empty apiKey accepts any key (local development only).
func NewAuthHandler(tokens *auth.TokenService, apiKey string) *AuthHandler {
	return &AuthHandler{tokens: tokens, apiKey: apiKey}
}

type LoginRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	APIKey   string `json:"api_key"`
}

// Login godoc
// @Summary Exchange an API key for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id required"})
		return
	}

	if h.apiKey != "" && subtle.ConstantTimeCompare([]byte(req.APIKey), []byte(h.apiKey)) != 1 {
		slog.Warn("Login rejected", "client_id", req.ClientID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.GenerateToken(req.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
