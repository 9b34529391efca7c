package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrisight/agrisight-backend/internal/requestdata"
	"github.com/agrisight/agrisight-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/auth/manual
func (h *AuthHandler) ManualLogin(c *gin.Context) {
	var input services.ManualLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, err)
		return
	}

	user, tokens, err := h.authService.ManualLogin(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, gin.H{"user": user, "tokens": tokens})
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var body struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidationFailed, err)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), body.RefreshToken)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, err)
		return
	}
	RespondOK(c, tokens)
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf("missing identity"))
		return
	}
	if err := h.authService.Logout(c.Request.Context(), rd.UserID); err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, gin.H{"message": "logged out"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf("missing identity"))
		return
	}
	RespondOK(c, gin.H{
		"id":    rd.UserID,
		"email": rd.Email,
		"name":  rd.Name,
		"role":  rd.Role,
	})
}
