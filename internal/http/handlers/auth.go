package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendCodeRequest struct {
	TelegramID int64 `json:"telegram_id" binding:"required,gt=0"`
	RefID      int64 `json:"ref_id" binding:"omitempty,gt=0"`
}

// SendCode issues a one-time login code to the given Telegram account. The
// response does not reveal whether the account is registered.
func (h *Handler) SendCode(c *gin.Context) {
	var req sendCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	if err := h.Auth.SendCode(c.Request.Context(), req.TelegramID, req.RefID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "code sent"})
}

type verifyCodeRequest struct {
	TelegramID int64  `json:"telegram_id" binding:"required,gt=0"`
	Code       string `json:"code" binding:"required,len=6"`
}

// VerifyCode exchanges a valid one-time code for a credential pair, creating
// the account on first login.
func (h *Handler) VerifyCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, access, refresh, err := h.Auth.VerifyCode(c.Request.Context(), req.TelegramID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh mints a new access token from a valid refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	access, err := h.Auth.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access})
}
