package handlers

import (
	"net/http"
	"strconv"

	"botrental/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ListBots returns the bots currently open for rent.
func (h *Handler) ListBots(c *gin.Context) {
	bots, err := h.Rentals.AvailableBots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bots": bots})
}

type rentRequest struct {
	Months int    `json:"months" binding:"required,rentalterm"`
	Token  string `json:"token" binding:"omitempty,max=128"`
}

// RentBot rents the bot for the requested number of months, debiting the
// caller's balance.
func (h *Handler) RentBot(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	botID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bot id"})
		return
	}

	var req rentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	rental, err := h.Rentals.Rent(c.Request.Context(), botID, user, req.Months, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.RentalsCreated.Inc()
	c.JSON(http.StatusOK, gin.H{
		"rental":  rental,
		"balance": user.Balance,
	})
}
