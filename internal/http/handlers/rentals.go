package handlers

import (
	"net/http"
	"strconv"

	"botrental/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// StopRental deactivates one of the caller's rentals. No refund.
func (h *Handler) StopRental(c *gin.Context) {
	h.toggleRental(c, false)
}

// StartRental re-activates a stopped rental whose paid window still runs.
func (h *Handler) StartRental(c *gin.Context) {
	h.toggleRental(c, true)
}

func (h *Handler) toggleRental(c *gin.Context, start bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	rentalID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rental id"})
		return
	}

	ctx := c.Request.Context()
	op := h.Rentals.Stop
	if start {
		op = h.Rentals.Start
	}
	rental, err := op(ctx, rentalID, user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rental": rental})
}
