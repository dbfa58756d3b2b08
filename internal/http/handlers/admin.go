package handlers

import (
	"context"
	"net/http"
	"strconv"

	"botrental/internal/domain"
	"botrental/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Administrative endpoints. Routing already requires the admin or dev role;
// per-target rules (self-block, protected roles) are enforced by the use
// case's policy check.

// AdminListUsers returns every account, deleted ones included.
func (h *Handler) AdminListUsers(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	users, err := h.Admin.ListUsers(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// AdminGetUser returns one account by telegram id.
func (h *Handler) AdminGetUser(c *gin.Context) {
	actor, tgID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	user, err := h.Admin.GetUser(c.Request.Context(), actor, tgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type blockRequest struct {
	Days   int    `json:"days" binding:"required,gte=1"`
	Reason string `json:"reason" binding:"required,max=500"`
}

// AdminBlockUser puts a timed block on the target account.
func (h *Handler) AdminBlockUser(c *gin.Context) {
	actor, tgID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	var req blockRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := h.Admin.BlockUser(c.Request.Context(), actor, tgID, req.Days, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// AdminUnblockUser lifts the target's active block.
func (h *Handler) AdminUnblockUser(c *gin.Context) {
	actor, tgID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	user, err := h.Admin.UnblockUser(c.Request.Context(), actor, tgID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type amountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// AdminDeposit credits the target's balance.
func (h *Handler) AdminDeposit(c *gin.Context) {
	h.adminBalanceOp(c, h.Admin.Deposit)
}

// AdminWithdraw debits the target's balance.
func (h *Handler) AdminWithdraw(c *gin.Context) {
	h.adminBalanceOp(c, h.Admin.Withdraw)
}

func (h *Handler) adminBalanceOp(c *gin.Context, op func(ctx context.Context, actor *domain.User, targetTelegramID, amount int64) (*domain.User, error)) {
	actor, tgID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	var req amountRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := op(c.Request.Context(), actor, tgID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type roleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin dev"`
}

// AdminChangeRole sets the target's role.
func (h *Handler) AdminChangeRole(c *gin.Context) {
	actor, tgID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	var req roleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := h.Admin.ChangeRole(c.Request.Context(), actor, tgID, domain.Role(req.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// AdminDeleteUser soft-deletes the target account.
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	actor, tgID, ok := h.adminTarget(c)
	if !ok {
		return
	}

	if err := h.Admin.DeleteUser(c.Request.Context(), actor, tgID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// adminTarget extracts the actor and the :tg path parameter.
func (h *Handler) adminTarget(c *gin.Context) (*domain.User, int64, bool) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, 0, false
	}

	tgID, err := strconv.ParseInt(c.Param("tg"), 10, 64)
	if err != nil || tgID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid telegram id"})
		return nil, 0, false
	}
	return actor, tgID, true
}
