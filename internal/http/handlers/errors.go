package handlers

import (
	"errors"
	"net/http"

	"botrental/internal/domain"
	"botrental/internal/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps a typed domain failure onto a transport status. Anything
// untyped is an infrastructure fault and surfaces as 500 without leaking the
// underlying message.
func respondError(c *gin.Context, err error) {
	var domErr *domain.Error
	if !errors.As(err, &domErr) {
		logger.Error("unhandled error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(statusForKind(domErr.Kind), gin.H{
		"error": domErr.Message,
		"code":  string(domErr.Kind),
	})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized, domain.KindTokenExpired:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindRateLimited:
		return http.StatusTooManyRequests
	case domain.KindInsufficientFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
