package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/apperrors"
)

// businessRuleErrors are rejected with 400 and their message is shown to the caller.
var businessRuleErrors = []error{
	apperrors.ErrValidation,
	apperrors.ErrUnbalancedJournal,
	apperrors.ErrPeriodClosed,
	apperrors.ErrAlreadyClosed,
	apperrors.ErrSubsequentMonthClosed,
	apperrors.ErrOutOfSequence,
	apperrors.ErrAlreadyPaid,
	apperrors.ErrInvalidTransition,
	apperrors.ErrInsufficientBalance,
}

// handleServiceError writes the HTTP response for an error returned by a service.
// Storage and other unexpected errors are only logged; the caller sees a generic message.
func handleServiceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	var cfgErr *apperrors.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		logger.Error("Ledger configuration error while trying to "+action,
			slog.String("error", err.Error()),
			slog.String("hint", cfgErr.Hint()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConfiguration):
		logger.Error("Ledger configuration error while trying to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found while trying to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden attempt to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict while trying to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case isBusinessRuleError(err):
		logger.Warn("Rejected request to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

func isBusinessRuleError(err error) bool {
	for _, target := range businessRuleErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
