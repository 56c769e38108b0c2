package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aegeantours/tour_backoffice_app/internal/apperrors"
	"github.com/aegeantours/tour_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP responses. Sentinel errors carry
// the status; anything unrecognized becomes a 500 with a generic message so
// internals never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidCurrency),
		errors.Is(err, apperrors.ErrInvalidRange),
		errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnknownAccount),
		errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRatesLocked):
		logger.Warn("Rate set locked", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateNotConfigured),
		errors.Is(err, apperrors.ErrStaleQuote):
		logger.Warn("Precondition failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrQuoteUnavailable):
		logger.Error("Upstream quote feed unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// requireIdentity pulls the authenticated tenant and user from the context,
// aborting with 401 when either is missing.
func requireIdentity(c *gin.Context, logger *slog.Logger) (tenantID, userID string, ok bool) {
	tenantID, tenantOK := middleware.GetTenantIDFromContext(c)
	userID, userOK := middleware.GetUserIDFromContext(c)
	if !tenantOK || !userOK {
		logger.Error("Tenant or user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return tenantID, userID, true
}
