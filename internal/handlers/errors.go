package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/SscSPs/ecompta_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CodeUnknownStandard tags 400 responses caused by a standard without mapping table.
const CodeUnknownStandard = "UNKNOWN_STANDARD"

// respondError maps a service error to a status code. Internal causes are logged and hidden.
func respondError(c *gin.Context, err error, what string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, statements.ErrUnknownStandard):
		logger.Warn("Unknown accounting standard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": CodeUnknownStandard})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(what+" not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn(what+" already exists", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("State conflict on "+what, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on "+what, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to process "+what, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process " + what})
	}
}

// respondLedgerError answers 422 with the full result when the ledger rejected the entry,
// and falls back to respondError otherwise.
func respondLedgerError(c *gin.Context, err error, result ledger.ValidationResult) {
	if isLedgerRejection(err) {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry rejected",
			slog.String("reason", string(result.Reason)),
			slog.Int("issues", len(result.Issues)),
		)
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationResponse{Result: result})
		return
	}
	respondError(c, err, "journal entry")
}

// bindError answers 400 for a request that could not be bound.
func bindError(c *gin.Context, err error, msg string) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": msg + ": " + err.Error()})
}
