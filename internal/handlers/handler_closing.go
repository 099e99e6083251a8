package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
)

// closingHandler drives the two-phase period closing.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

// newClosingHandler creates a new closingHandler.
func newClosingHandler(closingService portssvc.ClosingSvcFacade) *closingHandler {
	return &closingHandler{
		closingService: closingService,
	}
}

// startClosing freezes posting and returns the review snapshot.
func (h *closingHandler) startClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	snapshot, err := h.closingService.StartClosing(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "A closing is already in progress"})
			return
		}
		logger.Error("Failed to start closing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start closing"})
		return
	}

	logger.Info("Closing started", slog.String("started_by", userID))
	c.JSON(http.StatusOK, dto.ToReviewSnapshotResponse(snapshot))
}

// finalizeClosing distributes profit, rolls openings forward and truncates
// the journal.
func (h *closingHandler) finalizeClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	finalizeReq := dto.FinalizeClosingRequest{}
	if err := c.ShouldBindJSON(&finalizeReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.closingService.FinalizeClosing(c.Request.Context(), finalizeReq.Mode, finalizeReq.ManualDeltas, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDistributionMismatch):
			logger.Warn("Distribution mismatch on finalize", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "No closing is awaiting review"})
		default:
			logger.Error("Failed to finalize closing", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize closing"})
		}
		return
	}

	logger.Info("Closing finalized", slog.String("mode", string(finalizeReq.Mode)), slog.String("finalized_by", userID))
	c.JSON(http.StatusOK, dto.ClosingStateResponse{State: string(h.closingService.State())})
}

// cancelClosing abandons the review and unfreezes posting.
func (h *closingHandler) cancelClosing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.closingService.CancelClosing(c.Request.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "No closing is awaiting review"})
			return
		}
		logger.Error("Failed to cancel closing", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel closing"})
		return
	}

	c.JSON(http.StatusOK, dto.ClosingStateResponse{State: string(h.closingService.State())})
}

// getClosingState reports the closing engine's current state.
func (h *closingHandler) getClosingState(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ClosingStateResponse{State: string(h.closingService.State())})
}

// registerClosingRoutes registers period closing routes.
func registerClosingRoutes(group *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := newClosingHandler(closingService)

	closing := group.Group("/closing")
	closing.POST("/start", h.startClosing)
	closing.POST("/finalize", h.finalizeClosing)
	closing.POST("/cancel", h.cancelClosing)
	closing.GET("/state", h.getClosingState)
}
