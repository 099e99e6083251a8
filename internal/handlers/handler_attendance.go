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

// attendanceHandler handles punch ingestion and deduction queries.
type attendanceHandler struct {
	attendanceService portssvc.AttendanceSvcFacade
}

// newAttendanceHandler creates a new attendanceHandler.
func newAttendanceHandler(attendanceService portssvc.AttendanceSvcFacade) *attendanceHandler {
	return &attendanceHandler{
		attendanceService: attendanceService,
	}
}

// ingestPunches stores a batch of raw device punches.
func (h *attendanceHandler) ingestPunches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ingestReq := dto.IngestPunchesRequest{}
	if err := c.ShouldBindJSON(&ingestReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.attendanceService.IngestPunches(c.Request.Context(), ingestReq); err != nil {
		logger.Error("Failed to ingest punches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ingest punches"})
		return
	}

	logger.Info("Punches ingested", slog.Int("count", len(ingestReq.Punches)))
	c.Status(http.StatusNoContent)
}

// getDeductions computes late-arrival deductions for a date range.
func (h *attendanceHandler) getDeductions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	deductionsReq := dto.DeductionsRequest{}
	if err := c.ShouldBindJSON(&deductionsReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	stats, err := h.attendanceService.DeductionsFor(c.Request.Context(), deductionsReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to compute deductions", slog.String("error", err.Error()), slog.String("employee_id", deductionsReq.EmployeeID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute deductions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAttendanceStatsResponse(stats))
}

// registerAttendanceRoutes registers attendance routes.
func registerAttendanceRoutes(group *gin.RouterGroup, attendanceService portssvc.AttendanceSvcFacade) {
	h := newAttendanceHandler(attendanceService)

	attendance := group.Group("/attendance")
	attendance.POST("/punches", h.ingestPunches)
	attendance.POST("/deductions", h.getDeductions)
}
