package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
)

// costingHandler exposes per-cost-center profitability views.
type costingHandler struct {
	costingService portssvc.CostingSvcFacade
}

// newCostingHandler creates a new costingHandler.
func newCostingHandler(costingService portssvc.CostingSvcFacade) *costingHandler {
	return &costingHandler{
		costingService: costingService,
	}
}

// getCostCenterSummary computes revenue and cost for one cost center with
// mirror costs excluded.
func (h *costingHandler) getCostCenterSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	costCenterID := c.Param("costCenterID")

	summary, err := h.costingService.CostCenterSummary(c.Request.Context(), costCenterID)
	if err != nil {
		logger.Error("Failed to compute cost center summary", slog.String("error", err.Error()), slog.String("cost_center_id", costCenterID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cost center summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// registerCostingRoutes registers cost analysis routes.
func registerCostingRoutes(group *gin.RouterGroup, costingService portssvc.CostingSvcFacade) {
	h := newCostingHandler(costingService)

	costCenters := group.Group("/cost-centers")
	costCenters.GET("/:costCenterID/summary", h.getCostCenterSummary)
}
