package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/dto"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
)

// balanceHandler exposes the projected trial balance.
type balanceHandler struct {
	projectionService portssvc.ProjectionSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(projectionService portssvc.ProjectionSvcFacade) *balanceHandler {
	return &balanceHandler{
		projectionService: projectionService,
	}
}

// getTrialBalance projects every account's balance from the journal.
func (h *balanceHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.projectionService.ProjectAll(c.Request.Context())
	if err != nil {
		logger.Error("Failed to project balances", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to project balances"})
		return
	}

	balances := make([]dto.BalanceResponse, 0, len(result.Balances))
	for ref, b := range result.Balances {
		balances = append(balances, dto.ToBalanceResponse(ref, b))
	}
	sort.Slice(balances, func(i, j int) bool {
		if balances[i].Kind != balances[j].Kind {
			return balances[i].Kind < balances[j].Kind
		}
		return balances[i].AccountID < balances[j].AccountID
	})

	skipped := make([]string, len(result.SkippedRefs))
	for i, ref := range result.SkippedRefs {
		skipped[i] = ref.String()
	}

	c.JSON(http.StatusOK, dto.ProjectionResponse{Balances: balances, SkippedRefs: skipped})
}

// registerBalanceRoutes registers trial balance routes.
func registerBalanceRoutes(group *gin.RouterGroup, projectionService portssvc.ProjectionSvcFacade) {
	h := newBalanceHandler(projectionService)

	group.GET("/balances", h.getTrialBalance)
}
