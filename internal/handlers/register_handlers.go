package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/middleware"
	"github.com/RihlaSoft/agency_ledger_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	v1.GET("/", getHome)

	registerAccountRoutes(v1, services.Account, services.Projection)
	registerCurrencyRoutes(v1, services.Currency)
	registerJournalRoutes(v1, services.Journal)
	registerBalanceRoutes(v1, services.Projection)
	registerClosingRoutes(v1, services.Closing)
	registerCostingRoutes(v1, services.Costing)
	registerAttendanceRoutes(v1, services.Attendance)
}
