package services

import (
	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/services"
	"github.com/RihlaSoft/agency_ledger_backend/internal/platform/config"
)

// NewServiceContainer wires all services with their dependencies. cache may
// be nil to disable the projection cache.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache ProjectionCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	gate := NewPostingGate()

	container.Audit = NewAuditService(repos.AuditRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo, cfg.BaseCurrency)

	projection := NewProjectionService(repos.AccountRepo, repos.JournalRepo, cache, cfg.BaseCurrency)
	container.Projection = projection
	invalidator := projection.(projectionInvalidator)

	accountSvc := NewAccountService(repos.AccountRepo, cfg.BaseCurrency)
	container.Account = accountSvc

	container.Journal = NewJournalService(repos.JournalRepo, container.Account, container.Currency, container.Audit, gate, invalidator)
	accountSvc.SetJournalService(container.Journal)

	container.Closing = NewClosingService(container.Account, container.Currency, repos.JournalRepo, repos.ClosingRepo, container.Audit, gate, invalidator, cfg.BaseCurrency)
	container.Costing = NewCostingService(repos.JournalRepo)
	container.Attendance = NewAttendanceService(repos.AttendanceRepo)

	return container
}

// ProjectionCache re-exports the cache contract so infrastructure adapters
// outside this package can satisfy it.
type ProjectionCache = projectionCache
