package services

// ServiceContainer carries all service facades for dependency injection
// into the HTTP layer.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Currency   CurrencySvcFacade
	Journal    JournalSvcFacade
	Projection ProjectionSvcFacade
	Closing    ClosingSvcFacade
	Costing    CostingSvcFacade
	Attendance AttendanceSvcFacade
	Audit      AuditSvcFacade
}
