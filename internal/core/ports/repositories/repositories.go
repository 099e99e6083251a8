package repositories

// RepositoryProvider carries all repository facades for dependency injection
// into the service layer.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	CurrencyRepo   CurrencyRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	ClosingRepo    ClosingRepository
	AttendanceRepo AttendanceRepositoryFacade
	AuditRepo      AuditRepository
}
