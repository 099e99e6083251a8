package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/RihlaSoft/agency_ledger_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgx-backed repositories sharing one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(pool),
		CurrencyRepo:   newPgxCurrencyRepository(pool),
		JournalRepo:    newPgxJournalRepository(pool),
		ClosingRepo:    newPgxClosingRepository(pool),
		AttendanceRepo: newPgxAttendanceRepository(pool),
		AuditRepo:      newPgxAuditRepository(pool),
	}
}
