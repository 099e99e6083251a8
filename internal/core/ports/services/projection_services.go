package services

import (
	"context"

	"github.com/RihlaSoft/agency_ledger_backend/internal/core/domain"
)

// ProjectionResult is the outcome of a balance projection: the balance map
// plus any line refs skipped because they did not resolve.
type ProjectionResult struct {
	Balances    map[domain.AccountRef]domain.Balance
	SkippedRefs []domain.AccountRef
}

// ProjectionSvcFacade derives account balances by replaying the journal
// over opening balances. Reads are pure recomputation over a consistent
// snapshot; no operation here mutates state.
type ProjectionSvcFacade interface {
	// ProjectAll computes every account's current balance.
	ProjectAll(ctx context.Context) (*ProjectionResult, error)

	// ProjectAccount computes a single account's current balance.
	ProjectAccount(ctx context.Context, ref domain.AccountRef) (*domain.Balance, error)
}
