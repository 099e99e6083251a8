package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Ledger-specific validation errors. Commit and closing return these
// synchronously and never leave partial state behind.
var (
	// ErrUnbalancedEntry indicates that an entry's debits and credits do not
	// match exactly in base currency.
	ErrUnbalancedEntry = errors.New("entry debits and credits do not balance")

	// ErrMissingAccount indicates that a journal line references an account
	// that does not resolve.
	ErrMissingAccount = errors.New("account not found for journal line")

	// ErrInvalidAmount indicates a line with both or neither of debit/credit
	// set, or a non-positive amount.
	ErrInvalidAmount = errors.New("invalid line amount")

	// ErrDistributionMismatch indicates that manual profit distribution
	// deltas do not sum to the period's net profit.
	ErrDistributionMismatch = errors.New("manual distribution does not sum to net profit")

	// ErrClosingInProgress indicates that a period closing review is active
	// and the journal is frozen.
	ErrClosingInProgress = errors.New("period closing in progress, journal is frozen")
)
