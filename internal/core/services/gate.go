package services

import (
	"sync"

	"github.com/RihlaSoft/agency_ledger_backend/internal/apperrors"
)

// PostingGate serializes journal writes against the period-closing engine.
// Commits and edits enter as readers; a closing freezes the gate for the
// whole OPEN -> REVIEW -> CLOSED window so it sees an immutable journal.
type PostingGate struct {
	mu     sync.RWMutex
	frozen bool
}

// NewPostingGate creates an open gate.
func NewPostingGate() *PostingGate {
	return &PostingGate{}
}

// Enter admits a journal write. It fails with ErrClosingInProgress while a
// closing review is active. Callers must Leave when done.
func (g *PostingGate) Enter() error {
	g.mu.RLock()
	if g.frozen {
		g.mu.RUnlock()
		return apperrors.ErrClosingInProgress
	}
	return nil
}

// Leave releases a successful Enter.
func (g *PostingGate) Leave() {
	g.mu.RUnlock()
}

// Freeze blocks until in-flight writes drain, then freezes the journal.
// It fails with ErrConflict if a closing already holds the gate.
func (g *PostingGate) Freeze() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.frozen {
		return apperrors.ErrConflict
	}
	g.frozen = true
	return nil
}

// Unfreeze reopens the journal after a finalized or cancelled closing.
func (g *PostingGate) Unfreeze() {
	g.mu.Lock()
	g.frozen = false
	g.mu.Unlock()
}
