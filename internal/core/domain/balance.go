package domain

import "github.com/shopspring/decimal"

// Balance is an account's derived position: never stored, always recomputed
// from the opening fields plus the journal.
type Balance struct {
	Base decimal.Decimal `json:"base"`
	// Original accumulates only lines posted in the account's own opening
	// currency; lines in other currencies contribute to Base only.
	Original decimal.Decimal `json:"original"`
	Currency string          `json:"currency"` // The account's opening currency
}
