package domain

import "github.com/shopspring/decimal"

// BaseCurrencyRate is the rate applied to base-currency postings and to
// unknown currency codes (the named recovery rule for UnknownCurrency).
var BaseCurrencyRate = decimal.NewFromInt(1)

// Currency represents a supported currency and its current rate to the base
// currency. Rate changes affect only lines posted afterwards; every posted
// line carries its own locked rate.
type Currency struct {
	Code         string           `json:"code"` // Primary key (e.g. "USD")
	Name         string           `json:"name"`
	RateToBase   decimal.Decimal  `json:"rateToBase"`
	PreviousRate *decimal.Decimal `json:"previousRate,omitempty"`
	AuditFields
}
