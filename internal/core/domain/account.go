package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountKind is the closed set of account categories the agency ledger
// tracks. The kind determines the account's normal side: debit-normal kinds
// grow when debited, credit-normal kinds grow when credited.
type AccountKind string

const (
	KindCustomer          AccountKind = "CUSTOMER"
	KindSupplier          AccountKind = "SUPPLIER"
	KindTreasury          AccountKind = "TREASURY"
	KindEmployeeLiability AccountKind = "EMPLOYEE_LIABILITY"
	KindEmployeeAdvance   AccountKind = "EMPLOYEE_ADVANCE"
	KindPartner           AccountKind = "PARTNER"
	KindExpense           AccountKind = "EXPENSE"
	KindRevenue           AccountKind = "REVENUE"
)

// AllAccountKinds lists every valid kind, for validation and iteration.
var AllAccountKinds = []AccountKind{
	KindCustomer, KindSupplier, KindTreasury, KindEmployeeLiability,
	KindEmployeeAdvance, KindPartner, KindExpense, KindRevenue,
}

// IsValid reports whether k is one of the known account kinds.
func (k AccountKind) IsValid() bool {
	switch k {
	case KindCustomer, KindSupplier, KindTreasury, KindEmployeeLiability,
		KindEmployeeAdvance, KindPartner, KindExpense, KindRevenue:
		return true
	}
	return false
}

// IsDebitNormal reports whether accounts of this kind increase on debit.
// Customers, treasuries and employee advances are asset-like; expenses also
// grow on debit. Suppliers, employee liabilities, partners and revenue grow
// on credit.
func (k AccountKind) IsDebitNormal() bool {
	switch k {
	case KindCustomer, KindTreasury, KindEmployeeAdvance, KindExpense:
		return true
	}
	return false
}

// SignedDelta applies the kind's normal-side sign to a debit/credit pair:
// debit-normal kinds return debit-credit, credit-normal kinds credit-debit.
func (k AccountKind) SignedDelta(debit, credit decimal.Decimal) decimal.Decimal {
	if k.IsDebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// AccountRef is the tagged identifier of an account: its kind plus its ID
// within that kind.
type AccountRef struct {
	Kind      AccountKind `json:"kind"`
	AccountID string      `json:"accountID"`
}

// String renders the ref as KIND/id, used for map keys and log fields.
func (r AccountRef) String() string {
	return fmt.Sprintf("%s/%s", r.Kind, r.AccountID)
}

// Account represents a ledger account with its opening position. Balances are
// never stored on the account; they are derived by the balance projector from
// the opening fields plus the journal.
type Account struct {
	AccountID              string          `json:"accountID"` // Primary key (UUID)
	Kind                   AccountKind     `json:"kind"`
	Name                   string          `json:"name"`
	OpeningBalanceBase     decimal.Decimal `json:"openingBalanceBase"`
	OpeningBalanceOriginal decimal.Decimal `json:"openingBalanceOriginal"`
	OpeningBalanceCurrency string          `json:"openingBalanceCurrency"`
	IsActive               bool            `json:"isActive"`
	// IsRetained marks the retained-earnings partner pseudo-account that
	// absorbs undistributed profit under the RETAINED policy.
	IsRetained bool `json:"isRetained"`
	AuditFields
}

// Ref returns the account's tagged identifier.
func (a Account) Ref() AccountRef {
	return AccountRef{Kind: a.Kind, AccountID: a.AccountID}
}
