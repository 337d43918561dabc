package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunningAccountKind classifies an operational sub-ledger.
type RunningAccountKind string

const (
	RunningAccountCash          RunningAccountKind = "CASH"
	RunningAccountBank          RunningAccountKind = "BANK"
	RunningAccountMetalStock    RunningAccountKind = "METAL_STOCK"
	RunningAccountSupplierMetal RunningAccountKind = "SUPPLIER_METAL"
	RunningAccountLoan          RunningAccountKind = "LOAN"
	RunningAccountClient        RunningAccountKind = "CLIENT"
)

// IsValid reports whether k is a known kind.
func (k RunningAccountKind) IsValid() bool {
	switch k {
	case RunningAccountCash, RunningAccountBank, RunningAccountMetalStock,
		RunningAccountSupplierMetal, RunningAccountLoan, RunningAccountClient:
		return true
	}
	return false
}

// RunningAccount holds the fiat and metal running balances of a sub-ledger.
// Both balances are a cache of the signed sum of its postings.
type RunningAccount struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	OrganizationID string
	Name           string
	Kind           RunningAccountKind
	Currency       string
	FiatBalance    decimal.Decimal
	MetalBalance   decimal.Decimal
	Version        int64
	Active         bool
}

// CanPost reports whether postings may reference this account.
func (a *RunningAccount) CanPost() error {
	if !a.Active {
		return ErrAccountInactive
	}
	return nil
}

// Apply returns the balances after p is applied.
func (a *RunningAccount) Apply(p *Posting) (fiat, metal decimal.Decimal) {
	return a.FiatBalance.Add(p.SignedFiat()), a.MetalBalance.Add(p.SignedGrams())
}

// Balances is a fiat/metal pair used when replaying postings.
type Balances struct {
	Fiat  decimal.Decimal
	Metal decimal.Decimal
}

// Add returns b with p applied.
func (b Balances) Add(p *Posting) Balances {
	return Balances{
		Fiat:  b.Fiat.Add(p.SignedFiat()),
		Metal: b.Metal.Add(p.SignedGrams()),
	}
}

// Equal compares both units.
func (b Balances) Equal(other Balances) bool {
	return b.Fiat.Equal(other.Fiat) && b.Metal.Equal(other.Metal)
}
