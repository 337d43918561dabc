package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// LedgerAccountKind is the chart-of-accounts classification.
type LedgerAccountKind string

const (
	LedgerAccountAsset     LedgerAccountKind = "ASSET"
	LedgerAccountLiability LedgerAccountKind = "LIABILITY"
	LedgerAccountEquity    LedgerAccountKind = "EQUITY"
	LedgerAccountRevenue   LedgerAccountKind = "REVENUE"
	LedgerAccountExpense   LedgerAccountKind = "EXPENSE"
)

// IsValid reports whether k is a known kind.
func (k LedgerAccountKind) IsValid() bool {
	switch k {
	case LedgerAccountAsset, LedgerAccountLiability, LedgerAccountEquity, LedgerAccountRevenue, LedgerAccountExpense:
		return true
	}
	return false
}

var accountCodeRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// LedgerAccount is a node of the chart of accounts, e.g. "1.1.7 Clientes".
type LedgerAccount struct {
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ParentID        *string
	ID              string
	OrganizationID  string
	Code            string
	Name            string
	Kind            LedgerAccountKind
	AcceptsPostings bool
}

// Validate checks the code shape and, when parent is given, the hierarchy.
func (a *LedgerAccount) Validate(parent *LedgerAccount) error {
	if !accountCodeRegex.MatchString(a.Code) {
		return fmt.Errorf("%w: %q must be dotted digits like 1.1.7", ErrInvalidAccountCode, a.Code)
	}

	if !a.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAccountCode, a.Kind)
	}

	if err := ValidateAccountName(a.Name); err != nil {
		return err
	}

	if parent == nil {
		return nil
	}

	if parent.OrganizationID != a.OrganizationID {
		return ErrAccountNotFound
	}

	if !IsChildCode(parent.Code, a.Code) {
		return fmt.Errorf("%w: %q is not under parent %q", ErrInvalidAccountCode, a.Code, parent.Code)
	}

	return nil
}

// CanPost reports whether postings may reference this account.
func (a *LedgerAccount) CanPost() error {
	if !a.AcceptsPostings {
		return fmt.Errorf("%w: %s %s", ErrAccountNotPostable, a.Code, a.Name)
	}
	return nil
}

// IsChildCode reports whether parent is a strict dotted prefix of child.
// "1.1" is a parent of "1.1.7" but not of "1.10".
func IsChildCode(parent, child string) bool {
	return len(child) > len(parent) && strings.HasPrefix(child, parent+".")
}
