package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ClaimKind distinguishes money owed to us from money we owe.
type ClaimKind string

const (
	ClaimReceivable ClaimKind = "RECEIVABLE"
	ClaimPayable    ClaimKind = "PAYABLE"
)

// IsValid reports whether k is a known kind.
func (k ClaimKind) IsValid() bool {
	return k == ClaimReceivable || k == ClaimPayable
}

// SettlingKind is the posting kind that pays the claim down.
func (k ClaimKind) SettlingKind() PostingKind {
	if k == ClaimPayable {
		return PostingDebit
	}
	return PostingCredit
}

// Claim is a receivable or payable against a counterparty.
// Settled, SettledAt and RunningAccountID are derived from Links.
type Claim struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DueDate          *time.Time
	SettledAt        *time.Time
	LedgerAccountID  *string
	RunningAccountID *string
	ID               string
	OrganizationID   string
	Counterparty     string
	Currency         string
	Kind             ClaimKind
	OriginalAmount   decimal.Decimal
	Links            []ClaimLink
	Settled          bool
}

// ClaimLink attaches a posting to a claim. Position orders links.
type ClaimLink struct {
	LinkedAt  time.Time
	ClaimID   string
	PostingID string
	Position  int
}

// Validate checks the claim on creation.
func (c *Claim) Validate() error {
	if !c.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidClaim, c.Kind)
	}

	if c.Counterparty == "" {
		return fmt.Errorf("%w: counterparty is required", ErrInvalidClaim)
	}

	if err := ValidateCurrency(c.Currency); err != nil {
		return err
	}

	return ValidateFiatAmount(c.OriginalAmount)
}

// HasLink reports whether postingID is already linked.
func (c *Claim) HasLink(postingID string) bool {
	for _, l := range c.Links {
		if l.PostingID == postingID {
			return true
		}
	}
	return false
}

// CanLink checks whether p may be linked to this claim.
func (c *Claim) CanLink(p *Posting) error {
	if p.OrganizationID != c.OrganizationID {
		return ErrPostingNotFound
	}

	if !p.IsActive() {
		return fmt.Errorf("%w: %s", ErrPostingAdjusted, p.ID)
	}

	if c.LedgerAccountID != nil && *c.LedgerAccountID != p.LedgerAccountID {
		return fmt.Errorf("%w: posting %s is on ledger account %s, claim expects %s",
			ErrPostingMismatch, p.ID, p.LedgerAccountID, *c.LedgerAccountID)
	}

	if p.Currency != c.Currency {
		return fmt.Errorf("%w: posting in %s, claim in %s", ErrPostingMismatch, p.Currency, c.Currency)
	}

	if p.Kind != c.Kind.SettlingKind() {
		return fmt.Errorf("%w: %s claim needs a %s posting, got %s",
			ErrPostingMismatch, c.Kind, c.Kind.SettlingKind(), p.Kind)
	}

	if c.HasLink(p.ID) {
		return ErrPostingAlreadyLinked
	}

	return nil
}

// Settlement is the state derived from a claim's linked postings.
type Settlement struct {
	SettledAt        *time.Time
	RunningAccountID *string
	Covered          decimal.Decimal
	Settled          bool
}

// Outstanding returns what is still owed after s.
func (c *Claim) Outstanding(s Settlement) decimal.Decimal {
	out := c.OriginalAmount.Sub(s.Covered)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// DeriveSettlement folds the linked postings, in link order, into a settlement.
// Only ACTIVE postings count. The claim is settled by the first posting at
// which the covered amount reaches the original amount within tolerance, and
// takes its timestamp and running account.
func DeriveSettlement(c *Claim, linked []*Posting, tolerance decimal.Decimal) Settlement {
	target := c.OriginalAmount.Sub(tolerance)
	s := Settlement{Covered: decimal.Zero}

	for _, p := range linked {
		if p == nil || !p.IsActive() {
			continue
		}

		s.Covered = s.Covered.Add(p.FiatValue())

		if !s.Settled && s.Covered.GreaterThanOrEqual(target) {
			at := p.Timestamp
			ra := p.RunningAccountID
			s.Settled = true
			s.SettledAt = &at
			s.RunningAccountID = &ra
		}
	}

	return s
}

// Apply copies s onto the claim's derived fields.
func (c *Claim) Apply(s Settlement) {
	c.Settled = s.Settled
	c.SettledAt = s.SettledAt
	c.RunningAccountID = s.RunningAccountID
}

// Matches reports whether the claim's stored derived fields agree with s.
func (c *Claim) Matches(s Settlement) bool {
	if c.Settled != s.Settled {
		return false
	}
	if !equalStringPtr(c.RunningAccountID, s.RunningAccountID) {
		return false
	}
	if (c.SettledAt == nil) != (s.SettledAt == nil) {
		return false
	}
	return c.SettledAt == nil || c.SettledAt.Equal(*s.SettledAt)
}

// RemoveLink drops the link to postingID, or the most recent link when
// postingID is empty, and returns the removed link.
func (c *Claim) RemoveLink(postingID string) (ClaimLink, error) {
	if len(c.Links) == 0 {
		return ClaimLink{}, ErrClaimNotSettled
	}

	idx := len(c.Links) - 1
	if postingID != "" {
		idx = -1
		for i, l := range c.Links {
			if l.PostingID == postingID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ClaimLink{}, fmt.Errorf("%w: posting %s is not linked to claim %s", ErrPostingNotFound, postingID, c.ID)
		}
	}

	removed := c.Links[idx]
	c.Links = append(c.Links[:idx:idx], c.Links[idx+1:]...)

	return removed, nil
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
