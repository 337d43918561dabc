package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PostingKind is the side of a posting from the running account's view.
// CREDIT moves value into the running account, DEBIT moves it out.
type PostingKind string

const (
	PostingDebit  PostingKind = "DEBIT"
	PostingCredit PostingKind = "CREDIT"
)

// IsValid reports whether k is a known kind.
func (k PostingKind) IsValid() bool {
	return k == PostingDebit || k == PostingCredit
}

// Opposite returns the compensating kind.
func (k PostingKind) Opposite() PostingKind {
	if k == PostingDebit {
		return PostingCredit
	}
	return PostingDebit
}

// PostingStatus tracks the append-only correction discipline.
type PostingStatus string

const (
	PostingActive   PostingStatus = "ACTIVE"
	PostingAdjusted PostingStatus = "ADJUSTED"
)

// Posting is one immutable leg linking a ledger account and a running account.
type Posting struct {
	Timestamp             time.Time
	CreatedAt             time.Time
	MetalGrams            *decimal.Decimal
	MetalQuotation        *decimal.Decimal
	ReversesPostingID     *string
	ID                    string
	OrganizationID        string
	BatchID               string
	LedgerAccountID       string
	RunningAccountID      string
	Description           string
	Currency              string
	Kind                  PostingKind
	Status                PostingStatus
	FiatAmount            decimal.Decimal
	PreviousFiatBalance   decimal.Decimal
	CurrentFiatBalance    decimal.Decimal
	PreviousMetalBalance  decimal.Decimal
	CurrentMetalBalance   decimal.Decimal
	RunningAccountVersion int64
}

// Validate checks amounts and the grams/quotation relation.
func (p *Posting) Validate() error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: unknown posting kind %q", ErrInvalidAmount, p.Kind)
	}

	if err := ValidateFiatAmount(p.FiatAmount); err != nil {
		return err
	}

	if p.MetalQuotation != nil && !p.MetalQuotation.IsPositive() {
		return fmt.Errorf("%w: quotation must be positive", ErrInvalidAmount)
	}

	if p.MetalGrams != nil && p.MetalGrams.IsZero() {
		return fmt.Errorf("%w: metal grams must be non-zero when present", ErrInvalidAmount)
	}

	if p.MetalGrams != nil && p.MetalQuotation != nil && !WithinQuotation(*p.MetalGrams, *p.MetalQuotation, p.FiatAmount) {
		return fmt.Errorf("%w: %s g at %s != %s", ErrQuotationMismatch, p.MetalGrams, p.MetalQuotation, p.FiatAmount)
	}

	return nil
}

// sign is +1 for credits and -1 for debits.
func (p *Posting) sign() decimal.Decimal {
	if p.Kind == PostingDebit {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// SignedFiat is the fiat effect on the running account.
func (p *Posting) SignedFiat() decimal.Decimal {
	return p.FiatAmount.Mul(p.sign())
}

// SignedGrams is the metal effect on the running account.
func (p *Posting) SignedGrams() decimal.Decimal {
	if p.MetalGrams == nil {
		return decimal.Zero
	}
	return p.MetalGrams.Mul(p.sign())
}

// FiatValue is the value used to settle claims: grams at quotation for metal
// postings, the fiat amount otherwise.
func (p *Posting) FiatValue() decimal.Decimal {
	if p.MetalGrams != nil && p.MetalQuotation != nil {
		return FiatAtQuotation(*p.MetalGrams, *p.MetalQuotation)
	}
	return p.FiatAmount
}

// IsActive reports whether the posting still counts towards derived state.
func (p *Posting) IsActive() bool {
	return p.Status == PostingActive
}

// Reversal builds the compensating posting. Both p and the result end up ADJUSTED.
func (p *Posting) Reversal(id, reason string, now time.Time) (*Posting, error) {
	if !p.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrPostingAdjusted, p.ID)
	}

	original := p.ID

	return &Posting{
		ID:                id,
		OrganizationID:    p.OrganizationID,
		LedgerAccountID:   p.LedgerAccountID,
		RunningAccountID:  p.RunningAccountID,
		Kind:              p.Kind.Opposite(),
		FiatAmount:        p.FiatAmount,
		Currency:          p.Currency,
		MetalGrams:        copyDecimal(p.MetalGrams),
		MetalQuotation:    copyDecimal(p.MetalQuotation),
		Description:       fmt.Sprintf("reversal of %s: %s", original, reason),
		Status:            PostingAdjusted,
		ReversesPostingID: &original,
		Timestamp:         now,
		CreatedAt:         now,
	}, nil
}

// BalancedBatch reports whether the signed fiat sum of postings is zero.
func BalancedBatch(postings []*Posting) bool {
	sum := decimal.Zero
	for _, p := range postings {
		sum = sum.Add(p.SignedFiat())
	}
	return sum.IsZero()
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
