package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MetalType is the precious metal a credit or lot is denominated in.
type MetalType string

const (
	MetalGold    MetalType = "AU"
	MetalSilver  MetalType = "AG"
	MetalRhodium MetalType = "RH"
)

// IsValid reports whether m is a known metal.
func (m MetalType) IsValid() bool {
	switch m {
	case MetalGold, MetalSilver, MetalRhodium:
		return true
	}
	return false
}

// MetalCreditStatus is the allocation state of a credit.
type MetalCreditStatus string

const (
	CreditPending       MetalCreditStatus = "PENDING"
	CreditPartiallyPaid MetalCreditStatus = "PARTIALLY_PAID"
	CreditPaid          MetalCreditStatus = "PAID"
	CreditCanceled      MetalCreditStatus = "CANCELED"
)

// CreditStatusFor derives the status from remaining grams. CANCELED is never derived.
func CreditStatusFor(original, remaining decimal.Decimal) MetalCreditStatus {
	switch {
	case IsExhausted(remaining):
		return CreditPaid
	case remaining.Equal(original):
		return CreditPending
	default:
		return CreditPartiallyPaid
	}
}

// MetalCredit is a client-owned store of metal grams.
type MetalCredit struct {
	Date             time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	OriginAnalysisID *string
	ID               string
	OrganizationID   string
	ClientID         string
	MetalType        MetalType
	Status           MetalCreditStatus
	OriginalGrams    decimal.Decimal
	RemainingGrams   decimal.Decimal
	Version          int64
}

// NewMetalCredit returns a PENDING credit with remaining equal to original.
func NewMetalCredit(id, orgID, clientID string, metal MetalType, grams decimal.Decimal, date, now time.Time) (*MetalCredit, error) {
	if !metal.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMetalType, metal)
	}

	if err := ValidateGrams(grams); err != nil {
		return nil, err
	}

	if clientID == "" {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidConsumer)
	}

	grams = RoundGrams(grams)

	return &MetalCredit{
		ID:             id,
		OrganizationID: orgID,
		ClientID:       clientID,
		MetalType:      metal,
		OriginalGrams:  grams,
		RemainingGrams: grams,
		Status:         CreditPending,
		Date:           date,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// CanAllocate checks the allocation preconditions.
func (c *MetalCredit) CanAllocate(grams decimal.Decimal) error {
	if !grams.IsPositive() {
		return ErrInvalidAmount
	}

	switch c.Status {
	case CreditCanceled:
		return fmt.Errorf("%w: credit %s", ErrAlreadyCanceled, c.ID)
	case CreditPaid:
		return fmt.Errorf("%w: credit %s is fully paid", ErrAlreadySettled, c.ID)
	}

	if grams.GreaterThan(c.RemainingGrams) {
		return fmt.Errorf("%w: requested %s g, remaining %s g", ErrInsufficientBalance, grams, c.RemainingGrams)
	}

	return nil
}

// Allocate decrements the remaining grams and recomputes the status.
func (c *MetalCredit) Allocate(grams decimal.Decimal, now time.Time) error {
	if err := c.CanAllocate(grams); err != nil {
		return err
	}

	c.RemainingGrams = c.RemainingGrams.Sub(grams)
	c.Status = CreditStatusFor(c.OriginalGrams, c.RemainingGrams)
	c.UpdatedAt = now

	return nil
}

// Cancel moves the credit to CANCELED. It cannot be undone.
func (c *MetalCredit) Cancel(now time.Time) error {
	if c.Status == CreditCanceled {
		return fmt.Errorf("%w: credit %s", ErrAlreadyCanceled, c.ID)
	}

	c.Status = CreditCanceled
	c.UpdatedAt = now

	return nil
}

// Recompute derives remaining grams and status from the usages.
// Returns ErrInconsistent when usages exceed the original grams.
func (c *MetalCredit) Recompute(usages []*MetalCreditUsage) (remaining decimal.Decimal, status MetalCreditStatus, err error) {
	used := decimal.Zero
	for _, u := range usages {
		used = used.Add(u.Grams)
	}

	if used.GreaterThan(c.OriginalGrams) {
		return decimal.Zero, "", fmt.Errorf("%w: credit %s has %s g allocated out of %s g",
			ErrInconsistent, c.ID, used, c.OriginalGrams)
	}

	remaining = c.OriginalGrams.Sub(used)
	if c.Status == CreditCanceled {
		return remaining, CreditCanceled, nil
	}

	return remaining, CreditStatusFor(c.OriginalGrams, remaining), nil
}

// Consumer names the event that consumes a credit. Exactly one field is set.
type Consumer struct {
	SaleID    *string
	PaymentID *string
}

// Validate checks that exactly one consumer reference is present.
func (c Consumer) Validate() error {
	hasSale := c.SaleID != nil && *c.SaleID != ""
	hasPayment := c.PaymentID != nil && *c.PaymentID != ""

	if hasSale == hasPayment {
		return fmt.Errorf("%w: exactly one of sale or payment is required", ErrInvalidConsumer)
	}

	return nil
}

// MetalCreditUsage allocates grams of one credit to one consuming event.
type MetalCreditUsage struct {
	Date                time.Time
	CreatedAt           time.Time
	ConsumingSaleID     *string
	ConsumingPaymentID  *string
	SettlementQuotation *decimal.Decimal
	SettlementFiatValue *decimal.Decimal
	ID                  string
	OrganizationID      string
	MetalCreditID       string
	Grams               decimal.Decimal
}

// IsCashSettled reports whether the usage was paid out in fiat.
func (u *MetalCreditUsage) IsCashSettled() bool {
	return u.SettlementQuotation != nil && u.SettlementFiatValue != nil
}
