package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MetalLotStatus tracks whether a lot still has stock.
type MetalLotStatus string

const (
	LotAvailable MetalLotStatus = "AVAILABLE"
	LotConsumed  MetalLotStatus = "CONSUMED"
)

// LotStatusFor derives the status from remaining grams.
func LotStatusFor(remaining decimal.Decimal) MetalLotStatus {
	if IsExhausted(remaining) {
		return LotConsumed
	}
	return LotAvailable
}

var one = decimal.NewFromInt(1)

// MetalLot is a physical batch of refined metal.
type MetalLot struct {
	EntryDate      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	OrganizationID string
	ProductID      string
	SourceType     string
	SourceID       string
	MetalType      MetalType
	Status         MetalLotStatus
	InitialGrams   decimal.Decimal
	RemainingGrams decimal.Decimal
	Purity         decimal.Decimal
}

// Validate checks a lot on receipt.
func (l *MetalLot) Validate() error {
	if !l.MetalType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMetalType, l.MetalType)
	}

	if err := ValidateGrams(l.InitialGrams); err != nil {
		return err
	}

	if !l.Purity.IsPositive() || l.Purity.GreaterThan(one) {
		return fmt.Errorf("%w: %s must be in (0, 1]", ErrInvalidPurity, l.Purity)
	}

	if l.RemainingGrams.IsNegative() || l.RemainingGrams.GreaterThan(l.InitialGrams) {
		return fmt.Errorf("%w: remaining %s g outside [0, %s]", ErrInvalidAmount, l.RemainingGrams, l.InitialGrams)
	}

	return nil
}

// Consume takes grams out of the lot.
func (l *MetalLot) Consume(grams decimal.Decimal, now time.Time) error {
	if !grams.IsPositive() {
		return ErrInvalidAmount
	}

	if l.Status == LotConsumed {
		return fmt.Errorf("%w: lot %s is consumed", ErrInsufficientStock, l.ID)
	}

	if grams.GreaterThan(l.RemainingGrams) {
		return fmt.Errorf("%w: lot %s has %s g, requested %s g", ErrInsufficientStock, l.ID, l.RemainingGrams, grams)
	}

	l.RemainingGrams = l.RemainingGrams.Sub(grams)
	l.Status = LotStatusFor(l.RemainingGrams)
	l.UpdatedAt = now

	return nil
}

// FineGrams is the pure metal content of the remaining stock.
func (l *MetalLot) FineGrams() decimal.Decimal {
	return RoundGrams(l.RemainingGrams.Mul(l.Purity))
}

// LotCursor is a keyset position in (entry_date, id) order.
type LotCursor struct {
	EntryDate time.Time
	ID        string
}

// Cursor returns the position right after l.
func (l *MetalLot) Cursor() LotCursor {
	return LotCursor{EntryDate: l.EntryDate, ID: l.ID}
}

// Before reports whether c sorts strictly before l.
func (c LotCursor) Before(l *MetalLot) bool {
	if l.EntryDate.Equal(c.EntryDate) {
		return l.ID > c.ID
	}
	return l.EntryDate.After(c.EntryDate)
}
