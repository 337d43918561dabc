package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestPosting_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		posting Posting
		wantErr error
	}{
		{
			name:    "fiat only",
			posting: Posting{Kind: PostingCredit, FiatAmount: dec("570")},
		},
		{
			name:    "metal within a cent",
			posting: Posting{Kind: PostingCredit, FiatAmount: dec("10407.00"), MetalGrams: decPtr("34.69"), MetalQuotation: decPtr("300")},
		},
		{
			name:    "metal off by more than a cent",
			posting: Posting{Kind: PostingDebit, FiatAmount: dec("10407.02"), MetalGrams: decPtr("34.69"), MetalQuotation: decPtr("300")},
			wantErr: ErrQuotationMismatch,
		},
		{
			name:    "high quotation within half a gram unit",
			posting: Posting{Kind: PostingCredit, FiatAmount: dec("100"), MetalGrams: decPtr("0.000333"), MetalQuotation: decPtr("300000")},
		},
		{
			name:    "high quotation beyond half a gram unit",
			posting: Posting{Kind: PostingCredit, FiatAmount: dec("100"), MetalGrams: decPtr("0.000330"), MetalQuotation: decPtr("300000")},
			wantErr: ErrQuotationMismatch,
		},
		{
			name:    "zero amount",
			posting: Posting{Kind: PostingCredit, FiatAmount: decimal.Zero},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unknown kind",
			posting: Posting{Kind: "SIDEWAYS", FiatAmount: dec("1")},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "non-positive quotation",
			posting: Posting{Kind: PostingCredit, FiatAmount: dec("1"), MetalQuotation: decPtr("0")},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative grams keep the relation by magnitude",
			posting: Posting{Kind: PostingDebit, FiatAmount: dec("150"), MetalGrams: decPtr("-0.5"), MetalQuotation: decPtr("300")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.posting.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestPosting_SignedAmounts(t *testing.T) {
	t.Parallel()

	credit := &Posting{Kind: PostingCredit, FiatAmount: dec("570"), MetalGrams: decPtr("1.9"), MetalQuotation: decPtr("300")}
	debit := &Posting{Kind: PostingDebit, FiatAmount: dec("570"), MetalGrams: decPtr("1.9"), MetalQuotation: decPtr("300")}

	if !credit.SignedFiat().Equal(dec("570")) || !debit.SignedFiat().Equal(dec("-570")) {
		t.Fatalf("unexpected signed fiat: %s / %s", credit.SignedFiat(), debit.SignedFiat())
	}

	if !credit.SignedGrams().Equal(dec("1.9")) || !debit.SignedGrams().Equal(dec("-1.9")) {
		t.Fatalf("unexpected signed grams: %s / %s", credit.SignedGrams(), debit.SignedGrams())
	}

	if !BalancedBatch([]*Posting{credit, debit}) {
		t.Fatal("expected a debit and credit of the same amount to balance")
	}

	fiatOnly := &Posting{Kind: PostingDebit, FiatAmount: dec("1")}
	if !fiatOnly.SignedGrams().IsZero() {
		t.Fatalf("expected zero grams, got %s", fiatOnly.SignedGrams())
	}
}

func TestPosting_Reversal(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	original := &Posting{
		ID:               "p-1",
		OrganizationID:   "org-1",
		LedgerAccountID:  "la-1",
		RunningAccountID: "ra-1",
		Kind:             PostingCredit,
		FiatAmount:       dec("570"),
		Currency:         "BRL",
		Status:           PostingActive,
	}

	rev, err := original.Reversal("p-2", "wrong client", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rev.ID != "p-2" || rev.Kind != PostingDebit || !rev.FiatAmount.Equal(original.FiatAmount) {
		t.Fatalf("unexpected reversal: %+v", rev)
	}

	if rev.LedgerAccountID != "la-1" || rev.RunningAccountID != "ra-1" {
		t.Fatalf("reversal must hit the same accounts, got %s/%s", rev.LedgerAccountID, rev.RunningAccountID)
	}

	if rev.ReversesPostingID == nil || *rev.ReversesPostingID != "p-1" {
		t.Fatalf("expected reversal to reference p-1, got %v", rev.ReversesPostingID)
	}

	if rev.Status != PostingAdjusted {
		t.Fatalf("expected compensating posting to be ADJUSTED, got %s", rev.Status)
	}

	if !original.SignedFiat().Add(rev.SignedFiat()).IsZero() {
		t.Fatal("expected original and reversal to net to zero")
	}

	original.Status = PostingAdjusted
	if _, err := original.Reversal("p-3", "again", now); !errors.Is(err, ErrPostingAdjusted) {
		t.Fatalf("expected ErrPostingAdjusted, got %v", err)
	}
}

func TestPosting_FiatValue(t *testing.T) {
	t.Parallel()

	metal := &Posting{FiatAmount: dec("100"), MetalGrams: decPtr("0.333333"), MetalQuotation: decPtr("300")}
	if got := metal.FiatValue(); !got.Equal(dec("100")) {
		t.Fatalf("expected 100.00, got %s", got)
	}

	fiat := &Posting{FiatAmount: dec("42.5")}
	if got := fiat.FiatValue(); !got.Equal(dec("42.5")) {
		t.Fatalf("expected 42.5, got %s", got)
	}
}

func TestRunningAccount_Apply(t *testing.T) {
	t.Parallel()

	acc := &RunningAccount{FiatBalance: dec("1000"), MetalBalance: dec("10")}
	p := &Posting{Kind: PostingDebit, FiatAmount: dec("300"), MetalGrams: decPtr("1"), MetalQuotation: decPtr("300")}

	fiat, metal := acc.Apply(p)
	if !fiat.Equal(dec("700")) || !metal.Equal(dec("9")) {
		t.Fatalf("got fiat=%s metal=%s", fiat, metal)
	}

	b := Balances{}.Add(p).Add(&Posting{Kind: PostingCredit, FiatAmount: dec("300")})
	if !b.Equal(Balances{Fiat: decimal.Zero, Metal: dec("-1")}) {
		t.Fatalf("unexpected replay: %+v", b)
	}

	if err := (&RunningAccount{}).CanPost(); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}
