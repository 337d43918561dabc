package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

func strPtr(s string) *string { return &s }

func TestCreateRunningAccountRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateRunningAccountRequest{Name: "Vault", Currency: "BRL", Kind: "CASH"}

	got := req.ToUseCaseInput("org-1")
	want := usecase.CreateRunningAccountInput{
		OrganizationID: "org-1",
		Name:           "Vault",
		Currency:       "BRL",
		Kind:           domain.RunningAccountKind("CASH"),
	}

	if got != want {
		t.Fatalf("ToUseCaseInput() = %+v, want %+v", got, want)
	}
}

func TestCreatePostingsRequest_ToUseCaseInput(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		request     *CreatePostingsRequest
		expectError bool
	}{
		{
			name: "fiat and metal leg",
			request: &CreatePostingsRequest{
				Timestamp: &now,
				Balanced:  true,
				Entries: []PostingEntry{{
					LedgerAccountID:  "la-1",
					RunningAccountID: "ra-1",
					Currency:         "BRL",
					Kind:             "CREDIT",
					FiatAmount:       "300.00",
					MetalGrams:       strPtr("1.5"),
					Quotation:        strPtr("200"),
				}},
			},
		},
		{
			name: "invalid fiat amount",
			request: &CreatePostingsRequest{
				Entries: []PostingEntry{{FiatAmount: "abc"}},
			},
			expectError: true,
		},
		{
			name: "invalid grams",
			request: &CreatePostingsRequest{
				Entries: []PostingEntry{{FiatAmount: "1", MetalGrams: strPtr("1,5")}},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.request.ToUseCaseInput("org-1")
			if tt.expectError {
				if !errors.Is(err, domain.ErrInvalidAmount) {
					t.Fatalf("expected ErrInvalidAmount, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.OrganizationID != "org-1" || !got.Balanced || got.Timestamp != &now {
				t.Fatalf("unexpected input: %+v", got)
			}
			e := got.Entries[0]
			if !e.FiatAmount.Equal(decimal.RequireFromString("300")) || !e.MetalGrams.Equal(decimal.RequireFromString("1.5")) {
				t.Fatalf("unexpected amounts: %+v", e)
			}
			if e.Kind != domain.PostingKind("CREDIT") {
				t.Fatalf("unexpected kind %s", e.Kind)
			}
		})
	}
}

func TestCreatePostingsRequest_EmptyOptionalDecimals(t *testing.T) {
	req := &CreatePostingsRequest{Entries: []PostingEntry{{FiatAmount: "10", MetalGrams: strPtr(""), Quotation: nil}}}

	got, err := req.ToUseCaseInput("org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Entries[0].MetalGrams != nil || got.Entries[0].Quotation != nil {
		t.Fatalf("expected nil grams and quotation, got %+v", got.Entries[0])
	}
}

func TestCreateTransferRequest_ToUseCaseInput(t *testing.T) {
	req := &CreateTransferRequest{
		FromLedgerAccountID:  "la-from",
		FromRunningAccountID: "ra-from",
		ToLedgerAccountID:    "la-to",
		ToRunningAccountID:   "ra-to",
		Currency:             "USD",
		FiatAmount:           "12.34",
	}

	got, err := req.ToUseCaseInput("org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.FiatAmount.Equal(decimal.RequireFromString("12.34")) || got.ToRunningAccountID != "ra-to" || got.MetalGrams != nil {
		t.Fatalf("unexpected input: %+v", got)
	}

	req.Quotation = strPtr("x")
	if _, err := req.ToUseCaseInput("org-1"); err == nil {
		t.Fatalf("expected invalid quotation to fail")
	}
}

func TestAllocateRequests_ToUseCaseInput(t *testing.T) {
	sale := "sale-1"
	alloc, err := (&AllocateRequest{SaleID: &sale, Grams: "2.5"}).ToUseCaseInput("org-1", "cr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alloc.CreditID != "cr-1" || *alloc.Consumer.SaleID != "sale-1" || alloc.Consumer.PaymentID != nil {
		t.Fatalf("unexpected allocate input: %+v", alloc)
	}

	cash, err := (&AllocateWithCashRequest{RunningAccountID: "ra-1", Grams: "1", Quotation: "350.10"}).ToUseCaseInput("org-1", "cr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cash.Quotation.Equal(decimal.RequireFromString("350.1")) || cash.RunningAccountID != "ra-1" {
		t.Fatalf("unexpected cash input: %+v", cash)
	}

	if _, err := (&AllocateWithCashRequest{Grams: "1"}).ToUseCaseInput("org-1", "cr-1"); err == nil {
		t.Fatalf("expected missing quotation to fail")
	}
}

func TestReceiveLotRequest_ToUseCaseInput(t *testing.T) {
	got, err := (&ReceiveLotRequest{ProductID: "p-1", MetalType: "AU", Grams: "100", Purity: "0.75"}).ToUseCaseInput("org-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MetalType != domain.MetalGold || !got.Purity.Equal(decimal.RequireFromString("0.75")) {
		t.Fatalf("unexpected input: %+v", got)
	}

	if _, err := (&ConsumeLotRequest{Grams: ""}).ToUseCaseInput("org-1", "lot-1"); err == nil {
		t.Fatalf("expected empty grams to fail")
	}
}
