package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
	"github.com/iho/metalledger/tests/testutil"
)

func TestMetalCredits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	t.Run("concurrent allocations never exceed the credit", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		stack := testDB.NewStack("")

		credit, err := stack.Credits.CreateCredit(ctx, usecase.CreateCreditInput{
			OrganizationID: orgID,
			ClientID:       "client-1",
			MetalType:      domain.MetalGold,
			Grams:          decimal.NewFromInt(10),
		})
		if err != nil {
			t.Fatalf("create credit: %v", err)
		}

		const workers = 20

		var (
			wg           sync.WaitGroup
			success      atomic.Int32
			insufficient atomic.Int32
		)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				sale := testutil.GenerateID()
				_, err := stack.Credits.Allocate(ctx, usecase.AllocateInput{
					OrganizationID: orgID,
					CreditID:       credit.ID,
					Grams:          decimal.NewFromInt(1),
					Consumer:       domain.Consumer{SaleID: &sale},
				})
				switch {
				case err == nil:
					success.Add(1)
				case errors.Is(err, domain.ErrInsufficientBalance), errors.Is(err, domain.ErrAlreadySettled):
					insufficient.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}

		wg.Wait()

		if success.Load() != 10 {
			t.Fatalf("expected exactly 10 allocations, got %d", success.Load())
		}
		if insufficient.Load() != workers-10 {
			t.Errorf("expected %d rejected allocations, got %d", workers-10, insufficient.Load())
		}

		got, err := stack.Credits.GetCredit(ctx, orgID, credit.ID)
		if err != nil {
			t.Fatalf("get credit: %v", err)
		}
		if got.Status != domain.CreditPaid || !got.RemainingGrams.IsZero() {
			t.Errorf("expected PAID credit with nothing left, got %s %s", got.Status, got.RemainingGrams)
		}

		usages, err := stack.Credits.ListUsages(ctx, orgID, credit.ID)
		if err != nil {
			t.Fatalf("list usages: %v", err)
		}
		if len(usages) != 10 {
			t.Errorf("expected 10 usages, got %d", len(usages))
		}
	})

	t.Run("cash allocation posts the payment and links it", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		probe := testDB.NewStack("")
		payable := probe.CreateLedgerAccount(t, orgID, "2.1.7", domain.LedgerAccountLiability)
		cash := probe.CreateRunningAccount(t, orgID, "cash", domain.RunningAccountCash)

		stack := testDB.NewStack(payable.ID)

		credit, err := stack.Credits.CreateCredit(ctx, usecase.CreateCreditInput{
			OrganizationID: orgID,
			ClientID:       "client-1",
			MetalType:      domain.MetalGold,
			Grams:          decimal.NewFromInt(5),
		})
		if err != nil {
			t.Fatalf("create credit: %v", err)
		}

		usage, err := stack.Credits.AllocateWithCash(ctx, usecase.AllocateWithCashInput{
			OrganizationID:   orgID,
			CreditID:         credit.ID,
			RunningAccountID: cash.ID,
			Grams:            decimal.NewFromInt(2),
			Quotation:        decimal.RequireFromString("350.5"),
		})
		if err != nil {
			t.Fatalf("allocate with cash: %v", err)
		}

		if usage.ConsumingPaymentID == nil {
			t.Fatal("expected usage to reference its payment posting")
		}
		if !usage.SettlementFiatValue.Equal(decimal.NewFromInt(701)) {
			t.Errorf("expected fiat value 701, got %s", usage.SettlementFiatValue)
		}

		payment, err := stack.Postings.GetPosting(ctx, orgID, *usage.ConsumingPaymentID)
		if err != nil {
			t.Fatalf("get payment: %v", err)
		}
		if payment.LedgerAccountID != payable.ID || payment.Kind != domain.PostingDebit {
			t.Errorf("unexpected payment posting %+v", payment)
		}

		acc, err := stack.Accounts.GetRunningAccount(ctx, orgID, cash.ID)
		if err != nil {
			t.Fatalf("get account: %v", err)
		}
		if !acc.FiatBalance.Equal(decimal.NewFromInt(-701)) {
			t.Errorf("expected cash balance -701, got %s", acc.FiatBalance)
		}

		got, err := stack.Credits.GetCredit(ctx, orgID, credit.ID)
		if err != nil {
			t.Fatalf("get credit: %v", err)
		}
		if got.Status != domain.CreditPartiallyPaid || !got.RemainingGrams.Equal(decimal.NewFromInt(3)) {
			t.Errorf("expected PARTIALLY_PAID with 3 g left, got %s %s", got.Status, got.RemainingGrams)
		}
	})

	t.Run("canceled credit rejects allocations", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		stack := testDB.NewStack("")

		credit, err := stack.Credits.CreateCredit(ctx, usecase.CreateCreditInput{
			OrganizationID: orgID,
			ClientID:       "client-1",
			MetalType:      domain.MetalSilver,
			Grams:          decimal.NewFromInt(3),
		})
		if err != nil {
			t.Fatalf("create credit: %v", err)
		}

		if _, err := stack.Credits.Cancel(ctx, usecase.CancelCreditInput{OrganizationID: orgID, CreditID: credit.ID}); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		sale := "sale-1"
		_, err = stack.Credits.Allocate(ctx, usecase.AllocateInput{
			OrganizationID: orgID,
			CreditID:       credit.ID,
			Grams:          decimal.NewFromInt(1),
			Consumer:       domain.Consumer{SaleID: &sale},
		})
		if !errors.Is(err, domain.ErrAlreadyCanceled) {
			t.Errorf("expected ErrAlreadyCanceled, got %v", err)
		}
	})
}

func TestMetalLots(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	stack := testDB.NewStack("")

	receive := func(t *testing.T, product string, grams int64, entry time.Time) *domain.MetalLot {
		t.Helper()

		lot, err := stack.Lots.ReceiveLot(ctx, usecase.ReceiveLotInput{
			OrganizationID: orgID,
			ProductID:      product,
			SourceType:     "purchase",
			SourceID:       testutil.GenerateID(),
			MetalType:      domain.MetalGold,
			Grams:          decimal.NewFromInt(grams),
			Purity:         decimal.RequireFromString("0.75"),
			EntryDate:      &entry,
		})
		if err != nil {
			t.Fatalf("receive lot: %v", err)
		}

		return lot
	}

	t.Run("consuming a lot to zero marks it consumed", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		lot := receive(t, "ring-18k", 5, time.Now())

		lot, err := stack.Lots.Consume(ctx, usecase.ConsumeLotInput{OrganizationID: orgID, LotID: lot.ID, Grams: decimal.NewFromInt(2)})
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if lot.Status != domain.LotAvailable {
			t.Errorf("expected AVAILABLE after partial consumption, got %s", lot.Status)
		}

		_, err = stack.Lots.Consume(ctx, usecase.ConsumeLotInput{OrganizationID: orgID, LotID: lot.ID, Grams: decimal.NewFromInt(4)})
		if !errors.Is(err, domain.ErrInsufficientStock) {
			t.Errorf("expected ErrInsufficientStock, got %v", err)
		}

		lot, err = stack.Lots.Consume(ctx, usecase.ConsumeLotInput{OrganizationID: orgID, LotID: lot.ID, Grams: decimal.NewFromInt(3)})
		if err != nil {
			t.Fatalf("consume rest: %v", err)
		}
		if lot.Status != domain.LotConsumed || !lot.RemainingGrams.IsZero() {
			t.Errorf("expected CONSUMED lot, got %s %s", lot.Status, lot.RemainingGrams)
		}
	})

	t.Run("available lots page in entry order", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		var want []string
		for i := 0; i < 5; i++ {
			want = append(want, receive(t, "bar-1kg", 1000, base.Add(time.Duration(i)*time.Hour)).ID)
		}
		receive(t, "other", 10, base)

		var (
			got   []string
			after *domain.LotCursor
		)
		for {
			page, err := stack.Lots.ListAvailableLots(ctx, usecase.ListLotsInput{
				OrganizationID: orgID,
				ProductID:      "bar-1kg",
				Limit:          2,
				After:          after,
			})
			if err != nil {
				t.Fatalf("list lots: %v", err)
			}
			for _, l := range page.Lots {
				got = append(got, l.ID)
			}
			if page.Next == nil {
				break
			}
			after = page.Next
		}

		if len(got) != len(want) {
			t.Fatalf("expected %d lots, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("lot %d: expected %s, got %s", i, want[i], got[i])
			}
		}
	})
}
