package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

func (e *testEnv) credit(t *testing.T, grams string) *domain.MetalCredit {
	t.Helper()

	c, err := e.credits.CreateCredit(context.Background(), usecase.CreateCreditInput{
		OrganizationID: org,
		ClientID:       "client-42",
		MetalType:      domain.MetalGold,
		Grams:          d(grams),
	})
	require.NoError(t, err)
	require.Equal(t, domain.CreditPending, c.Status)

	return c
}

func sale(id string) domain.Consumer {
	return domain.Consumer{SaleID: &id}
}

func TestMetalCreditUseCase_AllocateInFull(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	ctx := context.Background()
	c := e.credit(t, "34.69")

	usage, err := e.credits.Allocate(ctx, usecase.AllocateInput{
		OrganizationID: org, CreditID: c.ID, Grams: d("34.69"), Consumer: sale("sale-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "sale-1", *usage.ConsumingSaleID)
	assert.Nil(t, usage.ConsumingPaymentID)

	got, err := e.credits.GetCredit(ctx, org, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPaid, got.Status)
	assert.True(t, got.RemainingGrams.IsZero())

	assert.True(t, e.metrics.AllocatedGrams[domain.MetalGold].Equal(d("34.69")))

	_, err = e.credits.Allocate(ctx, usecase.AllocateInput{
		OrganizationID: org, CreditID: c.ID, Grams: d("0.01"), Consumer: sale("sale-2"),
	})
	require.ErrorIs(t, err, domain.ErrAlreadySettled)
}

func TestMetalCreditUseCase_AllocateInSteps(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	ctx := context.Background()
	c := e.credit(t, "100")

	_, err := e.credits.Allocate(ctx, usecase.AllocateInput{
		OrganizationID: org, CreditID: c.ID, Grams: d("40"), Consumer: sale("sale-1"),
	})
	require.NoError(t, err)

	got, err := e.credits.GetCredit(ctx, org, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPartiallyPaid, got.Status)
	assert.True(t, got.RemainingGrams.Equal(d("60")))

	_, err = e.credits.Allocate(ctx, usecase.AllocateInput{
		OrganizationID: org, CreditID: c.ID, Grams: d("61"), Consumer: sale("sale-2"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	unchanged, err := e.credits.GetCredit(ctx, org, c.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Version, unchanged.Version)
	assert.True(t, unchanged.RemainingGrams.Equal(d("60")))

	_, err = e.credits.Allocate(ctx, usecase.AllocateInput{
		OrganizationID: org, CreditID: c.ID, Grams: d("60"), Consumer: sale("sale-3"),
	})
	require.NoError(t, err)

	usages, err := e.credits.ListUsages(ctx, org, c.ID)
	require.NoError(t, err)
	require.Len(t, usages, 2)
	assert.Equal(t, "sale-1", *usages[0].ConsumingSaleID)
	assert.Equal(t, "sale-3", *usages[1].ConsumingSaleID)

	paid, err := e.credits.GetCredit(ctx, org, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPaid, paid.Status)
}

func TestMetalCreditUseCase_AllocateRejectsConsumer(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	c := e.credit(t, "10")

	saleID, paymentID := "sale-1", "pay-1"

	tests := []struct {
		name     string
		consumer domain.Consumer
	}{
		{"none", domain.Consumer{}},
		{"both", domain.Consumer{SaleID: &saleID, PaymentID: &paymentID}},
		{"empty sale", domain.Consumer{SaleID: strp("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.credits.Allocate(context.Background(), usecase.AllocateInput{
				OrganizationID: org, CreditID: c.ID, Grams: d("1"), Consumer: tt.consumer,
			})
			require.ErrorIs(t, err, domain.ErrInvalidConsumer)
		})
	}

	assert.Empty(t, e.store.Usages())
}

func TestMetalCreditUseCase_Cancel(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	ctx := context.Background()
	c := e.credit(t, "10")

	canceled, err := e.credits.Cancel(ctx, usecase.CancelCreditInput{OrganizationID: org, CreditID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.CreditCanceled, canceled.Status)

	_, err = e.credits.Cancel(ctx, usecase.CancelCreditInput{OrganizationID: org, CreditID: c.ID})
	require.ErrorIs(t, err, domain.ErrAlreadyCanceled)

	_, err = e.credits.Allocate(ctx, usecase.AllocateInput{
		OrganizationID: org, CreditID: c.ID, Grams: d("1"), Consumer: sale("sale-1"),
	})
	require.ErrorIs(t, err, domain.ErrAlreadyCanceled)

	_, err = e.credits.Cancel(ctx, usecase.CancelCreditInput{OrganizationID: "org-2", CreditID: c.ID})
	require.ErrorIs(t, err, domain.ErrCreditNotFound)
}

func TestMetalCreditUseCase_AllocateWithCash(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()
	c := e.credit(t, "10")

	usage, err := e.credits.AllocateWithCash(ctx, usecase.AllocateWithCashInput{
		OrganizationID:   org,
		CreditID:         c.ID,
		RunningAccountID: f.bank.ID,
		Grams:            d("2.5"),
		Quotation:        d("312.40"),
	})
	require.NoError(t, err)

	require.NotNil(t, usage.ConsumingPaymentID)
	require.True(t, usage.IsCashSettled())
	assert.True(t, usage.SettlementFiatValue.Equal(d("781")))
	assert.True(t, usage.SettlementQuotation.Equal(d("312.40")))

	payment, err := e.postings.GetPosting(ctx, org, *usage.ConsumingPaymentID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostingDebit, payment.Kind)
	assert.Equal(t, e.payable.ID, payment.LedgerAccountID)
	assert.Equal(t, f.bank.ID, payment.RunningAccountID)
	assert.True(t, payment.FiatAmount.Equal(d("781")))

	assert.True(t, e.balances(t, f.bank.ID).Fiat.Equal(d("-781")))

	got, err := e.credits.GetCredit(ctx, org, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPartiallyPaid, got.Status)
	assert.True(t, got.RemainingGrams.Equal(d("7.5")))

	e.requireConserved(t)
}

func TestMetalCreditUseCase_AllocateWithCash_RollsBackTogether(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	ctx := context.Background()
	c := e.credit(t, "10")

	// the running account does not exist so the payment leg fails after the
	// credit was already decremented in memory
	_, err := e.credits.AllocateWithCash(ctx, usecase.AllocateWithCashInput{
		OrganizationID:   org,
		CreditID:         c.ID,
		RunningAccountID: "missing",
		Grams:            d("1"),
		Quotation:        d("300"),
	})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	got, err := e.credits.GetCredit(ctx, org, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPending, got.Status)
	assert.Empty(t, e.store.Usages())
	assert.Empty(t, e.store.Postings(org))
}

func TestMetalCreditUseCase_AllocateWithCash_NoPayableAccount(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	c := e.credit(t, "10")

	credits := usecase.NewMetalCreditUseCase(e.uow, e.creditRepo, e.postings, e.outboxRepo, e.idGen, nil, "")

	_, err := credits.AllocateWithCash(context.Background(), usecase.AllocateWithCashInput{
		OrganizationID:   org,
		CreditID:         c.ID,
		RunningAccountID: f.bank.ID,
		Grams:            d("1"),
		Quotation:        d("300"),
	})
	require.ErrorIs(t, err, domain.ErrMissingPayableRoot)

	_, err = credits.AllocateWithCash(context.Background(), usecase.AllocateWithCashInput{
		PayableAccountID: e.payable.ID,
		OrganizationID:   org,
		CreditID:         c.ID,
		RunningAccountID: f.bank.ID,
		Grams:            d("1"),
		Quotation:        d("0"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestMetalCreditUseCase_ConcurrentAllocationsNeverOverdraw(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	ctx := context.Background()
	c := e.credit(t, "10")

	const workers = 25

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := e.credits.Allocate(ctx, usecase.AllocateInput{
				OrganizationID: org, CreditID: c.ID, Grams: d("1"), Consumer: sale("sale"),
			})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrAlreadySettled)
		}()
	}

	wg.Wait()

	assert.Equal(t, 10, accepted)
	assert.Len(t, e.store.Usages(), 10)

	got, err := e.credits.GetCredit(ctx, org, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CreditPaid, got.Status)
	assert.True(t, got.RemainingGrams.IsZero())
}

func TestMetalCreditUseCase_ListCreditsByClient(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	ctx := context.Background()
	e.credit(t, "1")
	e.credit(t, "2")

	silver, err := e.credits.CreateCredit(ctx, usecase.CreateCreditInput{
		OrganizationID: org, ClientID: "client-42", MetalType: domain.MetalSilver, Grams: d("3"),
	})
	require.NoError(t, err)

	all, err := e.credits.ListCreditsByClient(ctx, org, "client-42", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	ag := domain.MetalSilver
	onlySilver, err := e.credits.ListCreditsByClient(ctx, org, "client-42", &ag)
	require.NoError(t, err)
	require.Len(t, onlySilver, 1)
	assert.Equal(t, silver.ID, onlySilver[0].ID)

	bad := domain.MetalType("PT")
	_, err = e.credits.ListCreditsByClient(ctx, org, "client-42", &bad)
	require.ErrorIs(t, err, domain.ErrInvalidMetalType)

	_, err = e.credits.ListUsages(ctx, org, "missing")
	require.ErrorIs(t, err, domain.ErrCreditNotFound)
}
