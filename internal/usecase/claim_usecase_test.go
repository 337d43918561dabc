package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

func (e *testEnv) receipt(t *testing.T, f fixture, ra *domain.RunningAccount, amount string, at time.Time) *domain.Posting {
	t.Helper()

	res, err := e.postings.Post(context.Background(), usecase.PostInput{
		OrganizationID: org,
		Timestamp:      &at,
		Entries: []usecase.PostingRequest{{
			LedgerAccountID: f.clients.ID, RunningAccountID: ra.ID, Kind: domain.PostingCredit, FiatAmount: d(amount),
		}},
	})
	require.NoError(t, err)

	return res.Postings[0]
}

func (e *testEnv) receivable(t *testing.T, f fixture, amount string) *domain.Claim {
	t.Helper()

	c, err := e.claims.CreateClaim(context.Background(), usecase.CreateClaimInput{
		OrganizationID:  org,
		Kind:            domain.ClaimReceivable,
		Counterparty:    "client-7",
		Currency:        "brl",
		OriginalAmount:  d(amount),
		LedgerAccountID: &f.clients.ID,
	})
	require.NoError(t, err)

	return c
}

func TestClaimUseCase_SettleInFull(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()

	at := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	claim := e.receivable(t, f, "570")
	payment := e.receipt(t, f, f.bank, "569.995", at)

	settled, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: payment.ID})
	require.NoError(t, err)

	assert.True(t, settled.Settled)
	require.NotNil(t, settled.SettledAt)
	assert.True(t, settled.SettledAt.Equal(at))
	require.NotNil(t, settled.RunningAccountID)
	assert.Equal(t, f.bank.ID, *settled.RunningAccountID)

	stored, err := e.claims.GetClaim(ctx, org, claim.ID)
	require.NoError(t, err)
	assert.True(t, stored.Settled)
	require.Len(t, stored.Links, 1)

	_, err = e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: payment.ID})
	require.ErrorIs(t, err, domain.ErrAlreadySettled)

	events := e.store.Events()
	assert.Equal(t, domain.EventTypeClaimSettled, events[len(events)-1].EventType)
}

func TestClaimUseCase_PartialThenSettle(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()

	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	claim := e.receivable(t, f, "1000")
	first := e.receipt(t, f, f.cash, "400", t0)
	second := e.receipt(t, f, f.bank, "600", t0.Add(48*time.Hour))

	partial, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: first.ID})
	require.NoError(t, err)
	assert.False(t, partial.Settled)
	assert.Nil(t, partial.SettledAt)

	outstanding, err := e.claims.Outstanding(ctx, org, claim.ID)
	require.NoError(t, err)
	assert.True(t, outstanding.Equal(d("600")), "got %s", outstanding)

	_, err = e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: first.ID})
	require.ErrorIs(t, err, domain.ErrPostingAlreadyLinked)

	settled, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: second.ID})
	require.NoError(t, err)
	assert.True(t, settled.Settled)
	assert.Equal(t, f.bank.ID, *settled.RunningAccountID)
	assert.Equal(t, 2, settled.Links[1].Position)
}

func TestClaimUseCase_SettleRejections(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()

	claim := e.receivable(t, f, "100")

	debit, err := e.postings.Post(ctx, usecase.PostInput{
		OrganizationID: org,
		Entries: []usecase.PostingRequest{{
			LedgerAccountID: f.clients.ID, RunningAccountID: f.cash.ID, Kind: domain.PostingDebit, FiatAmount: d("100"),
		}},
	})
	require.NoError(t, err)

	otherLedger, err := e.postings.Post(ctx, usecase.PostInput{
		OrganizationID: org,
		Entries: []usecase.PostingRequest{{
			LedgerAccountID: f.sales.ID, RunningAccountID: f.cash.ID, Kind: domain.PostingCredit, FiatAmount: d("100"),
		}},
	})
	require.NoError(t, err)

	reversed := e.receipt(t, f, f.cash, "100", time.Now())
	_, err = e.postings.Reverse(ctx, usecase.ReverseInput{OrganizationID: org, PostingID: reversed.ID, Reason: "bounced"})
	require.NoError(t, err)

	tests := []struct {
		name      string
		postingID string
		wantErr   error
	}{
		{"wrong kind", debit.Postings[0].ID, domain.ErrPostingMismatch},
		{"wrong ledger account", otherLedger.Postings[0].ID, domain.ErrPostingMismatch},
		{"adjusted posting", reversed.ID, domain.ErrPostingAdjusted},
		{"missing posting", "nope", domain.ErrPostingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: tt.postingID})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	stored, err := e.claims.GetClaim(ctx, org, claim.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Links)
	assert.False(t, stored.Settled)
}

func TestClaimUseCase_Unsettle(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()

	claim := e.receivable(t, f, "570")
	payment := e.receipt(t, f, f.bank, "570", time.Now())

	_, err := e.claims.Unsettle(ctx, usecase.UnsettleInput{OrganizationID: org, ClaimID: claim.ID})
	require.ErrorIs(t, err, domain.ErrClaimNotSettled)

	_, err = e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: payment.ID})
	require.NoError(t, err)

	open, err := e.claims.Unsettle(ctx, usecase.UnsettleInput{OrganizationID: org, ClaimID: claim.ID})
	require.NoError(t, err)

	assert.False(t, open.Settled)
	assert.Nil(t, open.SettledAt)
	assert.Nil(t, open.RunningAccountID)
	assert.Empty(t, open.Links)

	// the money movement is untouched
	p, err := e.postings.GetPosting(ctx, org, payment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PostingActive, p.Status)
	assert.True(t, e.balances(t, f.bank.ID).Fiat.Equal(d("570")))

	// and can be linked again
	again, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: payment.ID})
	require.NoError(t, err)
	assert.True(t, again.Settled)
}

func TestClaimUseCase_ReversedPaymentReopensOnRederive(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()

	claim := e.receivable(t, f, "300")
	first := e.receipt(t, f, f.cash, "100", time.Now())
	second := e.receipt(t, f, f.cash, "200", time.Now())

	_, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: first.ID})
	require.NoError(t, err)

	_, err = e.postings.Reverse(ctx, usecase.ReverseInput{OrganizationID: org, PostingID: first.ID, Reason: "bounced"})
	require.NoError(t, err)

	res, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: second.ID})
	require.NoError(t, err)
	assert.False(t, res.Settled, "the reversed payment no longer counts")

	outstanding, err := e.claims.Outstanding(ctx, org, claim.ID)
	require.NoError(t, err)
	assert.True(t, outstanding.Equal(d("100")))
}

func TestClaimUseCase_ReversingSettlingPaymentReopensClaim(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()

	claim := e.receivable(t, f, "300")
	payment := e.receipt(t, f, f.cash, "300", time.Now())

	settled, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: payment.ID})
	require.NoError(t, err)
	require.True(t, settled.Settled)

	_, err = e.postings.Reverse(ctx, usecase.ReverseInput{OrganizationID: org, PostingID: payment.ID, Reason: "bounced"})
	require.NoError(t, err)

	stored, err := e.claims.GetClaim(ctx, org, claim.ID)
	require.NoError(t, err)
	assert.False(t, stored.Settled)
	assert.Nil(t, stored.SettledAt)
	assert.Nil(t, stored.RunningAccountID)
	assert.Len(t, stored.Links, 1, "the link stays, only its posting is ADJUSTED")
	assert.Equal(t, 1, countEvents(e.store.Events(), domain.EventTypeClaimUnsettled))

	outstanding, err := e.claims.Outstanding(ctx, org, claim.ID)
	require.NoError(t, err)
	assert.True(t, outstanding.Equal(d("300")))

	replacement := e.receipt(t, f, f.bank, "300", time.Now())
	again, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: replacement.ID})
	require.NoError(t, err)
	assert.True(t, again.Settled)
	assert.Equal(t, f.bank.ID, *again.RunningAccountID)
}

func TestClaimUseCase_SettleIgnoresStaleSettledFlag(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()

	claim := e.receivable(t, f, "50")

	stale, err := e.claims.GetClaim(ctx, org, claim.ID)
	require.NoError(t, err)
	stale.Settled = true
	e.store.PutClaim(stale)

	payment := e.receipt(t, f, f.cash, "50", time.Now())
	res, err := e.claims.Settle(ctx, usecase.SettleInput{OrganizationID: org, ClaimID: claim.ID, PostingID: payment.ID})
	require.NoError(t, err)
	assert.True(t, res.Settled)
	require.Len(t, res.Links, 1)
	assert.Equal(t, payment.ID, res.Links[0].PostingID)
}

func TestClaimUseCase_CreateClaim_Invalid(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)

	_, err := e.claims.CreateClaim(context.Background(), usecase.CreateClaimInput{
		OrganizationID: org,
		Kind:           "LOAN",
		Counterparty:   "x",
		Currency:       "BRL",
		OriginalAmount: d("10"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidClaim)
}
