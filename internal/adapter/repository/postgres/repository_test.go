package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/metalledger/internal/domain"
)

const org = "org-1"

func num(s string) pgtype.Numeric {
	return decimalToNumeric(decimal.RequireFromString(s))
}

func ts(t time.Time) pgtype.Timestamptz {
	return timeToPgTimestamptz(t)
}

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

var runningAccountCols = []string{"id", "organization_id", "name", "kind", "currency", "fiat_balance", "metal_balance", "version", "active", "created_at", "updated_at"}

func TestRunningAccountRepository_GetByID(t *testing.T) {
	pool := newMockPool(t)
	repo := newRunningAccountRepository(pool)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	pool.ExpectQuery(q("FROM running_accounts")).
		WithArgs(org, "ra-1").
		WillReturnRows(pgxmock.NewRows(runningAccountCols).
			AddRow("ra-1", org, "Caixa", "CASH", "BRL", num("150.25"), num("1.500000"), int64(4), true, ts(now), ts(now)))

	acc, err := repo.GetByID(context.Background(), org, "ra-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunningAccountCash, acc.Kind)
	assert.True(t, acc.FiatBalance.Equal(decimal.RequireFromString("150.25")))
	assert.True(t, acc.MetalBalance.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, int64(4), acc.Version)
	assert.Equal(t, now, acc.CreatedAt)

	pool.ExpectQuery(q("FROM running_accounts")).
		WithArgs(org, "missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), org, "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	assertExpectations(t, pool)
}

func TestRunningAccountRepository_LocksInsideTransaction(t *testing.T) {
	pool := newMockPool(t)
	repo := newRunningAccountRepository(pool)
	tx := beginTx(t, pool)
	now := time.Now().UTC()

	pool.ExpectQuery(q("ORDER BY id\nFOR UPDATE")).
		WithArgs(org, []string{"ra-1", "ra-2"}).
		WillReturnRows(pgxmock.NewRows(runningAccountCols).
			AddRow("ra-1", org, "Caixa", "CASH", "BRL", num("0"), num("0"), int64(0), true, ts(now), ts(now)).
			AddRow("ra-2", org, "Banco", "BANK", "BRL", num("10"), num("0"), int64(1), true, ts(now), ts(now)))
	pool.ExpectExec(q("UPDATE running_accounts")).
		WithArgs("ra-1", pgxmock.AnyArg(), pgxmock.AnyArg(), int64(1), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	accounts, err := repo.GetByIDsForUpdate(context.Background(), tx, org, []string{"ra-1", "ra-2"})
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	accounts[0].FiatBalance = decimal.NewFromInt(5)
	accounts[0].Version = 1
	require.NoError(t, repo.UpdateBalances(context.Background(), tx, accounts[0]))

	assertExpectations(t, pool)
}

func TestRunningAccountRepository_SetActiveMissing(t *testing.T) {
	pool := newMockPool(t)
	repo := newRunningAccountRepository(pool)

	pool.ExpectExec(q("UPDATE running_accounts")).
		WithArgs(org, "ra-x", false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.SetActive(context.Background(), org, "ra-x", false, time.Now())
	require.ErrorIs(t, err, domain.ErrAccountNotFound)

	assertExpectations(t, pool)
}

func TestPostingRepository_Create(t *testing.T) {
	pool := newMockPool(t)
	repo := newPostingRepository(pool)
	tx := beginTx(t, pool)

	grams := decimal.RequireFromString("2.5")
	quote := decimal.RequireFromString("312.40")
	reversed := "p-0"
	p := &domain.Posting{
		ID: "p-1", OrganizationID: org, BatchID: "b-1", LedgerAccountID: "la-1", RunningAccountID: "ra-1",
		Kind: domain.PostingDebit, Status: domain.PostingActive, FiatAmount: decimal.NewFromInt(781), Currency: "BRL",
		MetalGrams: &grams, MetalQuotation: &quote, ReversesPostingID: &reversed,
		Timestamp: time.Now(), CreatedAt: time.Now(),
	}

	args := []any{"p-1", org, "b-1", "la-1", "ra-1", "DEBIT", "ACTIVE", pgxmock.AnyArg(), "BRL",
		pgxmock.AnyArg(), pgxmock.AnyArg(), "", pgtype.Text{String: "p-0", Valid: true},
		pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), int64(0), pgxmock.AnyArg(), pgxmock.AnyArg()}

	pool.ExpectExec(q("INSERT INTO postings")).WithArgs(args...).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, repo.Create(context.Background(), tx, p))

	pool.ExpectExec(q("INSERT INTO postings")).WithArgs(args...).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})
	err := repo.Create(context.Background(), tx, p)
	require.ErrorIs(t, err, domain.ErrPostingAdjusted)

	assertExpectations(t, pool)
}

func TestPostingRepository_ReadsNullableMetal(t *testing.T) {
	pool := newMockPool(t)
	repo := newPostingRepository(pool)
	now := time.Now().UTC()

	cols := []string{"id", "organization_id", "batch_id", "ledger_account_id", "running_account_id", "kind", "status",
		"fiat_amount", "currency", "metal_grams", "metal_quotation", "description", "reverses_posting_id",
		"previous_fiat_balance", "current_fiat_balance", "previous_metal_balance", "current_metal_balance",
		"running_account_version", "timestamp", "created_at"}

	pool.ExpectQuery(q("status = 'ACTIVE'")).
		WithArgs(org, "ra-1").
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("p-1", org, "b-1", "la-1", "ra-1", "CREDIT", "ACTIVE", num("100"), "BRL",
				pgtype.Numeric{}, pgtype.Numeric{}, "receipt", pgtype.Text{},
				num("0"), num("100"), num("0"), num("0"), int64(1), ts(now), ts(now)).
			AddRow("p-2", org, "b-2", "la-2", "ra-1", "CREDIT", "ACTIVE", num("300"), "BRL",
				num("1.000000"), num("300.000000"), "", pgtype.Text{},
				num("100"), num("400"), num("0"), num("1"), int64(2), ts(now), ts(now)))

	postings, err := repo.ListActiveByRunningAccount(context.Background(), nil, org, "ra-1")
	require.NoError(t, err)
	require.Len(t, postings, 2)

	assert.Nil(t, postings[0].MetalGrams)
	assert.Nil(t, postings[0].ReversesPostingID)
	require.NotNil(t, postings[1].MetalGrams)
	assert.True(t, postings[1].SignedGrams().Equal(decimal.NewFromInt(1)))

	pool.ExpectExec(q("SET status = 'ADJUSTED'")).
		WithArgs("nope").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, repo.MarkAdjusted(context.Background(), nil, "nope"), domain.ErrPostingNotFound)

	assertExpectations(t, pool)
}

func TestLedgerAccountRepository_CreateDuplicate(t *testing.T) {
	pool := newMockPool(t)
	repo := &LedgerAccountRepository{db: pool}

	account := &domain.LedgerAccount{ID: "la-1", OrganizationID: org, Code: "1.1", Name: "Circulante", Kind: domain.LedgerAccountAsset}

	pool.ExpectExec(q("INSERT INTO ledger_accounts")).
		WithArgs("la-1", org, (*string)(nil), "1.1", "Circulante", "ASSET", false, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	err := repo.Create(context.Background(), account)
	require.ErrorIs(t, err, domain.ErrInvalidAccountCode)

	assertExpectations(t, pool)
}

func TestLedgerAccountRepository_GetByIDs(t *testing.T) {
	pool := newMockPool(t)
	repo := &LedgerAccountRepository{db: pool}
	tx := beginTx(t, pool)
	parent := "la-0"
	now := time.Now().UTC()

	pool.ExpectQuery(q("FROM ledger_accounts WHERE organization_id = $1 AND id = ANY($2::text[])")).
		WithArgs(org, []string{"la-1"}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "organization_id", "parent_id", "code", "name", "kind", "accepts_postings", "created_at", "updated_at"}).
			AddRow("la-1", org, &parent, "1.1.7", "Clientes", "ASSET", true, now, now))

	accounts, err := repo.GetByIDs(context.Background(), tx, org, []string{"la-1"})
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "la-0", *accounts[0].ParentID)
	assert.True(t, accounts[0].AcceptsPostings)

	assertExpectations(t, pool)
}

func TestClaimRepository_GetByIDWithLinks(t *testing.T) {
	pool := newMockPool(t)
	repo := &ClaimRepository{db: pool}
	now := time.Now().UTC()

	pool.ExpectQuery(q("FROM claims WHERE organization_id = $1 AND id = $2")).
		WithArgs(org, "c-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "organization_id", "kind", "counterparty", "currency", "original_amount",
			"ledger_account_id", "due_date", "settled", "settled_at", "running_account_id", "created_at", "updated_at"}).
			AddRow("c-1", org, "RECEIVABLE", "client-42", "BRL", num("500.00"),
				(*string)(nil), (*time.Time)(nil), false, (*time.Time)(nil), (*string)(nil), now, now))
	pool.ExpectQuery(q("FROM claim_links")).
		WithArgs("c-1").
		WillReturnRows(pgxmock.NewRows([]string{"claim_id", "posting_id", "position", "linked_at"}).
			AddRow("c-1", "p-1", 0, now).
			AddRow("c-1", "p-2", 1, now))

	claim, err := repo.GetByID(context.Background(), org, "c-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimReceivable, claim.Kind)
	assert.True(t, claim.OriginalAmount.Equal(decimal.NewFromInt(500)))
	require.Len(t, claim.Links, 2)
	assert.Equal(t, "p-2", claim.Links[1].PostingID)

	assertExpectations(t, pool)
}

func TestClaimRepository_LinkErrors(t *testing.T) {
	pool := newMockPool(t)
	repo := &ClaimRepository{db: pool}
	tx := beginTx(t, pool)
	link := domain.ClaimLink{ClaimID: "c-1", PostingID: "p-1", Position: 0, LinkedAt: time.Now()}

	pool.ExpectExec(q("INSERT INTO claim_links")).
		WithArgs("c-1", "p-1", 0, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})
	require.ErrorIs(t, repo.AddLink(context.Background(), tx, link), domain.ErrPostingAlreadyLinked)

	pool.ExpectExec(q("INSERT INTO claim_links")).
		WithArgs("c-1", "p-1", 0, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrForeignKeyViolation})
	require.ErrorIs(t, repo.AddLink(context.Background(), tx, link), domain.ErrClaimNotFound)

	pool.ExpectExec(q("DELETE FROM claim_links")).
		WithArgs("c-1", "p-9").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, repo.RemoveLink(context.Background(), tx, "c-1", "p-9"), domain.ErrPostingNotFound)

	assertExpectations(t, pool)
}

func TestClaimRepository_ListIDsByPosting(t *testing.T) {
	pool := newMockPool(t)
	repo := &ClaimRepository{db: pool}
	tx := beginTx(t, pool)

	pool.ExpectQuery(q("WHERE c.organization_id = $1 AND l.posting_id = $2")).
		WithArgs(org, "p-1").
		WillReturnRows(pgxmock.NewRows([]string{"claim_id"}).AddRow("c-1").AddRow("c-2"))

	ids, err := repo.ListIDsByPosting(context.Background(), tx, org, "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c-1", "c-2"}, ids)

	assertExpectations(t, pool)
}

func TestMetalCreditRepository_UpdateBumpsVersion(t *testing.T) {
	pool := newMockPool(t)
	repo := &MetalCreditRepository{db: pool}
	tx := beginTx(t, pool)

	credit := &domain.MetalCredit{ID: "mc-1", RemainingGrams: decimal.NewFromInt(3), Status: domain.CreditPartiallyPaid, Version: 2}

	pool.ExpectQuery(q("RETURNING version")).
		WithArgs("mc-1", pgxmock.AnyArg(), "PARTIALLY_PAID", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"version"}).AddRow(int64(3)))

	require.NoError(t, repo.Update(context.Background(), tx, credit))
	assert.Equal(t, int64(3), credit.Version)

	pool.ExpectQuery(q("RETURNING version")).
		WithArgs("mc-x", pgxmock.AnyArg(), "PENDING", pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	err := repo.Update(context.Background(), tx, &domain.MetalCredit{ID: "mc-x", Status: domain.CreditPending})
	require.ErrorIs(t, err, domain.ErrCreditNotFound)

	assertExpectations(t, pool)
}

func TestMetalCreditRepository_Usages(t *testing.T) {
	pool := newMockPool(t)
	repo := &MetalCreditRepository{db: pool}
	now := time.Now().UTC()
	sale := "sale-1"

	pool.ExpectQuery(q("FROM metal_credit_usages WHERE organization_id = $1 AND metal_credit_id = $2")).
		WithArgs(org, "mc-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "organization_id", "metal_credit_id", "grams", "consuming_sale_id",
			"consuming_payment_id", "settlement_quotation", "settlement_fiat_value", "date", "created_at"}).
			AddRow("u-1", org, "mc-1", num("1.25"), &sale, (*string)(nil), pgtype.Numeric{}, pgtype.Numeric{}, now, now).
			AddRow("u-2", org, "mc-1", num("2.5"), (*string)(nil), (*string)(nil), num("312.40"), num("781.00"), now, now))

	usages, err := repo.ListUsages(context.Background(), nil, org, "mc-1")
	require.NoError(t, err)
	require.Len(t, usages, 2)
	assert.False(t, usages[0].IsCashSettled())
	assert.True(t, usages[1].IsCashSettled())
	assert.True(t, usages[1].SettlementFiatValue.Equal(decimal.NewFromInt(781)))

	pool.ExpectQuery(q("WHERE organization_id = $1 AND consuming_payment_id = $2")).
		WithArgs(org, "pay-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	linked, err := repo.IsPaymentLinked(context.Background(), nil, org, "pay-1")
	require.NoError(t, err)
	assert.True(t, linked)

	pool.ExpectExec(q("WHERE organization_id = $1 AND id = $2")).
		WithArgs("org-2", "u-2", "pay-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.SetUsagePayment(context.Background(), nil, "org-2", "u-2", "pay-1")
	require.ErrorIs(t, err, domain.ErrCreditNotFound)

	pool.ExpectQuery(q("consuming_payment_id IS NULL")).
		WithArgs(org, "", 100).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("u-2"))

	ids, err := repo.ScanUnlinkedCashUsageIDs(context.Background(), org, "", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"u-2"}, ids)

	assertExpectations(t, pool)
}

func TestMetalLotRepository_ListAvailableAfterCursor(t *testing.T) {
	pool := newMockPool(t)
	repo := &MetalLotRepository{db: pool}
	entry := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	pool.ExpectQuery(q("AND (entry_date, id) > ($3, $4)")).
		WithArgs(org, "prod-1", entry, "lot-3", 2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "organization_id", "product_id", "source_type", "source_id", "metal_type",
			"status", "initial_grams", "remaining_grams", "purity", "entry_date", "created_at", "updated_at"}).
			AddRow("lot-4", org, "prod-1", "", "", "AU", "AVAILABLE", num("10"), num("4.5"), num("0.9999"), entry, entry, entry))

	lots, err := repo.ListAvailable(context.Background(), org, "prod-1", &domain.LotCursor{EntryDate: entry, ID: "lot-3"}, 2)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, domain.LotAvailable, lots[0].Status)
	assert.True(t, lots[0].Purity.Equal(decimal.RequireFromString("0.9999")))

	assertExpectations(t, pool)
}

func TestOutboxRepository_CreateInTransaction(t *testing.T) {
	pool := newMockPool(t)
	repo := newOutboxRepository(pool)
	tx := beginTx(t, pool)

	pool.ExpectExec(q("INSERT INTO outbox_events")).
		WithArgs("ev-1", org, "p-1", domain.AggregateTypePosting, domain.EventTypePostingCreated,
			[]byte(`{"fiat_amount":"100"}`), false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	pool.ExpectCommit()

	err := repo.Create(context.Background(), tx, &domain.OutboxEvent{
		ID: "ev-1", OrganizationID: org, AggregateID: "p-1",
		AggregateType: domain.AggregateTypePosting, EventType: domain.EventTypePostingCreated,
		Payload: map[string]any{"fiat_amount": "100"}, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(context.Background()))

	assertExpectations(t, pool)
}
