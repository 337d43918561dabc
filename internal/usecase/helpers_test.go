package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
	"github.com/iho/metalledger/internal/usecase/mocks"
)

const org = "org-1"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func strp(s string) *string {
	return &s
}

// testEnv wires every use case over one in-memory store.
type testEnv struct {
	store   *mocks.Store
	idGen   *mocks.MockIDGenerator
	metrics *mocks.MockMetrics
	uow     *usecase.UnitOfWork

	ledgerRepo  *mocks.MockLedgerAccountRepository
	runningRepo *mocks.MockRunningAccountRepository
	postingRepo *mocks.MockPostingRepository
	claimRepo   *mocks.MockClaimRepository
	creditRepo  *mocks.MockMetalCreditRepository
	lotRepo     *mocks.MockMetalLotRepository
	outboxRepo  *mocks.MockOutboxRepository

	accounts *usecase.AccountUseCase
	postings *usecase.PostingUseCase
	claims   *usecase.ClaimUseCase
	credits  *usecase.MetalCreditUseCase
	lots     *usecase.MetalLotUseCase
	backfill *usecase.BackfillUseCase
	ledger   *usecase.LedgerUseCase

	payable *domain.LedgerAccount
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	e := &testEnv{
		store:   mocks.NewStore(),
		idGen:   mocks.NewMockIDGenerator(),
		metrics: mocks.NewMockMetrics(),
	}

	e.uow = usecase.NewUnitOfWork(mocks.NewMockTransactionManager(e.store), nil)
	e.ledgerRepo = mocks.NewMockLedgerAccountRepository(e.store)
	e.runningRepo = mocks.NewMockRunningAccountRepository(e.store)
	e.postingRepo = mocks.NewMockPostingRepository(e.store)
	e.claimRepo = mocks.NewMockClaimRepository(e.store)
	e.creditRepo = mocks.NewMockMetalCreditRepository(e.store)
	e.lotRepo = mocks.NewMockMetalLotRepository(e.store)
	e.outboxRepo = mocks.NewMockOutboxRepository(e.store)

	e.accounts = usecase.NewAccountUseCase(e.ledgerRepo, e.runningRepo, e.idGen)
	e.payable = e.ledgerAccount(t, "2.1.9", "Metal credits payable", domain.LedgerAccountLiability)

	e.postings = usecase.NewPostingUseCase(e.uow, e.ledgerRepo, e.runningRepo, e.postingRepo, e.outboxRepo, e.idGen, e.metrics)
	e.claims = usecase.NewClaimUseCase(e.uow, e.claimRepo, e.postingRepo, e.outboxRepo, e.idGen, d(usecase.DefaultSettlementTolerance))
	e.postings.WithClaims(e.claims)
	e.credits = usecase.NewMetalCreditUseCase(e.uow, e.creditRepo, e.postings, e.outboxRepo, e.idGen, e.metrics, e.payable.ID)
	e.lots = usecase.NewMetalLotUseCase(e.uow, e.lotRepo, e.outboxRepo, e.idGen, e.metrics)
	e.ledger = usecase.NewLedgerUseCase(e.runningRepo, e.postingRepo)
	e.backfill = usecase.NewBackfillUseCase(e.uow, usecase.BackfillDeps{
		RunningAccounts: e.runningRepo,
		Postings:        e.postingRepo,
		Claims:          e.claimRepo,
		Credits:         e.creditRepo,
		Lots:            e.lotRepo,
		Outbox:          e.outboxRepo,
		IDGen:           e.idGen,
		Metrics:         e.metrics,
	}, zerolog.Nop(), d(usecase.DefaultSettlementTolerance), e.payable.ID)

	return e
}

func (e *testEnv) ledgerAccount(t *testing.T, code, name string, kind domain.LedgerAccountKind) *domain.LedgerAccount {
	t.Helper()

	la, err := e.accounts.CreateLedgerAccount(context.Background(), usecase.CreateLedgerAccountInput{
		OrganizationID:  org,
		Code:            code,
		Name:            name,
		Kind:            kind,
		AcceptsPostings: true,
	})
	require.NoError(t, err)

	return la
}

func (e *testEnv) runningAccount(t *testing.T, name string, kind domain.RunningAccountKind) *domain.RunningAccount {
	t.Helper()

	ra, err := e.accounts.CreateRunningAccount(context.Background(), usecase.CreateRunningAccountInput{
		OrganizationID: org,
		Name:           name,
		Currency:       "BRL",
		Kind:           kind,
	})
	require.NoError(t, err)

	return ra
}

func (e *testEnv) balances(t *testing.T, id string) domain.Balances {
	t.Helper()

	ra, err := e.runningRepo.GetByID(context.Background(), org, id)
	require.NoError(t, err)

	return domain.Balances{Fiat: ra.FiatBalance, Metal: ra.MetalBalance}
}

// requireConserved replays every ACTIVE posting and compares with the stored balances.
func (e *testEnv) requireConserved(t *testing.T) {
	t.Helper()

	report, err := e.ledger.CheckConsistency(context.Background(), org)
	require.NoError(t, err)
	require.True(t, report.Consistent, "discrepancies: %+v", report.Discrepancies)
}

// fixture is a small chart of accounts most tests share.
type fixture struct {
	sales    *domain.LedgerAccount
	clients  *domain.LedgerAccount
	cashLA   *domain.LedgerAccount
	cash     *domain.RunningAccount
	bank     *domain.RunningAccount
	stock    *domain.RunningAccount
	supplier *domain.RunningAccount
}

func (e *testEnv) fixture(t *testing.T) fixture {
	t.Helper()

	return fixture{
		sales:    e.ledgerAccount(t, "3.1.1", "Vendas", domain.LedgerAccountRevenue),
		clients:  e.ledgerAccount(t, "1.1.7", "Clientes", domain.LedgerAccountAsset),
		cashLA:   e.ledgerAccount(t, "1.1.1", "Caixa", domain.LedgerAccountAsset),
		cash:     e.runningAccount(t, "Cash drawer", domain.RunningAccountCash),
		bank:     e.runningAccount(t, "Bank", domain.RunningAccountBank),
		stock:    e.runningAccount(t, "Gold stock", domain.RunningAccountMetalStock),
		supplier: e.runningAccount(t, "Supplier metal", domain.RunningAccountSupplierMetal),
	}
}
