package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
)

// Repositories take an explicit organization ID on reads so tenant scoping is
// part of every query. Methods that accept a Transaction also accept nil,
// which reads outside any unit of work.

// LedgerAccountRepository defines data access for the chart of accounts.
type LedgerAccountRepository interface {
	Create(ctx context.Context, account *domain.LedgerAccount) error
	GetByID(ctx context.Context, orgID, id string) (*domain.LedgerAccount, error)
	GetByIDs(ctx context.Context, tx Transaction, orgID string, ids []string) ([]*domain.LedgerAccount, error)
	List(ctx context.Context, orgID string, limit, offset int) ([]*domain.LedgerAccount, error)
}

// RunningAccountRepository defines data access for running accounts.
type RunningAccountRepository interface {
	Create(ctx context.Context, account *domain.RunningAccount) error
	GetByID(ctx context.Context, orgID, id string) (*domain.RunningAccount, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, orgID string, ids []string) ([]*domain.RunningAccount, error)
	// UpdateBalances stores the account's balances, version and UpdatedAt.
	UpdateBalances(ctx context.Context, tx Transaction, account *domain.RunningAccount) error
	SetActive(ctx context.Context, orgID, id string, active bool, updatedAt time.Time) error
	List(ctx context.Context, orgID string, limit, offset int) ([]*domain.RunningAccount, error)
	ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error)
}

// PostingRepository defines data access for postings.
type PostingRepository interface {
	Create(ctx context.Context, tx Transaction, posting *domain.Posting) error
	GetByID(ctx context.Context, orgID, id string) (*domain.Posting, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, orgID, id string) (*domain.Posting, error)
	GetByIDs(ctx context.Context, tx Transaction, orgID string, ids []string) ([]*domain.Posting, error)
	MarkAdjusted(ctx context.Context, tx Transaction, id string) error
	ListByRunningAccount(ctx context.Context, orgID, runningAccountID string, limit, offset int) ([]*domain.Posting, error)
	ListActiveByRunningAccount(ctx context.Context, tx Transaction, orgID, runningAccountID string) ([]*domain.Posting, error)
	FindActive(ctx context.Context, tx Transaction, orgID, ledgerAccountID string, kind domain.PostingKind, fiat decimal.Decimal) ([]*domain.Posting, error)
}

// ClaimRepository defines data access for receivables and payables.
type ClaimRepository interface {
	Create(ctx context.Context, tx Transaction, claim *domain.Claim) error
	GetByID(ctx context.Context, orgID, id string) (*domain.Claim, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, orgID, id string) (*domain.Claim, error)
	AddLink(ctx context.Context, tx Transaction, link domain.ClaimLink) error
	RemoveLink(ctx context.Context, tx Transaction, claimID, postingID string) error
	UpdateSettlement(ctx context.Context, tx Transaction, claim *domain.Claim) error
	ListIDsByPosting(ctx context.Context, tx Transaction, orgID, postingID string) ([]string, error)
	ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error)
}

// MetalCreditRepository defines data access for metal credits and their usages.
type MetalCreditRepository interface {
	Create(ctx context.Context, tx Transaction, credit *domain.MetalCredit) error
	GetByID(ctx context.Context, orgID, id string) (*domain.MetalCredit, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, orgID, id string) (*domain.MetalCredit, error)
	Update(ctx context.Context, tx Transaction, credit *domain.MetalCredit) error
	ListByClient(ctx context.Context, orgID, clientID string, metal *domain.MetalType) ([]*domain.MetalCredit, error)
	ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error)

	CreateUsage(ctx context.Context, tx Transaction, usage *domain.MetalCreditUsage) error
	ListUsages(ctx context.Context, tx Transaction, orgID, creditID string) ([]*domain.MetalCreditUsage, error)
	GetUsageForUpdate(ctx context.Context, tx Transaction, orgID, id string) (*domain.MetalCreditUsage, error)
	SetUsagePayment(ctx context.Context, tx Transaction, orgID, usageID, paymentID string) error
	IsPaymentLinked(ctx context.Context, tx Transaction, orgID, paymentID string) (bool, error)
	ScanUnlinkedCashUsageIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error)
}

// MetalLotRepository defines data access for metal lots.
type MetalLotRepository interface {
	Create(ctx context.Context, tx Transaction, lot *domain.MetalLot) error
	GetByID(ctx context.Context, orgID, id string) (*domain.MetalLot, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, orgID, id string) (*domain.MetalLot, error)
	Update(ctx context.Context, tx Transaction, lot *domain.MetalLot) error
	ListAvailable(ctx context.Context, orgID, productID string, after *domain.LotCursor, limit int) ([]*domain.MetalLot, error)
	ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error)
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on transient lock conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release removes the key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// RunLocker provides named, expiring locks shared between processes.
type RunLocker interface {
	// Acquire returns domain.ErrLockHeld when the name is already locked.
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), err error)
}

// MetricsRecorder receives domain counters.
type MetricsRecorder interface {
	PostingsCreated(n int)
	PostingReversed()
	CreditAllocated(metal domain.MetalType, grams decimal.Decimal)
	LotConsumed(metal domain.MetalType, grams decimal.Decimal)
	BackfillFinished(kind domain.BackfillKind, repaired, skipped int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) PostingsCreated(int)                               {}
func (NopMetrics) PostingReversed()                                  {}
func (NopMetrics) CreditAllocated(domain.MetalType, decimal.Decimal) {}
func (NopMetrics) LotConsumed(domain.MetalType, decimal.Decimal)     {}
func (NopMetrics) BackfillFinished(domain.BackfillKind, int, int)    {}

func orNop(m MetricsRecorder) MetricsRecorder {
	if m == nil {
		return NopMetrics{}
	}
	return m
}
