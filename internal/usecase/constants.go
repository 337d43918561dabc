package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultBackfillBatchSize is how many record IDs a backfill scan reads per page
	DefaultBackfillBatchSize = 200

	// DefaultSettlementTolerance is the fiat shortfall still accepted as full settlement
	DefaultSettlementTolerance = "0.01"
)
