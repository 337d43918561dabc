package usecase

import (
	"context"
)

// UnitOfWork runs a function inside one database transaction and retries the
// whole function when the retrier classifies the failure as transient.
type UnitOfWork struct {
	txManager TransactionManager
	retrier   Retrier
}

// NewUnitOfWork creates a new UnitOfWork. A nil retrier runs each unit once.
func NewUnitOfWork(txManager TransactionManager, retrier Retrier) *UnitOfWork {
	return &UnitOfWork{
		txManager: txManager,
		retrier:   retrier,
	}
}

// Do executes fn in a fresh transaction, committing when fn returns nil.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	attempt := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := u.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer tx.Rollback(txCtx)

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if u.retrier == nil {
		return attempt()
	}

	return u.retrier.Retry(ctx, attempt)
}
