package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/infrastructure/postgres/generated"
	"github.com/iho/metalledger/internal/usecase"
)

// RunningAccountRepository implements usecase.RunningAccountRepository.
type RunningAccountRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewRunningAccountRepository creates a new RunningAccountRepository.
func NewRunningAccountRepository(pool *pgxpool.Pool) *RunningAccountRepository {
	return newRunningAccountRepository(pool)
}

func newRunningAccountRepository(db generated.DBTX) *RunningAccountRepository {
	return &RunningAccountRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// Create creates a new running account.
func (r *RunningAccountRepository) Create(ctx context.Context, account *domain.RunningAccount) error {
	return r.queries.CreateRunningAccount(ctx, generated.CreateRunningAccountParams{
		ID:             account.ID,
		OrganizationID: account.OrganizationID,
		Name:           account.Name,
		Kind:           string(account.Kind),
		Currency:       account.Currency,
		FiatBalance:    decimalToNumeric(account.FiatBalance),
		MetalBalance:   decimalToNumeric(account.MetalBalance),
		Version:        account.Version,
		Active:         account.Active,
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})
}

// GetByID retrieves a running account by ID.
func (r *RunningAccountRepository) GetByID(ctx context.Context, orgID, id string) (*domain.RunningAccount, error) {
	row, err := r.queries.GetRunningAccountByID(ctx, generated.GetRunningAccountByIDParams{
		OrganizationID: orgID,
		ID:             id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToRunningAccount(row), nil
}

// GetByIDsForUpdate locks the accounts in ID order so concurrent batches
// touching the same accounts cannot deadlock.
func (r *RunningAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, orgID string, ids []string) ([]*domain.RunningAccount, error) {
	queries := generated.New(conn(r.db, tx))

	rows, err := queries.GetRunningAccountsByIDsForUpdate(ctx, generated.GetRunningAccountsByIDsForUpdateParams{
		OrganizationID: orgID,
		Ids:            ids,
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.RunningAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToRunningAccount(row))
	}

	return accounts, nil
}

// UpdateBalances stores balances, version and UpdatedAt.
func (r *RunningAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, account *domain.RunningAccount) error {
	queries := generated.New(conn(r.db, tx))

	return queries.UpdateRunningAccountBalances(ctx, generated.UpdateRunningAccountBalancesParams{
		ID:           account.ID,
		FiatBalance:  decimalToNumeric(account.FiatBalance),
		MetalBalance: decimalToNumeric(account.MetalBalance),
		Version:      account.Version,
		UpdatedAt:    timeToPgTimestamptz(account.UpdatedAt),
	})
}

// SetActive toggles whether the account accepts new postings.
func (r *RunningAccountRepository) SetActive(ctx context.Context, orgID, id string, active bool, updatedAt time.Time) error {
	n, err := r.queries.SetRunningAccountActive(ctx, generated.SetRunningAccountActiveParams{
		OrganizationID: orgID,
		ID:             id,
		Active:         active,
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List returns running accounts ordered by ID.
func (r *RunningAccountRepository) List(ctx context.Context, orgID string, limit, offset int) ([]*domain.RunningAccount, error) {
	rows, err := r.queries.ListRunningAccounts(ctx, generated.ListRunningAccountsParams{
		OrganizationID: orgID,
		Limit:          int32(limit),
		Offset:         int32(offset),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.RunningAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToRunningAccount(row))
	}

	return accounts, nil
}

// ScanIDs returns up to limit IDs greater than afterID.
func (r *RunningAccountRepository) ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	return r.queries.ScanRunningAccountIDs(ctx, generated.ScanRunningAccountIDsParams{
		OrganizationID: orgID,
		AfterID:        afterID,
		Limit:          int32(limit),
	})
}

func rowToRunningAccount(row generated.RunningAccount) *domain.RunningAccount {
	return &domain.RunningAccount{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		Name:           row.Name,
		Kind:           domain.RunningAccountKind(row.Kind),
		Currency:       row.Currency,
		FiatBalance:    numericToDecimal(row.FiatBalance),
		MetalBalance:   numericToDecimal(row.MetalBalance),
		Version:        row.Version,
		Active:         row.Active,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
