package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/infrastructure/postgres/generated"
	"github.com/iho/metalledger/internal/usecase"
)

const ledgerAccountColumns = `id, organization_id, parent_id, code, name, kind, accepts_postings, created_at, updated_at`

// LedgerAccountRepository implements chart-of-accounts persistence
type LedgerAccountRepository struct {
	db generated.DBTX
}

// NewLedgerAccountRepository creates a new ledger account repository
func NewLedgerAccountRepository(pool *pgxpool.Pool) *LedgerAccountRepository {
	return &LedgerAccountRepository{db: pool}
}

// Create inserts a new ledger account. Codes are unique per organization.
func (r *LedgerAccountRepository) Create(ctx context.Context, account *domain.LedgerAccount) error {
	query := `
		INSERT INTO ledger_accounts (` + ledgerAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		account.ID,
		account.OrganizationID,
		account.ParentID,
		account.Code,
		account.Name,
		string(account.Kind),
		account.AcceptsPostings,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: code %q already exists", domain.ErrInvalidAccountCode, account.Code)
	}

	return err
}

// GetByID retrieves a ledger account by ID
func (r *LedgerAccountRepository) GetByID(ctx context.Context, orgID, id string) (*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE organization_id = $1 AND id = $2`

	account, err := scanLedgerAccount(r.db.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}

	return account, nil
}

// GetByIDs retrieves the ledger accounts that exist among ids
func (r *LedgerAccountRepository) GetByIDs(ctx context.Context, tx usecase.Transaction, orgID string, ids []string) ([]*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE organization_id = $1 AND id = ANY($2::text[]) ORDER BY id`

	rows, err := conn(r.db, tx).Query(ctx, query, orgID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLedgerAccounts(rows)
}

// List returns ledger accounts ordered by code
func (r *LedgerAccountRepository) List(ctx context.Context, orgID string, limit, offset int) ([]*domain.LedgerAccount, error) {
	query := `SELECT ` + ledgerAccountColumns + ` FROM ledger_accounts WHERE organization_id = $1 ORDER BY code LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, orgID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLedgerAccounts(rows)
}

func collectLedgerAccounts(rows pgx.Rows) ([]*domain.LedgerAccount, error) {
	var accounts []*domain.LedgerAccount
	for rows.Next() {
		account, err := scanLedgerAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanLedgerAccount(row pgx.Row) (*domain.LedgerAccount, error) {
	var (
		account domain.LedgerAccount
		kind    string
	)

	err := row.Scan(
		&account.ID,
		&account.OrganizationID,
		&account.ParentID,
		&account.Code,
		&account.Name,
		&kind,
		&account.AcceptsPostings,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.Kind = domain.LedgerAccountKind(kind)
	return &account, nil
}
