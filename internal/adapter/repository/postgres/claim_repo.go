package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/infrastructure/postgres/generated"
	"github.com/iho/metalledger/internal/usecase"
)

const (
	claimColumns = `id, organization_id, kind, counterparty, currency, original_amount, ledger_account_id, due_date, settled, settled_at, running_account_id, created_at, updated_at`

	pgErrForeignKeyViolation = "23503"
)

// ClaimRepository implements receivable and payable persistence
type ClaimRepository struct {
	db generated.DBTX
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(pool *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{db: pool}
}

// Create inserts a claim without links
func (r *ClaimRepository) Create(ctx context.Context, tx usecase.Transaction, claim *domain.Claim) error {
	query := `
		INSERT INTO claims (` + claimColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := conn(r.db, tx).Exec(ctx, query,
		claim.ID,
		claim.OrganizationID,
		string(claim.Kind),
		claim.Counterparty,
		claim.Currency,
		decimalToNumeric(claim.OriginalAmount),
		claim.LedgerAccountID,
		claim.DueDate,
		claim.Settled,
		claim.SettledAt,
		claim.RunningAccountID,
		claim.CreatedAt,
		claim.UpdatedAt,
	)

	return err
}

// GetByID retrieves a claim with its links in position order
func (r *ClaimRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Claim, error) {
	return r.get(ctx, r.db, orgID, id, "")
}

// GetByIDForUpdate locks the claim row for the rest of the transaction
func (r *ClaimRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.Claim, error) {
	return r.get(ctx, conn(r.db, tx), orgID, id, " FOR UPDATE")
}

func (r *ClaimRepository) get(ctx context.Context, db generated.DBTX, orgID, id, lock string) (*domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE organization_id = $1 AND id = $2` + lock

	claim, err := scanClaim(db.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, err
	}

	links, err := r.links(ctx, db, claim.ID)
	if err != nil {
		return nil, err
	}
	claim.Links = links

	return claim, nil
}

func (r *ClaimRepository) links(ctx context.Context, db generated.DBTX, claimID string) ([]domain.ClaimLink, error) {
	query := `
		SELECT claim_id, posting_id, position, linked_at
		FROM claim_links
		WHERE claim_id = $1
		ORDER BY position
	`

	rows, err := db.Query(ctx, query, claimID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []domain.ClaimLink
	for rows.Next() {
		var l domain.ClaimLink
		if err := rows.Scan(&l.ClaimID, &l.PostingID, &l.Position, &l.LinkedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}

	return links, rows.Err()
}

// AddLink attaches a posting to a claim
func (r *ClaimRepository) AddLink(ctx context.Context, tx usecase.Transaction, link domain.ClaimLink) error {
	query := `
		INSERT INTO claim_links (claim_id, posting_id, position, linked_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := conn(r.db, tx).Exec(ctx, query, link.ClaimID, link.PostingID, link.Position, link.LinkedAt)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrPostingAlreadyLinked, link.PostingID)
		case pgErrForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrClaimNotFound, link.ClaimID)
		}
	}

	return err
}

// RemoveLink detaches a posting from a claim
func (r *ClaimRepository) RemoveLink(ctx context.Context, tx usecase.Transaction, claimID, postingID string) error {
	query := `DELETE FROM claim_links WHERE claim_id = $1 AND posting_id = $2`

	tag, err := conn(r.db, tx).Exec(ctx, query, claimID, postingID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: posting %s is not linked to claim %s", domain.ErrPostingNotFound, postingID, claimID)
	}

	return nil
}

// UpdateSettlement stores the derived settlement fields
func (r *ClaimRepository) UpdateSettlement(ctx context.Context, tx usecase.Transaction, claim *domain.Claim) error {
	query := `
		UPDATE claims
		SET settled = $2, settled_at = $3, running_account_id = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := conn(r.db, tx).Exec(ctx, query,
		claim.ID,
		claim.Settled,
		claim.SettledAt,
		claim.RunningAccountID,
		claim.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrClaimNotFound
	}

	return nil
}

// ListIDsByPosting returns the IDs of claims linking the posting, in ID order
func (r *ClaimRepository) ListIDsByPosting(ctx context.Context, tx usecase.Transaction, orgID, postingID string) ([]string, error) {
	query := `
		SELECT l.claim_id
		FROM claim_links l
		JOIN claims c ON c.id = l.claim_id
		WHERE c.organization_id = $1 AND l.posting_id = $2
		ORDER BY l.claim_id
	`

	rows, err := conn(r.db, tx).Query(ctx, query, orgID, postingID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// ScanIDs returns up to limit claim IDs greater than afterID
func (r *ClaimRepository) ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	return scanIDs(ctx, r.db, `SELECT id FROM claims WHERE organization_id = $1 AND id > $2 ORDER BY id LIMIT $3`, orgID, afterID, limit)
}

func scanClaim(row pgx.Row) (*domain.Claim, error) {
	var (
		claim  domain.Claim
		kind   string
		amount pgtype.Numeric
	)

	err := row.Scan(
		&claim.ID,
		&claim.OrganizationID,
		&kind,
		&claim.Counterparty,
		&claim.Currency,
		&amount,
		&claim.LedgerAccountID,
		&claim.DueDate,
		&claim.Settled,
		&claim.SettledAt,
		&claim.RunningAccountID,
		&claim.CreatedAt,
		&claim.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	claim.Kind = domain.ClaimKind(kind)
	claim.OriginalAmount = numericToDecimal(amount)

	return &claim, nil
}

// scanIDs runs a keyset query returning a single id column.
func scanIDs(ctx context.Context, db generated.DBTX, query, orgID, afterID string, limit int) ([]string, error) {
	rows, err := db.Query(ctx, query, orgID, afterID, limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}
