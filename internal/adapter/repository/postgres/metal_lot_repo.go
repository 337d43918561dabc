package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/infrastructure/postgres/generated"
	"github.com/iho/metalledger/internal/usecase"
)

const metalLotColumns = `id, organization_id, product_id, source_type, source_id, metal_type, status, initial_grams, remaining_grams, purity, entry_date, created_at, updated_at`

// MetalLotRepository implements metal lot persistence
type MetalLotRepository struct {
	db generated.DBTX
}

// NewMetalLotRepository creates a new metal lot repository
func NewMetalLotRepository(pool *pgxpool.Pool) *MetalLotRepository {
	return &MetalLotRepository{db: pool}
}

// Create inserts a received lot
func (r *MetalLotRepository) Create(ctx context.Context, tx usecase.Transaction, lot *domain.MetalLot) error {
	query := `
		INSERT INTO metal_lots (` + metalLotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := conn(r.db, tx).Exec(ctx, query,
		lot.ID,
		lot.OrganizationID,
		lot.ProductID,
		lot.SourceType,
		lot.SourceID,
		string(lot.MetalType),
		string(lot.Status),
		decimalToNumeric(lot.InitialGrams),
		decimalToNumeric(lot.RemainingGrams),
		decimalToNumeric(lot.Purity),
		lot.EntryDate,
		lot.CreatedAt,
		lot.UpdatedAt,
	)

	return err
}

// GetByID retrieves a lot by ID
func (r *MetalLotRepository) GetByID(ctx context.Context, orgID, id string) (*domain.MetalLot, error) {
	return r.get(ctx, r.db, orgID, id, "")
}

// GetByIDForUpdate retrieves a lot with a row lock
func (r *MetalLotRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.MetalLot, error) {
	return r.get(ctx, conn(r.db, tx), orgID, id, " FOR UPDATE")
}

func (r *MetalLotRepository) get(ctx context.Context, db generated.DBTX, orgID, id, lock string) (*domain.MetalLot, error) {
	query := `SELECT ` + metalLotColumns + ` FROM metal_lots WHERE organization_id = $1 AND id = $2` + lock

	lot, err := scanMetalLot(db.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLotNotFound
		}
		return nil, err
	}

	return lot, nil
}

// Update stores remaining grams and status
func (r *MetalLotRepository) Update(ctx context.Context, tx usecase.Transaction, lot *domain.MetalLot) error {
	query := `
		UPDATE metal_lots
		SET remaining_grams = $2, status = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := conn(r.db, tx).Exec(ctx, query,
		lot.ID,
		decimalToNumeric(lot.RemainingGrams),
		string(lot.Status),
		lot.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrLotNotFound
	}

	return nil
}

// ListAvailable pages AVAILABLE lots of a product in (entry_date, id) order,
// starting strictly after the cursor when one is given.
func (r *MetalLotRepository) ListAvailable(ctx context.Context, orgID, productID string, after *domain.LotCursor, limit int) ([]*domain.MetalLot, error) {
	var (
		rows pgx.Rows
		err  error
	)

	if after == nil {
		query := `
			SELECT ` + metalLotColumns + `
			FROM metal_lots
			WHERE organization_id = $1 AND product_id = $2 AND status = 'AVAILABLE'
			ORDER BY entry_date, id
			LIMIT $3
		`
		rows, err = r.db.Query(ctx, query, orgID, productID, limit)
	} else {
		query := `
			SELECT ` + metalLotColumns + `
			FROM metal_lots
			WHERE organization_id = $1 AND product_id = $2 AND status = 'AVAILABLE'
			  AND (entry_date, id) > ($3, $4)
			ORDER BY entry_date, id
			LIMIT $5
		`
		rows, err = r.db.Query(ctx, query, orgID, productID, after.EntryDate, after.ID, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []*domain.MetalLot
	for rows.Next() {
		lot, err := scanMetalLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}

	return lots, rows.Err()
}

// ScanIDs returns up to limit lot IDs greater than afterID
func (r *MetalLotRepository) ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	return scanIDs(ctx, r.db, `SELECT id FROM metal_lots WHERE organization_id = $1 AND id > $2 ORDER BY id LIMIT $3`, orgID, afterID, limit)
}

func scanMetalLot(row pgx.Row) (*domain.MetalLot, error) {
	var (
		lot                     domain.MetalLot
		metal, status           string
		initial, remaining, pur pgtype.Numeric
	)

	err := row.Scan(
		&lot.ID,
		&lot.OrganizationID,
		&lot.ProductID,
		&lot.SourceType,
		&lot.SourceID,
		&metal,
		&status,
		&initial,
		&remaining,
		&pur,
		&lot.EntryDate,
		&lot.CreatedAt,
		&lot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lot.MetalType = domain.MetalType(metal)
	lot.Status = domain.MetalLotStatus(status)
	lot.InitialGrams = numericToDecimal(initial)
	lot.RemainingGrams = numericToDecimal(remaining)
	lot.Purity = numericToDecimal(pur)

	return &lot, nil
}
