package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/infrastructure/postgres/generated"
	"github.com/iho/metalledger/internal/usecase"
)

const (
	metalCreditColumns = `id, organization_id, client_id, metal_type, status, original_grams, remaining_grams, origin_analysis_id, date, version, created_at, updated_at`
	usageColumns       = `id, organization_id, metal_credit_id, grams, consuming_sale_id, consuming_payment_id, settlement_quotation, settlement_fiat_value, date, created_at`
)

// MetalCreditRepository implements metal credit and usage persistence
type MetalCreditRepository struct {
	db generated.DBTX
}

// NewMetalCreditRepository creates a new metal credit repository
func NewMetalCreditRepository(pool *pgxpool.Pool) *MetalCreditRepository {
	return &MetalCreditRepository{db: pool}
}

// Create inserts a new credit
func (r *MetalCreditRepository) Create(ctx context.Context, tx usecase.Transaction, credit *domain.MetalCredit) error {
	query := `
		INSERT INTO metal_credits (` + metalCreditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := conn(r.db, tx).Exec(ctx, query,
		credit.ID,
		credit.OrganizationID,
		credit.ClientID,
		string(credit.MetalType),
		string(credit.Status),
		decimalToNumeric(credit.OriginalGrams),
		decimalToNumeric(credit.RemainingGrams),
		credit.OriginAnalysisID,
		credit.Date,
		credit.Version,
		credit.CreatedAt,
		credit.UpdatedAt,
	)

	return err
}

// GetByID retrieves a credit by ID
func (r *MetalCreditRepository) GetByID(ctx context.Context, orgID, id string) (*domain.MetalCredit, error) {
	return r.get(ctx, r.db, orgID, id, "")
}

// GetByIDForUpdate retrieves a credit with a row lock
func (r *MetalCreditRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.MetalCredit, error) {
	return r.get(ctx, conn(r.db, tx), orgID, id, " FOR UPDATE")
}

func (r *MetalCreditRepository) get(ctx context.Context, db generated.DBTX, orgID, id, lock string) (*domain.MetalCredit, error) {
	query := `SELECT ` + metalCreditColumns + ` FROM metal_credits WHERE organization_id = $1 AND id = $2` + lock

	credit, err := scanMetalCredit(db.QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCreditNotFound
		}
		return nil, err
	}

	return credit, nil
}

// Update stores remaining grams and status and bumps the version
func (r *MetalCreditRepository) Update(ctx context.Context, tx usecase.Transaction, credit *domain.MetalCredit) error {
	query := `
		UPDATE metal_credits
		SET remaining_grams = $2, status = $3, updated_at = $4, version = version + 1
		WHERE id = $1
		RETURNING version
	`

	err := conn(r.db, tx).QueryRow(ctx, query,
		credit.ID,
		decimalToNumeric(credit.RemainingGrams),
		string(credit.Status),
		credit.UpdatedAt,
	).Scan(&credit.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrCreditNotFound
	}

	return err
}

// ListByClient returns a client's credits oldest first, optionally for one metal
func (r *MetalCreditRepository) ListByClient(ctx context.Context, orgID, clientID string, metal *domain.MetalType) ([]*domain.MetalCredit, error) {
	query := `
		SELECT ` + metalCreditColumns + `
		FROM metal_credits
		WHERE organization_id = $1 AND client_id = $2 AND ($3::text IS NULL OR metal_type = $3)
		ORDER BY date, id
	`

	var metalArg *string
	if metal != nil {
		m := string(*metal)
		metalArg = &m
	}

	rows, err := r.db.Query(ctx, query, orgID, clientID, metalArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []*domain.MetalCredit
	for rows.Next() {
		credit, err := scanMetalCredit(rows)
		if err != nil {
			return nil, err
		}
		credits = append(credits, credit)
	}

	return credits, rows.Err()
}

// ScanIDs returns up to limit credit IDs greater than afterID
func (r *MetalCreditRepository) ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	return scanIDs(ctx, r.db, `SELECT id FROM metal_credits WHERE organization_id = $1 AND id > $2 ORDER BY id LIMIT $3`, orgID, afterID, limit)
}

// CreateUsage inserts an allocation against a credit
func (r *MetalCreditRepository) CreateUsage(ctx context.Context, tx usecase.Transaction, usage *domain.MetalCreditUsage) error {
	query := `
		INSERT INTO metal_credit_usages (` + usageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := conn(r.db, tx).Exec(ctx, query,
		usage.ID,
		usage.OrganizationID,
		usage.MetalCreditID,
		decimalToNumeric(usage.Grams),
		usage.ConsumingSaleID,
		usage.ConsumingPaymentID,
		decimalPtrToNumeric(usage.SettlementQuotation),
		decimalPtrToNumeric(usage.SettlementFiatValue),
		usage.Date,
		usage.CreatedAt,
	)

	return err
}

// ListUsages returns a credit's usages in creation order
func (r *MetalCreditRepository) ListUsages(ctx context.Context, tx usecase.Transaction, orgID, creditID string) ([]*domain.MetalCreditUsage, error) {
	query := `SELECT ` + usageColumns + ` FROM metal_credit_usages WHERE organization_id = $1 AND metal_credit_id = $2 ORDER BY created_at, id`

	rows, err := conn(r.db, tx).Query(ctx, query, orgID, creditID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usages []*domain.MetalCreditUsage
	for rows.Next() {
		usage, err := scanUsage(rows)
		if err != nil {
			return nil, err
		}
		usages = append(usages, usage)
	}

	return usages, rows.Err()
}

// GetUsageForUpdate retrieves a usage with a row lock
func (r *MetalCreditRepository) GetUsageForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.MetalCreditUsage, error) {
	query := `SELECT ` + usageColumns + ` FROM metal_credit_usages WHERE organization_id = $1 AND id = $2 FOR UPDATE`

	usage, err := scanUsage(conn(r.db, tx).QueryRow(ctx, query, orgID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: usage %s", domain.ErrCreditNotFound, id)
		}
		return nil, err
	}

	return usage, nil
}

// SetUsagePayment links a cash-settled usage to its payment posting
func (r *MetalCreditRepository) SetUsagePayment(ctx context.Context, tx usecase.Transaction, orgID, usageID, paymentID string) error {
	tag, err := conn(r.db, tx).Exec(ctx,
		`UPDATE metal_credit_usages SET consuming_payment_id = $3 WHERE organization_id = $1 AND id = $2`,
		orgID, usageID, paymentID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: usage %s", domain.ErrCreditNotFound, usageID)
	}

	return nil
}

// IsPaymentLinked reports whether any usage already points at paymentID
func (r *MetalCreditRepository) IsPaymentLinked(ctx context.Context, tx usecase.Transaction, orgID, paymentID string) (bool, error) {
	var linked bool
	err := conn(r.db, tx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM metal_credit_usages WHERE organization_id = $1 AND consuming_payment_id = $2)`,
		orgID, paymentID,
	).Scan(&linked)

	return linked, err
}

// ScanUnlinkedCashUsageIDs returns cash-settled usages that have no payment posting yet
func (r *MetalCreditRepository) ScanUnlinkedCashUsageIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	query := `
		SELECT id FROM metal_credit_usages
		WHERE organization_id = $1 AND id > $2
		  AND consuming_payment_id IS NULL
		  AND settlement_quotation IS NOT NULL
		  AND settlement_fiat_value IS NOT NULL
		ORDER BY id
		LIMIT $3
	`

	return scanIDs(ctx, r.db, query, orgID, afterID, limit)
}

func scanMetalCredit(row pgx.Row) (*domain.MetalCredit, error) {
	var (
		credit              domain.MetalCredit
		metal, status       string
		original, remaining pgtype.Numeric
	)

	err := row.Scan(
		&credit.ID,
		&credit.OrganizationID,
		&credit.ClientID,
		&metal,
		&status,
		&original,
		&remaining,
		&credit.OriginAnalysisID,
		&credit.Date,
		&credit.Version,
		&credit.CreatedAt,
		&credit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	credit.MetalType = domain.MetalType(metal)
	credit.Status = domain.MetalCreditStatus(status)
	credit.OriginalGrams = numericToDecimal(original)
	credit.RemainingGrams = numericToDecimal(remaining)

	return &credit, nil
}

func scanUsage(row pgx.Row) (*domain.MetalCreditUsage, error) {
	var (
		usage                 domain.MetalCreditUsage
		grams                 pgtype.Numeric
		quotation, fiatAmount pgtype.Numeric
	)

	err := row.Scan(
		&usage.ID,
		&usage.OrganizationID,
		&usage.MetalCreditID,
		&grams,
		&usage.ConsumingSaleID,
		&usage.ConsumingPaymentID,
		&quotation,
		&fiatAmount,
		&usage.Date,
		&usage.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	usage.Grams = numericToDecimal(grams)
	usage.SettlementQuotation = numericToDecimalPtr(quotation)
	usage.SettlementFiatValue = numericToDecimalPtr(fiatAmount)

	return &usage, nil
}
