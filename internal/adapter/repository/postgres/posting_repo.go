package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/infrastructure/postgres/generated"
	"github.com/iho/metalledger/internal/usecase"
)

// PostingRepository implements usecase.PostingRepository.
type PostingRepository struct {
	db      generated.DBTX
	queries *generated.Queries
}

// NewPostingRepository creates a new PostingRepository.
func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return newPostingRepository(pool)
}

func newPostingRepository(db generated.DBTX) *PostingRepository {
	return &PostingRepository{
		db:      db,
		queries: generated.New(db),
	}
}

// Create appends a posting. A second reversal of the same posting violates
// the unique index on reverses_posting_id.
func (r *PostingRepository) Create(ctx context.Context, tx usecase.Transaction, posting *domain.Posting) error {
	queries := generated.New(conn(r.db, tx))

	err := queries.CreatePosting(ctx, generated.CreatePostingParams{
		ID:                    posting.ID,
		OrganizationID:        posting.OrganizationID,
		BatchID:               posting.BatchID,
		LedgerAccountID:       posting.LedgerAccountID,
		RunningAccountID:      posting.RunningAccountID,
		Kind:                  string(posting.Kind),
		Status:                string(posting.Status),
		FiatAmount:            decimalToNumeric(posting.FiatAmount),
		Currency:              posting.Currency,
		MetalGrams:            decimalPtrToNumeric(posting.MetalGrams),
		MetalQuotation:        decimalPtrToNumeric(posting.MetalQuotation),
		Description:           posting.Description,
		ReversesPostingID:     stringPtrToText(posting.ReversesPostingID),
		PreviousFiatBalance:   decimalToNumeric(posting.PreviousFiatBalance),
		CurrentFiatBalance:    decimalToNumeric(posting.CurrentFiatBalance),
		PreviousMetalBalance:  decimalToNumeric(posting.PreviousMetalBalance),
		CurrentMetalBalance:   decimalToNumeric(posting.CurrentMetalBalance),
		RunningAccountVersion: posting.RunningAccountVersion,
		Timestamp:             timeToPgTimestamptz(posting.Timestamp),
		CreatedAt:             timeToPgTimestamptz(posting.CreatedAt),
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrPostingAdjusted, err)
	}

	return err
}

// GetByID retrieves a posting by ID.
func (r *PostingRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Posting, error) {
	row, err := r.queries.GetPostingByID(ctx, generated.GetPostingByIDParams{
		OrganizationID: orgID,
		ID:             id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostingNotFound
		}

		return nil, err
	}

	return rowToPosting(row), nil
}

// GetByIDForUpdate retrieves a posting with a FOR UPDATE lock.
func (r *PostingRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.Posting, error) {
	queries := generated.New(conn(r.db, tx))

	row, err := queries.GetPostingByIDForUpdate(ctx, generated.GetPostingByIDForUpdateParams{
		OrganizationID: orgID,
		ID:             id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostingNotFound
		}

		return nil, err
	}

	return rowToPosting(row), nil
}

// GetByIDs returns the postings that exist among ids. Missing IDs are omitted.
func (r *PostingRepository) GetByIDs(ctx context.Context, tx usecase.Transaction, orgID string, ids []string) ([]*domain.Posting, error) {
	queries := generated.New(conn(r.db, tx))

	rows, err := queries.GetPostingsByIDs(ctx, generated.GetPostingsByIDsParams{
		OrganizationID: orgID,
		Ids:            ids,
	})
	if err != nil {
		return nil, err
	}

	return rowsToPostings(rows), nil
}

// MarkAdjusted flags a posting as superseded by a reversal.
func (r *PostingRepository) MarkAdjusted(ctx context.Context, tx usecase.Transaction, id string) error {
	queries := generated.New(conn(r.db, tx))

	n, err := queries.MarkPostingAdjusted(ctx, id)
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrPostingNotFound
	}

	return nil
}

// ListByRunningAccount returns postings newest first.
func (r *PostingRepository) ListByRunningAccount(ctx context.Context, orgID, runningAccountID string, limit, offset int) ([]*domain.Posting, error) {
	rows, err := r.queries.ListPostingsByRunningAccount(ctx, generated.ListPostingsByRunningAccountParams{
		OrganizationID:   orgID,
		RunningAccountID: runningAccountID,
		Limit:            int32(limit),
		Offset:           int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToPostings(rows), nil
}

// ListActiveByRunningAccount returns ACTIVE postings in insertion order.
func (r *PostingRepository) ListActiveByRunningAccount(ctx context.Context, tx usecase.Transaction, orgID, runningAccountID string) ([]*domain.Posting, error) {
	queries := generated.New(conn(r.db, tx))

	rows, err := queries.ListActivePostingsByRunningAccount(ctx, generated.ListActivePostingsByRunningAccountParams{
		OrganizationID:   orgID,
		RunningAccountID: runningAccountID,
	})
	if err != nil {
		return nil, err
	}

	return rowsToPostings(rows), nil
}

// FindActive returns ACTIVE postings on a ledger account with the given kind and amount.
func (r *PostingRepository) FindActive(ctx context.Context, tx usecase.Transaction, orgID, ledgerAccountID string, kind domain.PostingKind, fiat decimal.Decimal) ([]*domain.Posting, error) {
	queries := generated.New(conn(r.db, tx))

	rows, err := queries.FindActivePostings(ctx, generated.FindActivePostingsParams{
		OrganizationID:  orgID,
		LedgerAccountID: ledgerAccountID,
		Kind:            string(kind),
		FiatAmount:      decimalToNumeric(fiat),
	})
	if err != nil {
		return nil, err
	}

	return rowsToPostings(rows), nil
}

func rowsToPostings(rows []generated.Posting) []*domain.Posting {
	postings := make([]*domain.Posting, 0, len(rows))
	for _, row := range rows {
		postings = append(postings, rowToPosting(row))
	}
	return postings
}

func rowToPosting(row generated.Posting) *domain.Posting {
	return &domain.Posting{
		ID:                    row.ID,
		OrganizationID:        row.OrganizationID,
		BatchID:               row.BatchID,
		LedgerAccountID:       row.LedgerAccountID,
		RunningAccountID:      row.RunningAccountID,
		Kind:                  domain.PostingKind(row.Kind),
		Status:                domain.PostingStatus(row.Status),
		FiatAmount:            numericToDecimal(row.FiatAmount),
		Currency:              row.Currency,
		MetalGrams:            numericToDecimalPtr(row.MetalGrams),
		MetalQuotation:        numericToDecimalPtr(row.MetalQuotation),
		Description:           row.Description,
		ReversesPostingID:     textToStringPtr(row.ReversesPostingID),
		PreviousFiatBalance:   numericToDecimal(row.PreviousFiatBalance),
		CurrentFiatBalance:    numericToDecimal(row.CurrentFiatBalance),
		PreviousMetalBalance:  numericToDecimal(row.PreviousMetalBalance),
		CurrentMetalBalance:   numericToDecimal(row.CurrentMetalBalance),
		RunningAccountVersion: row.RunningAccountVersion,
		Timestamp:             row.Timestamp.Time,
		CreatedAt:             row.CreatedAt.Time,
	}
}
