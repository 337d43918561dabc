package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createPosting = `-- name: CreatePosting :exec
INSERT INTO postings (id, organization_id, batch_id, ledger_account_id, running_account_id, kind, status, fiat_amount, currency, metal_grams, metal_quotation, description, reverses_posting_id, previous_fiat_balance, current_fiat_balance, previous_metal_balance, current_metal_balance, running_account_version, timestamp, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
`

type CreatePostingParams struct {
	ID                    string             `json:"id"`
	OrganizationID        string             `json:"organization_id"`
	BatchID               string             `json:"batch_id"`
	LedgerAccountID       string             `json:"ledger_account_id"`
	RunningAccountID      string             `json:"running_account_id"`
	Kind                  string             `json:"kind"`
	Status                string             `json:"status"`
	FiatAmount            pgtype.Numeric     `json:"fiat_amount"`
	Currency              string             `json:"currency"`
	MetalGrams            pgtype.Numeric     `json:"metal_grams"`
	MetalQuotation        pgtype.Numeric     `json:"metal_quotation"`
	Description           string             `json:"description"`
	ReversesPostingID     pgtype.Text        `json:"reverses_posting_id"`
	PreviousFiatBalance   pgtype.Numeric     `json:"previous_fiat_balance"`
	CurrentFiatBalance    pgtype.Numeric     `json:"current_fiat_balance"`
	PreviousMetalBalance  pgtype.Numeric     `json:"previous_metal_balance"`
	CurrentMetalBalance   pgtype.Numeric     `json:"current_metal_balance"`
	RunningAccountVersion int64              `json:"running_account_version"`
	Timestamp             pgtype.Timestamptz `json:"timestamp"`
	CreatedAt             pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreatePosting(ctx context.Context, arg CreatePostingParams) error {
	_, err := q.db.Exec(ctx, createPosting,
		arg.ID,
		arg.OrganizationID,
		arg.BatchID,
		arg.LedgerAccountID,
		arg.RunningAccountID,
		arg.Kind,
		arg.Status,
		arg.FiatAmount,
		arg.Currency,
		arg.MetalGrams,
		arg.MetalQuotation,
		arg.Description,
		arg.ReversesPostingID,
		arg.PreviousFiatBalance,
		arg.CurrentFiatBalance,
		arg.PreviousMetalBalance,
		arg.CurrentMetalBalance,
		arg.RunningAccountVersion,
		arg.Timestamp,
		arg.CreatedAt,
	)
	return err
}

const findActivePostings = `-- name: FindActivePostings :many
SELECT id, organization_id, batch_id, ledger_account_id, running_account_id, kind, status, fiat_amount, currency, metal_grams, metal_quotation, description, reverses_posting_id, previous_fiat_balance, current_fiat_balance, previous_metal_balance, current_metal_balance, running_account_version, timestamp, created_at FROM postings
WHERE organization_id = $1 AND ledger_account_id = $2 AND kind = $3 AND fiat_amount = $4 AND status = 'ACTIVE'
ORDER BY created_at, id
`

type FindActivePostingsParams struct {
	OrganizationID  string         `json:"organization_id"`
	LedgerAccountID string         `json:"ledger_account_id"`
	Kind            string         `json:"kind"`
	FiatAmount      pgtype.Numeric `json:"fiat_amount"`
}

func (q *Queries) FindActivePostings(ctx context.Context, arg FindActivePostingsParams) ([]Posting, error) {
	rows, err := q.db.Query(ctx, findActivePostings,
		arg.OrganizationID,
		arg.LedgerAccountID,
		arg.Kind,
		arg.FiatAmount,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Posting{}
	for rows.Next() {
		var i Posting
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.BatchID,
			&i.LedgerAccountID,
			&i.RunningAccountID,
			&i.Kind,
			&i.Status,
			&i.FiatAmount,
			&i.Currency,
			&i.MetalGrams,
			&i.MetalQuotation,
			&i.Description,
			&i.ReversesPostingID,
			&i.PreviousFiatBalance,
			&i.CurrentFiatBalance,
			&i.PreviousMetalBalance,
			&i.CurrentMetalBalance,
			&i.RunningAccountVersion,
			&i.Timestamp,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getPostingByID = `-- name: GetPostingByID :one
SELECT id, organization_id, batch_id, ledger_account_id, running_account_id, kind, status, fiat_amount, currency, metal_grams, metal_quotation, description, reverses_posting_id, previous_fiat_balance, current_fiat_balance, previous_metal_balance, current_metal_balance, running_account_version, timestamp, created_at FROM postings
WHERE organization_id = $1 AND id = $2
`

type GetPostingByIDParams struct {
	OrganizationID string `json:"organization_id"`
	ID             string `json:"id"`
}

func (q *Queries) GetPostingByID(ctx context.Context, arg GetPostingByIDParams) (Posting, error) {
	row := q.db.QueryRow(ctx, getPostingByID, arg.OrganizationID, arg.ID)
	var i Posting
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.BatchID,
		&i.LedgerAccountID,
		&i.RunningAccountID,
		&i.Kind,
		&i.Status,
		&i.FiatAmount,
		&i.Currency,
		&i.MetalGrams,
		&i.MetalQuotation,
		&i.Description,
		&i.ReversesPostingID,
		&i.PreviousFiatBalance,
		&i.CurrentFiatBalance,
		&i.PreviousMetalBalance,
		&i.CurrentMetalBalance,
		&i.RunningAccountVersion,
		&i.Timestamp,
		&i.CreatedAt,
	)
	return i, err
}

const getPostingByIDForUpdate = `-- name: GetPostingByIDForUpdate :one
SELECT id, organization_id, batch_id, ledger_account_id, running_account_id, kind, status, fiat_amount, currency, metal_grams, metal_quotation, description, reverses_posting_id, previous_fiat_balance, current_fiat_balance, previous_metal_balance, current_metal_balance, running_account_version, timestamp, created_at FROM postings
WHERE organization_id = $1 AND id = $2
FOR UPDATE
`

type GetPostingByIDForUpdateParams struct {
	OrganizationID string `json:"organization_id"`
	ID             string `json:"id"`
}

func (q *Queries) GetPostingByIDForUpdate(ctx context.Context, arg GetPostingByIDForUpdateParams) (Posting, error) {
	row := q.db.QueryRow(ctx, getPostingByIDForUpdate, arg.OrganizationID, arg.ID)
	var i Posting
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.BatchID,
		&i.LedgerAccountID,
		&i.RunningAccountID,
		&i.Kind,
		&i.Status,
		&i.FiatAmount,
		&i.Currency,
		&i.MetalGrams,
		&i.MetalQuotation,
		&i.Description,
		&i.ReversesPostingID,
		&i.PreviousFiatBalance,
		&i.CurrentFiatBalance,
		&i.PreviousMetalBalance,
		&i.CurrentMetalBalance,
		&i.RunningAccountVersion,
		&i.Timestamp,
		&i.CreatedAt,
	)
	return i, err
}

const getPostingsByIDs = `-- name: GetPostingsByIDs :many
SELECT id, organization_id, batch_id, ledger_account_id, running_account_id, kind, status, fiat_amount, currency, metal_grams, metal_quotation, description, reverses_posting_id, previous_fiat_balance, current_fiat_balance, previous_metal_balance, current_metal_balance, running_account_version, timestamp, created_at FROM postings
WHERE organization_id = $1 AND id = ANY($2::text[])
ORDER BY created_at, id
`

type GetPostingsByIDsParams struct {
	OrganizationID string   `json:"organization_id"`
	Ids            []string `json:"ids"`
}

func (q *Queries) GetPostingsByIDs(ctx context.Context, arg GetPostingsByIDsParams) ([]Posting, error) {
	rows, err := q.db.Query(ctx, getPostingsByIDs, arg.OrganizationID, arg.Ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Posting{}
	for rows.Next() {
		var i Posting
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.BatchID,
			&i.LedgerAccountID,
			&i.RunningAccountID,
			&i.Kind,
			&i.Status,
			&i.FiatAmount,
			&i.Currency,
			&i.MetalGrams,
			&i.MetalQuotation,
			&i.Description,
			&i.ReversesPostingID,
			&i.PreviousFiatBalance,
			&i.CurrentFiatBalance,
			&i.PreviousMetalBalance,
			&i.CurrentMetalBalance,
			&i.RunningAccountVersion,
			&i.Timestamp,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listActivePostingsByRunningAccount = `-- name: ListActivePostingsByRunningAccount :many
SELECT id, organization_id, batch_id, ledger_account_id, running_account_id, kind, status, fiat_amount, currency, metal_grams, metal_quotation, description, reverses_posting_id, previous_fiat_balance, current_fiat_balance, previous_metal_balance, current_metal_balance, running_account_version, timestamp, created_at FROM postings
WHERE organization_id = $1 AND running_account_id = $2 AND status = 'ACTIVE'
ORDER BY created_at, id
`

type ListActivePostingsByRunningAccountParams struct {
	OrganizationID   string `json:"organization_id"`
	RunningAccountID string `json:"running_account_id"`
}

func (q *Queries) ListActivePostingsByRunningAccount(ctx context.Context, arg ListActivePostingsByRunningAccountParams) ([]Posting, error) {
	rows, err := q.db.Query(ctx, listActivePostingsByRunningAccount, arg.OrganizationID, arg.RunningAccountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Posting{}
	for rows.Next() {
		var i Posting
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.BatchID,
			&i.LedgerAccountID,
			&i.RunningAccountID,
			&i.Kind,
			&i.Status,
			&i.FiatAmount,
			&i.Currency,
			&i.MetalGrams,
			&i.MetalQuotation,
			&i.Description,
			&i.ReversesPostingID,
			&i.PreviousFiatBalance,
			&i.CurrentFiatBalance,
			&i.PreviousMetalBalance,
			&i.CurrentMetalBalance,
			&i.RunningAccountVersion,
			&i.Timestamp,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPostingsByRunningAccount = `-- name: ListPostingsByRunningAccount :many
SELECT id, organization_id, batch_id, ledger_account_id, running_account_id, kind, status, fiat_amount, currency, metal_grams, metal_quotation, description, reverses_posting_id, previous_fiat_balance, current_fiat_balance, previous_metal_balance, current_metal_balance, running_account_version, timestamp, created_at FROM postings
WHERE organization_id = $1 AND running_account_id = $2
ORDER BY created_at DESC, id DESC
LIMIT $3 OFFSET $4
`

type ListPostingsByRunningAccountParams struct {
	OrganizationID   string `json:"organization_id"`
	RunningAccountID string `json:"running_account_id"`
	Limit            int32  `json:"limit"`
	Offset           int32  `json:"offset"`
}

func (q *Queries) ListPostingsByRunningAccount(ctx context.Context, arg ListPostingsByRunningAccountParams) ([]Posting, error) {
	rows, err := q.db.Query(ctx, listPostingsByRunningAccount,
		arg.OrganizationID,
		arg.RunningAccountID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Posting{}
	for rows.Next() {
		var i Posting
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.BatchID,
			&i.LedgerAccountID,
			&i.RunningAccountID,
			&i.Kind,
			&i.Status,
			&i.FiatAmount,
			&i.Currency,
			&i.MetalGrams,
			&i.MetalQuotation,
			&i.Description,
			&i.ReversesPostingID,
			&i.PreviousFiatBalance,
			&i.CurrentFiatBalance,
			&i.PreviousMetalBalance,
			&i.CurrentMetalBalance,
			&i.RunningAccountVersion,
			&i.Timestamp,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markPostingAdjusted = `-- name: MarkPostingAdjusted :execrows
UPDATE postings
SET status = 'ADJUSTED'
WHERE id = $1
`

func (q *Queries) MarkPostingAdjusted(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, markPostingAdjusted, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
