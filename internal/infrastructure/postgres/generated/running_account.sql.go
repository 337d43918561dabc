package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createRunningAccount = `-- name: CreateRunningAccount :exec
INSERT INTO running_accounts (id, organization_id, name, kind, currency, fiat_balance, metal_balance, version, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateRunningAccountParams struct {
	ID             string             `json:"id"`
	OrganizationID string             `json:"organization_id"`
	Name           string             `json:"name"`
	Kind           string             `json:"kind"`
	Currency       string             `json:"currency"`
	FiatBalance    pgtype.Numeric     `json:"fiat_balance"`
	MetalBalance   pgtype.Numeric     `json:"metal_balance"`
	Version        int64              `json:"version"`
	Active         bool               `json:"active"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateRunningAccount(ctx context.Context, arg CreateRunningAccountParams) error {
	_, err := q.db.Exec(ctx, createRunningAccount,
		arg.ID,
		arg.OrganizationID,
		arg.Name,
		arg.Kind,
		arg.Currency,
		arg.FiatBalance,
		arg.MetalBalance,
		arg.Version,
		arg.Active,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getRunningAccountByID = `-- name: GetRunningAccountByID :one
SELECT id, organization_id, name, kind, currency, fiat_balance, metal_balance, version, active, created_at, updated_at FROM running_accounts
WHERE organization_id = $1 AND id = $2
`

type GetRunningAccountByIDParams struct {
	OrganizationID string `json:"organization_id"`
	ID             string `json:"id"`
}

func (q *Queries) GetRunningAccountByID(ctx context.Context, arg GetRunningAccountByIDParams) (RunningAccount, error) {
	row := q.db.QueryRow(ctx, getRunningAccountByID, arg.OrganizationID, arg.ID)
	var i RunningAccount
	err := row.Scan(
		&i.ID,
		&i.OrganizationID,
		&i.Name,
		&i.Kind,
		&i.Currency,
		&i.FiatBalance,
		&i.MetalBalance,
		&i.Version,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getRunningAccountsByIDsForUpdate = `-- name: GetRunningAccountsByIDsForUpdate :many
SELECT id, organization_id, name, kind, currency, fiat_balance, metal_balance, version, active, created_at, updated_at FROM running_accounts
WHERE organization_id = $1 AND id = ANY($2::text[])
ORDER BY id
FOR UPDATE
`

type GetRunningAccountsByIDsForUpdateParams struct {
	OrganizationID string   `json:"organization_id"`
	Ids            []string `json:"ids"`
}

func (q *Queries) GetRunningAccountsByIDsForUpdate(ctx context.Context, arg GetRunningAccountsByIDsForUpdateParams) ([]RunningAccount, error) {
	rows, err := q.db.Query(ctx, getRunningAccountsByIDsForUpdate, arg.OrganizationID, arg.Ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []RunningAccount{}
	for rows.Next() {
		var i RunningAccount
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.Name,
			&i.Kind,
			&i.Currency,
			&i.FiatBalance,
			&i.MetalBalance,
			&i.Version,
			&i.Active,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const listRunningAccounts = `-- name: ListRunningAccounts :many
SELECT id, organization_id, name, kind, currency, fiat_balance, metal_balance, version, active, created_at, updated_at FROM running_accounts
WHERE organization_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`

type ListRunningAccountsParams struct {
	OrganizationID string `json:"organization_id"`
	Limit          int32  `json:"limit"`
	Offset         int32  `json:"offset"`
}

func (q *Queries) ListRunningAccounts(ctx context.Context, arg ListRunningAccountsParams) ([]RunningAccount, error) {
	rows, err := q.db.Query(ctx, listRunningAccounts, arg.OrganizationID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []RunningAccount{}
	for rows.Next() {
		var i RunningAccount
		if err := rows.Scan(
			&i.ID,
			&i.OrganizationID,
			&i.Name,
			&i.Kind,
			&i.Currency,
			&i.FiatBalance,
			&i.MetalBalance,
			&i.Version,
			&i.Active,
			&i.CreatedAt,
			&i.UpdatedAt,
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

const scanRunningAccountIDs = `-- name: ScanRunningAccountIDs :many
SELECT id FROM running_accounts
WHERE organization_id = $1 AND id > $2
ORDER BY id
LIMIT $3
`

type ScanRunningAccountIDsParams struct {
	OrganizationID string `json:"organization_id"`
	AfterID        string `json:"after_id"`
	Limit          int32  `json:"limit"`
}

func (q *Queries) ScanRunningAccountIDs(ctx context.Context, arg ScanRunningAccountIDsParams) ([]string, error) {
	rows, err := q.db.Query(ctx, scanRunningAccountIDs, arg.OrganizationID, arg.AfterID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setRunningAccountActive = `-- name: SetRunningAccountActive :execrows
UPDATE running_accounts
SET active = $3, updated_at = $4
WHERE organization_id = $1 AND id = $2
`

type SetRunningAccountActiveParams struct {
	OrganizationID string             `json:"organization_id"`
	ID             string             `json:"id"`
	Active         bool               `json:"active"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) SetRunningAccountActive(ctx context.Context, arg SetRunningAccountActiveParams) (int64, error) {
	result, err := q.db.Exec(ctx, setRunningAccountActive,
		arg.OrganizationID,
		arg.ID,
		arg.Active,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateRunningAccountBalances = `-- name: UpdateRunningAccountBalances :exec
UPDATE running_accounts
SET fiat_balance = $2, metal_balance = $3, version = $4, updated_at = $5
WHERE id = $1
`

type UpdateRunningAccountBalancesParams struct {
	ID           string             `json:"id"`
	FiatBalance  pgtype.Numeric     `json:"fiat_balance"`
	MetalBalance pgtype.Numeric     `json:"metal_balance"`
	Version      int64              `json:"version"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateRunningAccountBalances(ctx context.Context, arg UpdateRunningAccountBalancesParams) error {
	_, err := q.db.Exec(ctx, updateRunningAccountBalances,
		arg.ID,
		arg.FiatBalance,
		arg.MetalBalance,
		arg.Version,
		arg.UpdatedAt,
	)
	return err
}
