package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxEvent struct {
	ID             string             `json:"id"`
	OrganizationID string             `json:"organization_id"`
	AggregateID    string             `json:"aggregate_id"`
	AggregateType  string             `json:"aggregate_type"`
	EventType      string             `json:"event_type"`
	Payload        []byte             `json:"payload"`
	Published      bool               `json:"published"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	PublishedAt    pgtype.Timestamptz `json:"published_at"`
}

type Posting struct {
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

type RunningAccount struct {
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
