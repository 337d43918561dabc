package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

func decimalPtrString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// mapSlice converts every element with fn.
func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

// LedgerAccountResponse represents a chart-of-accounts node.
type LedgerAccountResponse struct {
	ParentID        *string   `json:"parent_id,omitempty"`
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Kind            string    `json:"kind"`
	AcceptsPostings bool      `json:"accepts_postings"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LedgerAccountFromDomain converts a domain ledger account to response.
func LedgerAccountFromDomain(a *domain.LedgerAccount) *LedgerAccountResponse {
	return &LedgerAccountResponse{
		ParentID:        a.ParentID,
		ID:              a.ID,
		Code:            a.Code,
		Name:            a.Name,
		Kind:            string(a.Kind),
		AcceptsPostings: a.AcceptsPostings,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// LedgerAccountsFromDomain converts domain ledger accounts to responses.
func LedgerAccountsFromDomain(accounts []*domain.LedgerAccount) []*LedgerAccountResponse {
	return mapSlice(accounts, LedgerAccountFromDomain)
}

// RunningAccountResponse represents a running account and its balances.
type RunningAccountResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Currency     string    `json:"currency"`
	FiatBalance  string    `json:"fiat_balance"`
	MetalBalance string    `json:"metal_balance"`
	Version      int64     `json:"version"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RunningAccountFromDomain converts a domain running account to response.
func RunningAccountFromDomain(a *domain.RunningAccount) *RunningAccountResponse {
	return &RunningAccountResponse{
		ID:           a.ID,
		Name:         a.Name,
		Kind:         string(a.Kind),
		Currency:     a.Currency,
		FiatBalance:  a.FiatBalance.String(),
		MetalBalance: a.MetalBalance.String(),
		Version:      a.Version,
		Active:       a.Active,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// RunningAccountsFromDomain converts domain running accounts to responses.
func RunningAccountsFromDomain(accounts []*domain.RunningAccount) []*RunningAccountResponse {
	return mapSlice(accounts, RunningAccountFromDomain)
}

// BalancesResponse is a fiat and metal balance pair.
type BalancesResponse struct {
	Fiat  string `json:"fiat"`
	Metal string `json:"metal"`
}

// BalancesFromDomain converts domain balances to response.
func BalancesFromDomain(b domain.Balances) BalancesResponse {
	return BalancesResponse{Fiat: b.Fiat.String(), Metal: b.Metal.String()}
}

// PostingResponse represents a posting in API responses.
type PostingResponse struct {
	MetalGrams            *string   `json:"metal_grams,omitempty"`
	MetalQuotation        *string   `json:"metal_quotation,omitempty"`
	ReversesPostingID     *string   `json:"reverses_posting_id,omitempty"`
	ID                    string    `json:"id"`
	BatchID               string    `json:"batch_id"`
	LedgerAccountID       string    `json:"ledger_account_id"`
	RunningAccountID      string    `json:"running_account_id"`
	Description           string    `json:"description"`
	Currency              string    `json:"currency"`
	Kind                  string    `json:"kind"`
	Status                string    `json:"status"`
	FiatAmount            string    `json:"fiat_amount"`
	PreviousFiatBalance   string    `json:"previous_fiat_balance"`
	CurrentFiatBalance    string    `json:"current_fiat_balance"`
	PreviousMetalBalance  string    `json:"previous_metal_balance"`
	CurrentMetalBalance   string    `json:"current_metal_balance"`
	RunningAccountVersion int64     `json:"running_account_version"`
	Timestamp             time.Time `json:"timestamp"`
	CreatedAt             time.Time `json:"created_at"`
}

// PostingFromDomain converts a domain posting to response.
func PostingFromDomain(p *domain.Posting) *PostingResponse {
	return &PostingResponse{
		MetalGrams:            decimalPtrString(p.MetalGrams),
		MetalQuotation:        decimalPtrString(p.MetalQuotation),
		ReversesPostingID:     p.ReversesPostingID,
		ID:                    p.ID,
		BatchID:               p.BatchID,
		LedgerAccountID:       p.LedgerAccountID,
		RunningAccountID:      p.RunningAccountID,
		Description:           p.Description,
		Currency:              p.Currency,
		Kind:                  string(p.Kind),
		Status:                string(p.Status),
		FiatAmount:            p.FiatAmount.String(),
		PreviousFiatBalance:   p.PreviousFiatBalance.String(),
		CurrentFiatBalance:    p.CurrentFiatBalance.String(),
		PreviousMetalBalance:  p.PreviousMetalBalance.String(),
		CurrentMetalBalance:   p.CurrentMetalBalance.String(),
		RunningAccountVersion: p.RunningAccountVersion,
		Timestamp:             p.Timestamp,
		CreatedAt:             p.CreatedAt,
	}
}

// PostingsFromDomain converts domain postings to responses.
func PostingsFromDomain(postings []*domain.Posting) []*PostingResponse {
	return mapSlice(postings, PostingFromDomain)
}

// PostingResultResponse is the outcome of a posting batch.
type PostingResultResponse struct {
	Balances map[string]BalancesResponse `json:"balances"`
	BatchID  string                      `json:"batch_id"`
	Postings []*PostingResponse          `json:"postings"`
}

// PostingResultFromUseCase converts a posting result to response.
func PostingResultFromUseCase(r *usecase.PostingResult) *PostingResultResponse {
	balances := make(map[string]BalancesResponse, len(r.Balances))
	for id, b := range r.Balances {
		balances[id] = BalancesFromDomain(b)
	}

	return &PostingResultResponse{
		Balances: balances,
		BatchID:  r.BatchID,
		Postings: PostingsFromDomain(r.Postings),
	}
}

// ClaimLinkResponse is one posting linked to a claim.
type ClaimLinkResponse struct {
	PostingID string    `json:"posting_id"`
	Position  int       `json:"position"`
	LinkedAt  time.Time `json:"linked_at"`
}

// ClaimResponse represents a receivable or payable.
type ClaimResponse struct {
	DueDate          *time.Time          `json:"due_date,omitempty"`
	SettledAt        *time.Time          `json:"settled_at,omitempty"`
	LedgerAccountID  *string             `json:"ledger_account_id,omitempty"`
	RunningAccountID *string             `json:"running_account_id,omitempty"`
	ID               string              `json:"id"`
	Counterparty     string              `json:"counterparty"`
	Currency         string              `json:"currency"`
	Kind             string              `json:"kind"`
	OriginalAmount   string              `json:"original_amount"`
	Links            []ClaimLinkResponse `json:"links"`
	Settled          bool                `json:"settled"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ClaimFromDomain converts a domain claim to response.
func ClaimFromDomain(c *domain.Claim) *ClaimResponse {
	links := mapSlice(c.Links, func(l domain.ClaimLink) ClaimLinkResponse {
		return ClaimLinkResponse{PostingID: l.PostingID, Position: l.Position, LinkedAt: l.LinkedAt}
	})

	return &ClaimResponse{
		DueDate:          c.DueDate,
		SettledAt:        c.SettledAt,
		LedgerAccountID:  c.LedgerAccountID,
		RunningAccountID: c.RunningAccountID,
		ID:               c.ID,
		Counterparty:     c.Counterparty,
		Currency:         c.Currency,
		Kind:             string(c.Kind),
		OriginalAmount:   c.OriginalAmount.String(),
		Links:            links,
		Settled:          c.Settled,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// OutstandingResponse is the unpaid remainder of a claim.
type OutstandingResponse struct {
	ClaimID     string `json:"claim_id"`
	Outstanding string `json:"outstanding"`
}

// MetalCreditResponse represents a metal credit.
type MetalCreditResponse struct {
	OriginAnalysisID *string   `json:"origin_analysis_id,omitempty"`
	ID               string    `json:"id"`
	ClientID         string    `json:"client_id"`
	MetalType        string    `json:"metal_type"`
	Status           string    `json:"status"`
	OriginalGrams    string    `json:"original_grams"`
	RemainingGrams   string    `json:"remaining_grams"`
	Version          int64     `json:"version"`
	Date             time.Time `json:"date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// MetalCreditFromDomain converts a domain metal credit to response.
func MetalCreditFromDomain(c *domain.MetalCredit) *MetalCreditResponse {
	return &MetalCreditResponse{
		OriginAnalysisID: c.OriginAnalysisID,
		ID:               c.ID,
		ClientID:         c.ClientID,
		MetalType:        string(c.MetalType),
		Status:           string(c.Status),
		OriginalGrams:    c.OriginalGrams.String(),
		RemainingGrams:   c.RemainingGrams.String(),
		Version:          c.Version,
		Date:             c.Date,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// MetalCreditsFromDomain converts domain metal credits to responses.
func MetalCreditsFromDomain(credits []*domain.MetalCredit) []*MetalCreditResponse {
	return mapSlice(credits, MetalCreditFromDomain)
}

// UsageResponse represents one allocation against a credit.
type UsageResponse struct {
	ConsumingSaleID     *string   `json:"consuming_sale_id,omitempty"`
	ConsumingPaymentID  *string   `json:"consuming_payment_id,omitempty"`
	SettlementQuotation *string   `json:"settlement_quotation,omitempty"`
	SettlementFiatValue *string   `json:"settlement_fiat_value,omitempty"`
	ID                  string    `json:"id"`
	MetalCreditID       string    `json:"metal_credit_id"`
	Grams               string    `json:"grams"`
	Date                time.Time `json:"date"`
	CreatedAt           time.Time `json:"created_at"`
}

// UsageFromDomain converts a domain usage to response.
func UsageFromDomain(u *domain.MetalCreditUsage) *UsageResponse {
	return &UsageResponse{
		ConsumingSaleID:     u.ConsumingSaleID,
		ConsumingPaymentID:  u.ConsumingPaymentID,
		SettlementQuotation: decimalPtrString(u.SettlementQuotation),
		SettlementFiatValue: decimalPtrString(u.SettlementFiatValue),
		ID:                  u.ID,
		MetalCreditID:       u.MetalCreditID,
		Grams:               u.Grams.String(),
		Date:                u.Date,
		CreatedAt:           u.CreatedAt,
	}
}

// UsagesFromDomain converts domain usages to responses.
func UsagesFromDomain(usages []*domain.MetalCreditUsage) []*UsageResponse {
	return mapSlice(usages, UsageFromDomain)
}

// MetalLotResponse represents a metal lot.
type MetalLotResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	SourceType     string    `json:"source_type"`
	SourceID       string    `json:"source_id"`
	MetalType      string    `json:"metal_type"`
	Status         string    `json:"status"`
	InitialGrams   string    `json:"initial_grams"`
	RemainingGrams string    `json:"remaining_grams"`
	Purity         string    `json:"purity"`
	FineGrams      string    `json:"fine_grams"`
	EntryDate      time.Time `json:"entry_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MetalLotFromDomain converts a domain lot to response.
func MetalLotFromDomain(l *domain.MetalLot) *MetalLotResponse {
	return &MetalLotResponse{
		ID:             l.ID,
		ProductID:      l.ProductID,
		SourceType:     l.SourceType,
		SourceID:       l.SourceID,
		MetalType:      string(l.MetalType),
		Status:         string(l.Status),
		InitialGrams:   l.InitialGrams.String(),
		RemainingGrams: l.RemainingGrams.String(),
		Purity:         l.Purity.String(),
		FineGrams:      l.FineGrams().String(),
		EntryDate:      l.EntryDate,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// LotCursorResponse resumes a lot listing.
type LotCursorResponse struct {
	AfterDate time.Time `json:"after_date"`
	AfterID   string    `json:"after_id"`
}

// LotPageResponse is one page of available lots.
type LotPageResponse struct {
	Next *LotCursorResponse  `json:"next,omitempty"`
	Lots []*MetalLotResponse `json:"lots"`
}

// LotPageFromUseCase converts a lot page to response.
func LotPageFromUseCase(p *usecase.LotPage) *LotPageResponse {
	resp := &LotPageResponse{Lots: mapSlice(p.Lots, MetalLotFromDomain)}
	if p.Next != nil {
		resp.Next = &LotCursorResponse{AfterDate: p.Next.EntryDate, AfterID: p.Next.ID}
	}
	return resp
}

// ReconciliationResponse compares stored and replayed balances.
type ReconciliationResponse struct {
	RunningAccountID string           `json:"running_account_id"`
	Recorded         BalancesResponse `json:"recorded"`
	Calculated       BalancesResponse `json:"calculated"`
	FiatDifference   string           `json:"fiat_difference"`
	MetalDifference  string           `json:"metal_difference"`
	IsReconciled     bool             `json:"is_reconciled"`
	CheckedAt        time.Time        `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		RunningAccountID: r.RunningAccountID,
		Recorded:         BalancesFromDomain(r.Recorded),
		Calculated:       BalancesFromDomain(r.Calculated),
		FiatDifference:   r.FiatDifference.String(),
		MetalDifference:  r.MetalDifference.String(),
		IsReconciled:     r.IsReconciled,
		CheckedAt:        r.CheckedAt,
	}
}

// ConsistencyResponse is the organization-wide balance check.
type ConsistencyResponse struct {
	Discrepancies []*ReconciliationResponse `json:"discrepancies"`
	TotalAccounts int                       `json:"total_accounts"`
	Consistent    bool                      `json:"consistent"`
	CheckedAt     time.Time                 `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency report to response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		Discrepancies: mapSlice(r.Discrepancies, ReconciliationFromUseCase),
		TotalAccounts: r.TotalAccounts,
		Consistent:    r.Consistent,
		CheckedAt:     r.CheckedAt,
	}
}

// ListResponse wraps a page of items.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse builds a ListResponse.
func NewListResponse[T any](items []T) ListResponse[T] {
	return ListResponse[T]{Items: items, Total: len(items)}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
