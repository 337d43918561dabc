package domain

import "time"

// Event types
const (
	EventTypePostingCreated   = "posting.created"
	EventTypePostingReversed  = "posting.reversed"
	EventTypeClaimSettled     = "claim.settled"
	EventTypeClaimPartial     = "claim.partially_settled"
	EventTypeClaimUnsettled   = "claim.unsettled"
	EventTypeCreditCreated    = "metal_credit.created"
	EventTypeCreditAllocated  = "metal_credit.allocated"
	EventTypeCreditCanceled   = "metal_credit.canceled"
	EventTypeLotReceived      = "metal_lot.received"
	EventTypeLotConsumed      = "metal_lot.consumed"
	EventTypeBackfillRepaired = "backfill.repaired"
)

// Aggregate types
const (
	AggregateTypePosting  = "posting"
	AggregateTypeClaim    = "claim"
	AggregateTypeCredit   = "metal_credit"
	AggregateTypeLot      = "metal_lot"
	AggregateTypeBackfill = "backfill"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	CreatedAt      time.Time
	PublishedAt    *time.Time
	Payload        map[string]any
	ID             string
	OrganizationID string
	AggregateID    string
	AggregateType  string
	EventType      string
	Published      bool
}

// PostingCreatedPayload describes one posting leg.
func PostingCreatedPayload(p *Posting) map[string]any {
	payload := map[string]any{
		"posting_id":         p.ID,
		"batch_id":           p.BatchID,
		"kind":               string(p.Kind),
		"ledger_account_id":  p.LedgerAccountID,
		"running_account_id": p.RunningAccountID,
		"fiat_amount":        p.FiatAmount.String(),
		"currency":           p.Currency,
		"timestamp":          p.Timestamp.Format(time.RFC3339Nano),
	}
	if p.MetalGrams != nil {
		payload["metal_grams"] = p.MetalGrams.String()
	}
	if p.MetalQuotation != nil {
		payload["metal_quotation"] = p.MetalQuotation.String()
	}
	if p.ReversesPostingID != nil {
		payload["reverses_posting_id"] = *p.ReversesPostingID
	}
	return payload
}

// ClaimPayload describes the derived state of a claim.
func ClaimPayload(c *Claim, postingID string) map[string]any {
	payload := map[string]any{
		"claim_id":   c.ID,
		"kind":       string(c.Kind),
		"posting_id": postingID,
		"settled":    c.Settled,
	}
	if c.RunningAccountID != nil {
		payload["running_account_id"] = *c.RunningAccountID
	}
	if c.SettledAt != nil {
		payload["settled_at"] = c.SettledAt.Format(time.RFC3339Nano)
	}
	return payload
}

// CreditPayload describes a metal credit after a change.
func CreditPayload(c *MetalCredit) map[string]any {
	return map[string]any{
		"credit_id":       c.ID,
		"client_id":       c.ClientID,
		"metal_type":      string(c.MetalType),
		"status":          string(c.Status),
		"original_grams":  c.OriginalGrams.String(),
		"remaining_grams": c.RemainingGrams.String(),
	}
}

// UsagePayload describes an allocation.
func UsagePayload(u *MetalCreditUsage) map[string]any {
	payload := map[string]any{
		"usage_id":  u.ID,
		"credit_id": u.MetalCreditID,
		"grams":     u.Grams.String(),
	}
	if u.ConsumingSaleID != nil {
		payload["sale_id"] = *u.ConsumingSaleID
	}
	if u.ConsumingPaymentID != nil {
		payload["payment_id"] = *u.ConsumingPaymentID
	}
	if u.SettlementFiatValue != nil {
		payload["settlement_fiat_value"] = u.SettlementFiatValue.String()
	}
	return payload
}

// LotPayload describes a metal lot after a change.
func LotPayload(l *MetalLot) map[string]any {
	return map[string]any{
		"lot_id":          l.ID,
		"product_id":      l.ProductID,
		"metal_type":      string(l.MetalType),
		"status":          string(l.Status),
		"remaining_grams": l.RemainingGrams.String(),
	}
}
