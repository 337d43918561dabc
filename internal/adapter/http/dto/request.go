package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

// Amounts travel as decimal strings so no precision is lost in JSON numbers.

func parseDecimal(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, domain.ErrInvalidAmount)
	}
	return d, nil
}

func parseOptionalDecimal(field string, value *string) (*decimal.Decimal, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := parseDecimal(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateLedgerAccountRequest represents a request to add a chart-of-accounts node.
type CreateLedgerAccountRequest struct {
	ParentID        *string `json:"parent_id,omitempty"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Kind            string  `json:"kind"`
	AcceptsPostings bool    `json:"accepts_postings"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateLedgerAccountRequest) ToUseCaseInput(orgID string) usecase.CreateLedgerAccountInput {
	return usecase.CreateLedgerAccountInput{
		ParentID:        r.ParentID,
		OrganizationID:  orgID,
		Code:            r.Code,
		Name:            r.Name,
		Kind:            domain.LedgerAccountKind(r.Kind),
		AcceptsPostings: r.AcceptsPostings,
	}
}

// CreateRunningAccountRequest represents a request to open a running account.
type CreateRunningAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
	Kind     string `json:"kind"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRunningAccountRequest) ToUseCaseInput(orgID string) usecase.CreateRunningAccountInput {
	return usecase.CreateRunningAccountInput{
		OrganizationID: orgID,
		Name:           r.Name,
		Currency:       r.Currency,
		Kind:           domain.RunningAccountKind(r.Kind),
	}
}

// SetActiveRequest toggles a running account.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// PostingEntry is one leg of a posting batch.
type PostingEntry struct {
	MetalGrams       *string `json:"metal_grams,omitempty"`
	Quotation        *string `json:"quotation,omitempty"`
	LedgerAccountID  string  `json:"ledger_account_id"`
	RunningAccountID string  `json:"running_account_id"`
	Currency         string  `json:"currency"`
	Description      string  `json:"description"`
	Kind             string  `json:"kind"`
	FiatAmount       string  `json:"fiat_amount"`
}

// CreatePostingsRequest posts a batch of legs atomically.
type CreatePostingsRequest struct {
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	Entries   []PostingEntry `json:"entries"`
	Balanced  bool           `json:"balanced"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePostingsRequest) ToUseCaseInput(orgID string) (usecase.PostInput, error) {
	entries := make([]usecase.PostingRequest, len(r.Entries))
	for i, e := range r.Entries {
		fiat, err := parseDecimal(fmt.Sprintf("entries[%d].fiat_amount", i), e.FiatAmount)
		if err != nil {
			return usecase.PostInput{}, err
		}
		grams, err := parseOptionalDecimal(fmt.Sprintf("entries[%d].metal_grams", i), e.MetalGrams)
		if err != nil {
			return usecase.PostInput{}, err
		}
		quotation, err := parseOptionalDecimal(fmt.Sprintf("entries[%d].quotation", i), e.Quotation)
		if err != nil {
			return usecase.PostInput{}, err
		}

		entries[i] = usecase.PostingRequest{
			MetalGrams:       grams,
			Quotation:        quotation,
			LedgerAccountID:  e.LedgerAccountID,
			RunningAccountID: e.RunningAccountID,
			Currency:         e.Currency,
			Description:      e.Description,
			Kind:             domain.PostingKind(e.Kind),
			FiatAmount:       fiat,
		}
	}

	return usecase.PostInput{
		Timestamp:      r.Timestamp,
		OrganizationID: orgID,
		Entries:        entries,
		Balanced:       r.Balanced,
	}, nil
}

// CreateTransferRequest moves value between two ledger/running account pairs.
type CreateTransferRequest struct {
	Timestamp            *time.Time `json:"timestamp,omitempty"`
	MetalGrams           *string    `json:"metal_grams,omitempty"`
	Quotation            *string    `json:"quotation,omitempty"`
	FromLedgerAccountID  string     `json:"from_ledger_account_id"`
	FromRunningAccountID string     `json:"from_running_account_id"`
	ToLedgerAccountID    string     `json:"to_ledger_account_id"`
	ToRunningAccountID   string     `json:"to_running_account_id"`
	Currency             string     `json:"currency"`
	Description          string     `json:"description"`
	FiatAmount           string     `json:"fiat_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput(orgID string) (usecase.TransferInput, error) {
	fiat, err := parseDecimal("fiat_amount", r.FiatAmount)
	if err != nil {
		return usecase.TransferInput{}, err
	}
	grams, err := parseOptionalDecimal("metal_grams", r.MetalGrams)
	if err != nil {
		return usecase.TransferInput{}, err
	}
	quotation, err := parseOptionalDecimal("quotation", r.Quotation)
	if err != nil {
		return usecase.TransferInput{}, err
	}

	return usecase.TransferInput{
		Timestamp:            r.Timestamp,
		MetalGrams:           grams,
		Quotation:            quotation,
		OrganizationID:       orgID,
		FromLedgerAccountID:  r.FromLedgerAccountID,
		FromRunningAccountID: r.FromRunningAccountID,
		ToLedgerAccountID:    r.ToLedgerAccountID,
		ToRunningAccountID:   r.ToRunningAccountID,
		Currency:             r.Currency,
		Description:          r.Description,
		FiatAmount:           fiat,
	}, nil
}

// ReversePostingRequest represents a request to reverse a posting.
type ReversePostingRequest struct {
	Reason string `json:"reason"`
}

// ToUseCaseInput converts to use case input.
func (r *ReversePostingRequest) ToUseCaseInput(orgID, postingID string) usecase.ReverseInput {
	return usecase.ReverseInput{
		OrganizationID: orgID,
		PostingID:      postingID,
		Reason:         r.Reason,
	}
}

// CreateClaimRequest opens a receivable or payable.
type CreateClaimRequest struct {
	DueDate         *time.Time `json:"due_date,omitempty"`
	LedgerAccountID *string    `json:"ledger_account_id,omitempty"`
	Counterparty    string     `json:"counterparty"`
	Currency        string     `json:"currency"`
	Kind            string     `json:"kind"`
	OriginalAmount  string     `json:"original_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateClaimRequest) ToUseCaseInput(orgID string) (usecase.CreateClaimInput, error) {
	amount, err := parseDecimal("original_amount", r.OriginalAmount)
	if err != nil {
		return usecase.CreateClaimInput{}, err
	}

	return usecase.CreateClaimInput{
		DueDate:         r.DueDate,
		LedgerAccountID: r.LedgerAccountID,
		OrganizationID:  orgID,
		Counterparty:    r.Counterparty,
		Currency:        r.Currency,
		Kind:            domain.ClaimKind(r.Kind),
		OriginalAmount:  amount,
	}, nil
}

// LinkPostingRequest attaches a settling posting to a claim.
type LinkPostingRequest struct {
	PostingID string `json:"posting_id"`
}

// CreateCreditRequest records metal held on behalf of a client.
type CreateCreditRequest struct {
	Date             *time.Time `json:"date,omitempty"`
	OriginAnalysisID *string    `json:"origin_analysis_id,omitempty"`
	ClientID         string     `json:"client_id"`
	MetalType        string     `json:"metal_type"`
	Grams            string     `json:"grams"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCreditRequest) ToUseCaseInput(orgID string) (usecase.CreateCreditInput, error) {
	grams, err := parseDecimal("grams", r.Grams)
	if err != nil {
		return usecase.CreateCreditInput{}, err
	}

	return usecase.CreateCreditInput{
		Date:             r.Date,
		OriginAnalysisID: r.OriginAnalysisID,
		OrganizationID:   orgID,
		ClientID:         r.ClientID,
		MetalType:        domain.MetalType(r.MetalType),
		Grams:            grams,
	}, nil
}

// AllocateRequest consumes credit grams for a sale or a payment.
type AllocateRequest struct {
	SaleID    *string `json:"sale_id,omitempty"`
	PaymentID *string `json:"payment_id,omitempty"`
	Grams     string  `json:"grams"`
}

// ToUseCaseInput converts to use case input.
func (r *AllocateRequest) ToUseCaseInput(orgID, creditID string) (usecase.AllocateInput, error) {
	grams, err := parseDecimal("grams", r.Grams)
	if err != nil {
		return usecase.AllocateInput{}, err
	}

	return usecase.AllocateInput{
		Consumer:       domain.Consumer{SaleID: r.SaleID, PaymentID: r.PaymentID},
		OrganizationID: orgID,
		CreditID:       creditID,
		Grams:          grams,
	}, nil
}

// AllocateWithCashRequest pays credit grams out in fiat at a quotation.
type AllocateWithCashRequest struct {
	PayableAccountID string `json:"payable_account_id,omitempty"`
	RunningAccountID string `json:"running_account_id"`
	Description      string `json:"description"`
	Grams            string `json:"grams"`
	Quotation        string `json:"quotation"`
}

// ToUseCaseInput converts to use case input.
func (r *AllocateWithCashRequest) ToUseCaseInput(orgID, creditID string) (usecase.AllocateWithCashInput, error) {
	grams, err := parseDecimal("grams", r.Grams)
	if err != nil {
		return usecase.AllocateWithCashInput{}, err
	}
	quotation, err := parseDecimal("quotation", r.Quotation)
	if err != nil {
		return usecase.AllocateWithCashInput{}, err
	}

	return usecase.AllocateWithCashInput{
		PayableAccountID: r.PayableAccountID,
		OrganizationID:   orgID,
		CreditID:         creditID,
		RunningAccountID: r.RunningAccountID,
		Description:      r.Description,
		Grams:            grams,
		Quotation:        quotation,
	}, nil
}

// ReceiveLotRequest books physical metal into inventory.
type ReceiveLotRequest struct {
	EntryDate  *time.Time `json:"entry_date,omitempty"`
	ProductID  string     `json:"product_id"`
	SourceType string     `json:"source_type"`
	SourceID   string     `json:"source_id"`
	MetalType  string     `json:"metal_type"`
	Grams      string     `json:"grams"`
	Purity     string     `json:"purity"`
}

// ToUseCaseInput converts to use case input.
func (r *ReceiveLotRequest) ToUseCaseInput(orgID string) (usecase.ReceiveLotInput, error) {
	grams, err := parseDecimal("grams", r.Grams)
	if err != nil {
		return usecase.ReceiveLotInput{}, err
	}
	purity, err := parseDecimal("purity", r.Purity)
	if err != nil {
		return usecase.ReceiveLotInput{}, err
	}

	return usecase.ReceiveLotInput{
		EntryDate:      r.EntryDate,
		OrganizationID: orgID,
		ProductID:      r.ProductID,
		SourceType:     r.SourceType,
		SourceID:       r.SourceID,
		MetalType:      domain.MetalType(r.MetalType),
		Grams:          grams,
		Purity:         purity,
	}, nil
}

// ConsumeLotRequest takes grams out of a lot.
type ConsumeLotRequest struct {
	Grams string `json:"grams"`
}

// ToUseCaseInput converts to use case input.
func (r *ConsumeLotRequest) ToUseCaseInput(orgID, lotID string) (usecase.ConsumeLotInput, error) {
	grams, err := parseDecimal("grams", r.Grams)
	if err != nil {
		return usecase.ConsumeLotInput{}, err
	}

	return usecase.ConsumeLotInput{OrganizationID: orgID, LotID: lotID, Grams: grams}, nil
}
