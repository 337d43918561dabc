package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
)

// MetalCreditUseCase runs the metal-credit state machine.
type MetalCreditUseCase struct {
	uow              *UnitOfWork
	creditRepo       MetalCreditRepository
	postings         *PostingUseCase
	events           eventWriter
	idGen            IDGenerator
	metrics          MetricsRecorder
	payableAccountID string
}

// NewMetalCreditUseCase creates a new MetalCreditUseCase. payableAccountID is
// the ledger account cash settlements are paid out of when the caller does not
// name one.
func NewMetalCreditUseCase(
	uow *UnitOfWork,
	creditRepo MetalCreditRepository,
	postings *PostingUseCase,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics MetricsRecorder,
	payableAccountID string,
) *MetalCreditUseCase {
	return &MetalCreditUseCase{
		uow:              uow,
		creditRepo:       creditRepo,
		postings:         postings,
		events:           eventWriter{outboxRepo: outboxRepo, idGen: idGen},
		idGen:            idGen,
		metrics:          orNop(metrics),
		payableAccountID: payableAccountID,
	}
}

// CreateCreditInput represents input for creating a metal credit.
type CreateCreditInput struct {
	Date             *time.Time
	OriginAnalysisID *string
	OrganizationID   string
	ClientID         string
	MetalType        domain.MetalType
	Grams            decimal.Decimal
}

// AllocateInput consumes grams of one credit for a sale or payment.
type AllocateInput struct {
	Consumer       domain.Consumer
	OrganizationID string
	CreditID       string
	Grams          decimal.Decimal
}

// AllocateWithCashInput pays grams of a credit out in fiat at a quotation.
type AllocateWithCashInput struct {
	// PayableAccountID overrides the configured metal-credit payable ledger account.
	PayableAccountID string
	OrganizationID   string
	CreditID         string
	RunningAccountID string
	Description      string
	Grams            decimal.Decimal
	Quotation        decimal.Decimal
}

// CancelCreditInput represents input for canceling a credit.
type CancelCreditInput struct {
	OrganizationID string
	CreditID       string
}

// CreateCredit stores a PENDING credit.
func (uc *MetalCreditUseCase) CreateCredit(ctx context.Context, input CreateCreditInput) (*domain.MetalCredit, error) {
	now := time.Now().UTC()

	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	credit, err := domain.NewMetalCredit(uc.idGen.Generate(), input.OrganizationID, input.ClientID, input.MetalType, input.Grams, date, now)
	if err != nil {
		return nil, err
	}

	credit.OriginAnalysisID = input.OriginAnalysisID

	err = uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.creditRepo.Create(ctx, tx, credit); err != nil {
			return err
		}

		return uc.events.write(ctx, tx, credit.OrganizationID, domain.AggregateTypeCredit, credit.ID,
			domain.EventTypeCreditCreated, domain.CreditPayload(credit), now)
	})
	if err != nil {
		return nil, err
	}

	return credit, nil
}

// Allocate consumes grams in its own unit of work.
func (uc *MetalCreditUseCase) Allocate(ctx context.Context, input AllocateInput) (*domain.MetalCreditUsage, error) {
	var usage *domain.MetalCreditUsage

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		var err error
		usage, err = uc.AllocateTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return usage, nil
}

// AllocateTx consumes grams inside the caller's transaction so the consuming
// event and the allocation commit or abort together.
func (uc *MetalCreditUseCase) AllocateTx(ctx context.Context, tx Transaction, input AllocateInput) (*domain.MetalCreditUsage, error) {
	if err := input.Consumer.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	credit, grams, err := uc.lockAndAllocate(ctx, tx, input.OrganizationID, input.CreditID, input.Grams, now)
	if err != nil {
		return nil, err
	}

	usage := &domain.MetalCreditUsage{
		ID:                 uc.idGen.Generate(),
		OrganizationID:     credit.OrganizationID,
		MetalCreditID:      credit.ID,
		Grams:              grams,
		ConsumingSaleID:    input.Consumer.SaleID,
		ConsumingPaymentID: input.Consumer.PaymentID,
		Date:               now,
		CreatedAt:          now,
	}

	if err := uc.store(ctx, tx, credit, usage, now); err != nil {
		return nil, err
	}

	return usage, nil
}

// AllocateWithCash consumes grams and pays their fiat value out of the
// metal-credit payable account in the same unit of work.
func (uc *MetalCreditUseCase) AllocateWithCash(ctx context.Context, input AllocateWithCashInput) (*domain.MetalCreditUsage, error) {
	var usage *domain.MetalCreditUsage

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		var err error
		usage, err = uc.AllocateWithCashTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return usage, nil
}

// AllocateWithCashTx is AllocateWithCash inside the caller's transaction.
func (uc *MetalCreditUseCase) AllocateWithCashTx(ctx context.Context, tx Transaction, input AllocateWithCashInput) (*domain.MetalCreditUsage, error) {
	payable := input.PayableAccountID
	if payable == "" {
		payable = uc.payableAccountID
	}

	if payable == "" {
		return nil, domain.ErrMissingPayableRoot
	}

	if !input.Quotation.IsPositive() {
		return nil, fmt.Errorf("%w: quotation must be positive", domain.ErrInvalidAmount)
	}

	now := time.Now().UTC()

	credit, grams, err := uc.lockAndAllocate(ctx, tx, input.OrganizationID, input.CreditID, input.Grams, now)
	if err != nil {
		return nil, err
	}

	fiat := domain.FiatAtQuotation(grams, input.Quotation)
	if !fiat.IsPositive() {
		return nil, fmt.Errorf("%w: %s g at %s is worth less than a cent", domain.ErrInvalidAmount, grams, input.Quotation)
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("metal credit %s: %s g %s at %s", credit.ID, grams, credit.MetalType, input.Quotation)
	}

	result, err := uc.postings.PostTx(ctx, tx, PostInput{
		OrganizationID: input.OrganizationID,
		Entries: []PostingRequest{{
			LedgerAccountID:  payable,
			RunningAccountID: input.RunningAccountID,
			Kind:             domain.PostingDebit,
			FiatAmount:       fiat,
			Description:      description,
		}},
	})
	if err != nil {
		return nil, err
	}

	paymentID := result.Postings[0].ID
	quotation := input.Quotation

	usage := &domain.MetalCreditUsage{
		ID:                  uc.idGen.Generate(),
		OrganizationID:      credit.OrganizationID,
		MetalCreditID:       credit.ID,
		Grams:               grams,
		ConsumingPaymentID:  &paymentID,
		SettlementQuotation: &quotation,
		SettlementFiatValue: &fiat,
		Date:                now,
		CreatedAt:           now,
	}

	if err := uc.store(ctx, tx, credit, usage, now); err != nil {
		return nil, err
	}

	return usage, nil
}

// lockAndAllocate locks the credit row and applies the allocation in memory.
func (uc *MetalCreditUseCase) lockAndAllocate(
	ctx context.Context,
	tx Transaction,
	orgID, creditID string,
	grams decimal.Decimal,
	now time.Time,
) (*domain.MetalCredit, decimal.Decimal, error) {
	grams = domain.RoundGrams(grams)

	if err := domain.ValidateGrams(grams); err != nil {
		return nil, decimal.Zero, err
	}

	credit, err := uc.creditRepo.GetByIDForUpdate(ctx, tx, orgID, creditID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if err := credit.Allocate(grams, now); err != nil {
		return nil, decimal.Zero, err
	}

	return credit, grams, nil
}

func (uc *MetalCreditUseCase) store(ctx context.Context, tx Transaction, credit *domain.MetalCredit, usage *domain.MetalCreditUsage, now time.Time) error {
	if err := uc.creditRepo.CreateUsage(ctx, tx, usage); err != nil {
		return err
	}

	if err := uc.creditRepo.Update(ctx, tx, credit); err != nil {
		return err
	}

	uc.metrics.CreditAllocated(credit.MetalType, usage.Grams)

	return uc.events.write(ctx, tx, credit.OrganizationID, domain.AggregateTypeCredit, credit.ID,
		domain.EventTypeCreditAllocated, domain.UsagePayload(usage), now)
}

// Cancel moves a credit to CANCELED.
func (uc *MetalCreditUseCase) Cancel(ctx context.Context, input CancelCreditInput) (*domain.MetalCredit, error) {
	var credit *domain.MetalCredit

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		var err error

		credit, err = uc.creditRepo.GetByIDForUpdate(ctx, tx, input.OrganizationID, input.CreditID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if err := credit.Cancel(now); err != nil {
			return err
		}

		if err := uc.creditRepo.Update(ctx, tx, credit); err != nil {
			return err
		}

		return uc.events.write(ctx, tx, credit.OrganizationID, domain.AggregateTypeCredit, credit.ID,
			domain.EventTypeCreditCanceled, domain.CreditPayload(credit), now)
	})
	if err != nil {
		return nil, err
	}

	return credit, nil
}

// GetCredit retrieves a credit by ID.
func (uc *MetalCreditUseCase) GetCredit(ctx context.Context, orgID, id string) (*domain.MetalCredit, error) {
	return uc.creditRepo.GetByID(ctx, orgID, id)
}

// ListCreditsByClient lists a client's credits, optionally for one metal.
func (uc *MetalCreditUseCase) ListCreditsByClient(ctx context.Context, orgID, clientID string, metal *domain.MetalType) ([]*domain.MetalCredit, error) {
	if metal != nil && !metal.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMetalType, *metal)
	}

	return uc.creditRepo.ListByClient(ctx, orgID, clientID, metal)
}

// ListUsages lists the allocations of a credit in allocation order.
func (uc *MetalCreditUseCase) ListUsages(ctx context.Context, orgID, creditID string) ([]*domain.MetalCreditUsage, error) {
	if _, err := uc.creditRepo.GetByID(ctx, orgID, creditID); err != nil {
		return nil, err
	}

	return uc.creditRepo.ListUsages(ctx, nil, orgID, creditID)
}
