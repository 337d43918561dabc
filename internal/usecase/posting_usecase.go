package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
)

// PostingUseCase is the posting engine: it writes immutable postings and keeps
// running balances in step with them.
type PostingUseCase struct {
	uow                *UnitOfWork
	ledgerAccountRepo  LedgerAccountRepository
	runningAccountRepo RunningAccountRepository
	postingRepo        PostingRepository
	events             eventWriter
	idGen              IDGenerator
	metrics            MetricsRecorder
	claims             claimRederiver
}

// claimRederiver recomputes claims whose linked posting changed status.
type claimRederiver interface {
	RederiveByPostingTx(ctx context.Context, tx Transaction, orgID, postingID string) error
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	uow *UnitOfWork,
	ledgerAccountRepo LedgerAccountRepository,
	runningAccountRepo RunningAccountRepository,
	postingRepo PostingRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics MetricsRecorder,
) *PostingUseCase {
	return &PostingUseCase{
		uow:                uow,
		ledgerAccountRepo:  ledgerAccountRepo,
		runningAccountRepo: runningAccountRepo,
		postingRepo:        postingRepo,
		events:             eventWriter{outboxRepo: outboxRepo, idGen: idGen},
		idGen:              idGen,
		metrics:            orNop(metrics),
	}
}

// WithClaims makes reversals re-derive the claims linked to the reversed posting.
func (uc *PostingUseCase) WithClaims(claims claimRederiver) *PostingUseCase {
	uc.claims = claims
	return uc
}

// PostingRequest is one leg of a Post call.
type PostingRequest struct {
	MetalGrams       *decimal.Decimal
	Quotation        *decimal.Decimal
	LedgerAccountID  string
	RunningAccountID string
	Currency         string
	Description      string
	Kind             domain.PostingKind
	FiatAmount       decimal.Decimal
}

// PostInput represents input for posting a batch of legs atomically.
type PostInput struct {
	Timestamp      *time.Time
	OrganizationID string
	Entries        []PostingRequest
	// Balanced requires the signed fiat amounts of the batch to sum to zero.
	Balanced bool
}

// PostingResult is the outcome of a Post call.
type PostingResult struct {
	Balances map[string]domain.Balances
	BatchID  string
	Postings []*domain.Posting
}

// TransferInput moves value from one running account to another as a balanced pair.
type TransferInput struct {
	Timestamp            *time.Time
	MetalGrams           *decimal.Decimal
	Quotation            *decimal.Decimal
	OrganizationID       string
	FromLedgerAccountID  string
	FromRunningAccountID string
	ToLedgerAccountID    string
	ToRunningAccountID   string
	Currency             string
	Description          string
	FiatAmount           decimal.Decimal
}

// ReverseInput represents input for reversing a posting.
type ReverseInput struct {
	OrganizationID string
	PostingID      string
	Reason         string
}

// Post writes all entries in one unit of work. Any failure leaves no trace.
func (uc *PostingUseCase) Post(ctx context.Context, input PostInput) (*PostingResult, error) {
	var result *PostingResult

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		var err error
		result, err = uc.PostTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PostingsCreated(len(result.Postings))

	return result, nil
}

// Transfer posts a DEBIT on the source and a CREDIT on the destination.
func (uc *PostingUseCase) Transfer(ctx context.Context, input TransferInput) (*PostingResult, error) {
	return uc.Post(ctx, PostInput{
		OrganizationID: input.OrganizationID,
		Timestamp:      input.Timestamp,
		Balanced:       true,
		Entries: []PostingRequest{
			{
				LedgerAccountID:  input.FromLedgerAccountID,
				RunningAccountID: input.FromRunningAccountID,
				Kind:             domain.PostingDebit,
				FiatAmount:       input.FiatAmount,
				MetalGrams:       input.MetalGrams,
				Quotation:        input.Quotation,
				Currency:         input.Currency,
				Description:      input.Description,
			},
			{
				LedgerAccountID:  input.ToLedgerAccountID,
				RunningAccountID: input.ToRunningAccountID,
				Kind:             domain.PostingCredit,
				FiatAmount:       input.FiatAmount,
				MetalGrams:       input.MetalGrams,
				Quotation:        input.Quotation,
				Currency:         input.Currency,
				Description:      input.Description,
			},
		},
	})
}

// PostTx writes the batch inside the caller's transaction.
func (uc *PostingUseCase) PostTx(ctx context.Context, tx Transaction, input PostInput) (*PostingResult, error) {
	// 0. Validate inputs before touching any row
	if len(input.Entries) == 0 {
		return nil, domain.ErrEmptyPosting
	}

	now := time.Now().UTC()

	timestamp := now
	if input.Timestamp != nil {
		timestamp = input.Timestamp.UTC()
	}

	batchID := uc.idGen.Generate()

	postings := make([]*domain.Posting, 0, len(input.Entries))
	for i, e := range input.Entries {
		p, err := uc.buildPosting(input.OrganizationID, batchID, e, timestamp, now)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		postings = append(postings, p)
	}

	if input.Balanced && !domain.BalancedBatch(postings) {
		return nil, domain.ErrUnbalancedTransfer
	}

	// 1. Ledger side must exist and accept postings
	ledgerIDs := uniqueSorted(postings, func(p *domain.Posting) string { return p.LedgerAccountID })

	ledgerAccounts, err := uc.ledgerAccountRepo.GetByIDs(ctx, tx, input.OrganizationID, ledgerIDs)
	if err != nil {
		return nil, err
	}

	if len(ledgerAccounts) != len(ledgerIDs) {
		return nil, domain.ErrAccountNotFound
	}

	for _, la := range ledgerAccounts {
		if err := la.CanPost(); err != nil {
			return nil, err
		}
	}

	// 2. Lock running accounts in sorted order (DEADLOCK PREVENTION)
	runningIDs := uniqueSorted(postings, func(p *domain.Posting) string { return p.RunningAccountID })

	accounts, err := uc.runningAccountRepo.GetByIDsForUpdate(ctx, tx, input.OrganizationID, runningIDs)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(runningIDs) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.RunningAccount, len(accounts))
	for _, a := range accounts {
		if err := a.CanPost(); err != nil {
			return nil, fmt.Errorf("%w: %s", err, a.ID)
		}

		accountMap[a.ID] = a
	}

	// 3. Write postings, carrying balances forward
	for _, p := range postings {
		acc := accountMap[p.RunningAccountID]

		if p.Currency == "" {
			p.Currency = acc.Currency
		}

		if p.Currency != acc.Currency {
			return nil, fmt.Errorf("%w: posting in %s on %s account %s", domain.ErrInvalidCurrency, p.Currency, acc.Currency, acc.ID)
		}

		if err := uc.apply(ctx, tx, acc, p); err != nil {
			return nil, err
		}
	}

	// 4. Store balances once per account
	balances := make(map[string]domain.Balances, len(runningIDs))
	for _, id := range runningIDs {
		acc := accountMap[id]
		acc.UpdatedAt = now

		if err := uc.runningAccountRepo.UpdateBalances(ctx, tx, acc); err != nil {
			return nil, err
		}

		balances[id] = domain.Balances{Fiat: acc.FiatBalance, Metal: acc.MetalBalance}
	}

	for _, p := range postings {
		if err := uc.events.write(ctx, tx, p.OrganizationID, domain.AggregateTypePosting, p.ID,
			domain.EventTypePostingCreated, domain.PostingCreatedPayload(p), now); err != nil {
			return nil, err
		}
	}

	return &PostingResult{BatchID: batchID, Postings: postings, Balances: balances}, nil
}

func (uc *PostingUseCase) buildPosting(orgID, batchID string, e PostingRequest, timestamp, now time.Time) (*domain.Posting, error) {
	p := &domain.Posting{
		ID:               uc.idGen.Generate(),
		OrganizationID:   orgID,
		BatchID:          batchID,
		LedgerAccountID:  e.LedgerAccountID,
		RunningAccountID: e.RunningAccountID,
		Kind:             e.Kind,
		FiatAmount:       domain.RoundFiat(e.FiatAmount),
		Currency:         strings.ToUpper(strings.TrimSpace(e.Currency)),
		Description:      e.Description,
		Status:           domain.PostingActive,
		Timestamp:        timestamp,
		CreatedAt:        now,
	}

	if e.FiatAmount.IsPositive() && p.FiatAmount.IsZero() {
		return nil, fmt.Errorf("%w: %s rounds to zero", domain.ErrInvalidAmount, e.FiatAmount)
	}

	if e.Quotation != nil {
		q := *e.Quotation
		p.MetalQuotation = &q
	}

	switch {
	case e.MetalGrams != nil:
		g := domain.RoundGrams(*e.MetalGrams)
		p.MetalGrams = &g
	case e.Quotation != nil && e.Quotation.IsPositive():
		g := domain.GramsAtQuotation(p.FiatAmount, *e.Quotation)
		p.MetalGrams = &g
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (uc *PostingUseCase) apply(ctx context.Context, tx Transaction, acc *domain.RunningAccount, p *domain.Posting) error {
	fiat, metal := acc.Apply(p)

	p.PreviousFiatBalance = acc.FiatBalance
	p.PreviousMetalBalance = acc.MetalBalance
	p.CurrentFiatBalance = fiat
	p.CurrentMetalBalance = metal
	p.RunningAccountVersion = acc.Version + 1

	if err := uc.postingRepo.Create(ctx, tx, p); err != nil {
		return err
	}

	acc.FiatBalance = fiat
	acc.MetalBalance = metal
	acc.Version++

	return nil
}

// Reverse writes the compensating posting and marks both ADJUSTED.
func (uc *PostingUseCase) Reverse(ctx context.Context, input ReverseInput) (*domain.Posting, error) {
	var reversal *domain.Posting

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		var err error
		reversal, err = uc.ReverseTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.PostingReversed()

	return reversal, nil
}

// ReverseTx reverses a posting inside the caller's transaction.
func (uc *PostingUseCase) ReverseTx(ctx context.Context, tx Transaction, input ReverseInput) (*domain.Posting, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, domain.ErrReasonRequired
	}

	original, err := uc.postingRepo.GetByIDForUpdate(ctx, tx, input.OrganizationID, input.PostingID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	reversal, err := original.Reversal(uc.idGen.Generate(), input.Reason, now)
	if err != nil {
		return nil, err
	}
	reversal.BatchID = uc.idGen.Generate()

	accounts, err := uc.runningAccountRepo.GetByIDsForUpdate(ctx, tx, input.OrganizationID, []string{original.RunningAccountID})
	if err != nil {
		return nil, err
	}

	if len(accounts) != 1 {
		return nil, domain.ErrAccountNotFound
	}

	acc := accounts[0]

	if err := uc.apply(ctx, tx, acc, reversal); err != nil {
		return nil, err
	}

	if err := uc.postingRepo.MarkAdjusted(ctx, tx, original.ID); err != nil {
		return nil, err
	}

	if uc.claims != nil {
		if err := uc.claims.RederiveByPostingTx(ctx, tx, original.OrganizationID, original.ID); err != nil {
			return nil, err
		}
	}

	acc.UpdatedAt = now

	if err := uc.runningAccountRepo.UpdateBalances(ctx, tx, acc); err != nil {
		return nil, err
	}

	if err := uc.events.write(ctx, tx, reversal.OrganizationID, domain.AggregateTypePosting, original.ID,
		domain.EventTypePostingReversed, domain.PostingCreatedPayload(reversal), now); err != nil {
		return nil, err
	}

	return reversal, nil
}

// GetPosting retrieves a posting by ID.
func (uc *PostingUseCase) GetPosting(ctx context.Context, orgID, id string) (*domain.Posting, error) {
	return uc.postingRepo.GetByID(ctx, orgID, id)
}

// ListPostingsInput represents input for listing postings of a running account.
type ListPostingsInput struct {
	OrganizationID   string
	RunningAccountID string
	Limit            int
	Offset           int
}

// ListPostingsByRunningAccount lists postings newest first.
func (uc *PostingUseCase) ListPostingsByRunningAccount(ctx context.Context, input ListPostingsInput) ([]*domain.Posting, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.postingRepo.ListByRunningAccount(ctx, input.OrganizationID, input.RunningAccountID, limit, offset)
}

func uniqueSorted(postings []*domain.Posting, key func(*domain.Posting) string) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, p := range postings {
		k := key(p)
		if !seen[k] {
			seen[k] = true
			ids = append(ids, k)
		}
	}

	sort.Strings(ids)

	return ids
}
