package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
)

// ClaimUseCase links postings to receivables and payables and derives their
// settled state from those links.
type ClaimUseCase struct {
	uow         *UnitOfWork
	claimRepo   ClaimRepository
	postingRepo PostingRepository
	events      eventWriter
	idGen       IDGenerator
	tolerance   decimal.Decimal
}

// NewClaimUseCase creates a new ClaimUseCase.
func NewClaimUseCase(
	uow *UnitOfWork,
	claimRepo ClaimRepository,
	postingRepo PostingRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	tolerance decimal.Decimal,
) *ClaimUseCase {
	return &ClaimUseCase{
		uow:         uow,
		claimRepo:   claimRepo,
		postingRepo: postingRepo,
		events:      eventWriter{outboxRepo: outboxRepo, idGen: idGen},
		idGen:       idGen,
		tolerance:   tolerance.Abs(),
	}
}

// CreateClaimInput represents input for creating a receivable or payable.
type CreateClaimInput struct {
	DueDate         *time.Time
	LedgerAccountID *string
	OrganizationID  string
	Counterparty    string
	Currency        string
	Kind            domain.ClaimKind
	OriginalAmount  decimal.Decimal
}

// SettleInput links a posting to a claim.
type SettleInput struct {
	OrganizationID string
	ClaimID        string
	PostingID      string
}

// UnsettleInput removes a link. An empty PostingID removes the most recent one.
type UnsettleInput struct {
	OrganizationID string
	ClaimID        string
	PostingID      string
}

// CreateClaim creates an open claim.
func (uc *ClaimUseCase) CreateClaim(ctx context.Context, input CreateClaimInput) (*domain.Claim, error) {
	now := time.Now().UTC()

	claim := &domain.Claim{
		ID:              uc.idGen.Generate(),
		OrganizationID:  input.OrganizationID,
		Kind:            input.Kind,
		Counterparty:    strings.TrimSpace(input.Counterparty),
		Currency:        strings.ToUpper(strings.TrimSpace(input.Currency)),
		OriginalAmount:  domain.RoundFiat(input.OriginalAmount),
		LedgerAccountID: input.LedgerAccountID,
		DueDate:         input.DueDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := claim.Validate(); err != nil {
		return nil, err
	}

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.claimRepo.Create(ctx, tx, claim)
	})
	if err != nil {
		return nil, err
	}

	return claim, nil
}

// GetClaim retrieves a claim with its links.
func (uc *ClaimUseCase) GetClaim(ctx context.Context, orgID, id string) (*domain.Claim, error) {
	return uc.claimRepo.GetByID(ctx, orgID, id)
}

// Settle links the posting and recomputes the claim's settled state. A posting
// that does not cover the outstanding amount stays as a partial link.
func (uc *ClaimUseCase) Settle(ctx context.Context, input SettleInput) (*domain.Claim, error) {
	var claim *domain.Claim

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		var err error
		claim, err = uc.SettleTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	return claim, nil
}

// SettleTx settles inside the caller's transaction.
func (uc *ClaimUseCase) SettleTx(ctx context.Context, tx Transaction, input SettleInput) (*domain.Claim, error) {
	claim, err := uc.claimRepo.GetByIDForUpdate(ctx, tx, input.OrganizationID, input.ClaimID)
	if err != nil {
		return nil, err
	}

	current, err := linkedPostings(ctx, uc.postingRepo, tx, claim)
	if err != nil {
		return nil, err
	}

	// The stored flag can lag behind a reversal; only ACTIVE links count.
	if domain.DeriveSettlement(claim, current, uc.tolerance).Settled {
		return nil, fmt.Errorf("%w: claim %s", domain.ErrAlreadySettled, claim.ID)
	}

	postings, err := uc.postingRepo.GetByIDs(ctx, tx, input.OrganizationID, []string{input.PostingID})
	if err != nil {
		return nil, err
	}

	if len(postings) != 1 {
		return nil, domain.ErrPostingNotFound
	}

	posting := postings[0]

	if err := claim.CanLink(posting); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	position := 1
	if n := len(claim.Links); n > 0 {
		position = claim.Links[n-1].Position + 1
	}

	link := domain.ClaimLink{
		ClaimID:   claim.ID,
		PostingID: posting.ID,
		Position:  position,
		LinkedAt:  now,
	}

	if err := uc.claimRepo.AddLink(ctx, tx, link); err != nil {
		return nil, err
	}

	claim.Links = append(claim.Links, link)

	if err := uc.rederive(ctx, tx, claim, now); err != nil {
		return nil, err
	}

	eventType := domain.EventTypeClaimSettled
	if !claim.Settled {
		eventType = domain.EventTypeClaimPartial
	}

	if err := uc.events.write(ctx, tx, claim.OrganizationID, domain.AggregateTypeClaim, claim.ID,
		eventType, domain.ClaimPayload(claim, posting.ID), now); err != nil {
		return nil, err
	}

	return claim, nil
}

// Unsettle removes a link and recomputes the claim. The posting is untouched;
// reversing the money movement is a separate call.
func (uc *ClaimUseCase) Unsettle(ctx context.Context, input UnsettleInput) (*domain.Claim, error) {
	var claim *domain.Claim

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		var err error

		claim, err = uc.claimRepo.GetByIDForUpdate(ctx, tx, input.OrganizationID, input.ClaimID)
		if err != nil {
			return err
		}

		removed, err := claim.RemoveLink(input.PostingID)
		if err != nil {
			return err
		}

		if err := uc.claimRepo.RemoveLink(ctx, tx, claim.ID, removed.PostingID); err != nil {
			return err
		}

		now := time.Now().UTC()

		if err := uc.rederive(ctx, tx, claim, now); err != nil {
			return err
		}

		return uc.events.write(ctx, tx, claim.OrganizationID, domain.AggregateTypeClaim, claim.ID,
			domain.EventTypeClaimUnsettled, domain.ClaimPayload(claim, removed.PostingID), now)
	})
	if err != nil {
		return nil, err
	}

	return claim, nil
}

// Outstanding returns the amount not yet covered by ACTIVE linked postings.
func (uc *ClaimUseCase) Outstanding(ctx context.Context, orgID, id string) (decimal.Decimal, error) {
	claim, err := uc.claimRepo.GetByID(ctx, orgID, id)
	if err != nil {
		return decimal.Zero, err
	}

	linked, err := linkedPostings(ctx, uc.postingRepo, nil, claim)
	if err != nil {
		return decimal.Zero, err
	}

	return claim.Outstanding(domain.DeriveSettlement(claim, linked, uc.tolerance)), nil
}

// RederiveByPostingTx recomputes every claim linked to the posting, inside the
// caller's transaction.
func (uc *ClaimUseCase) RederiveByPostingTx(ctx context.Context, tx Transaction, orgID, postingID string) error {
	ids, err := uc.claimRepo.ListIDsByPosting(ctx, tx, orgID, postingID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	for _, id := range ids {
		claim, err := uc.claimRepo.GetByIDForUpdate(ctx, tx, orgID, id)
		if err != nil {
			return err
		}

		wasSettled := claim.Settled

		if err := uc.rederive(ctx, tx, claim, now); err != nil {
			return err
		}

		if wasSettled && !claim.Settled {
			if err := uc.events.write(ctx, tx, claim.OrganizationID, domain.AggregateTypeClaim, claim.ID,
				domain.EventTypeClaimUnsettled, domain.ClaimPayload(claim, postingID), now); err != nil {
				return err
			}
		}
	}

	return nil
}

func (uc *ClaimUseCase) rederive(ctx context.Context, tx Transaction, claim *domain.Claim, now time.Time) error {
	linked, err := linkedPostings(ctx, uc.postingRepo, tx, claim)
	if err != nil {
		return err
	}

	claim.Apply(domain.DeriveSettlement(claim, linked, uc.tolerance))
	claim.UpdatedAt = now

	return uc.claimRepo.UpdateSettlement(ctx, tx, claim)
}

// linkedPostings returns the claim's postings in link order.
func linkedPostings(ctx context.Context, repo PostingRepository, tx Transaction, claim *domain.Claim) ([]*domain.Posting, error) {
	if len(claim.Links) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(claim.Links))
	for _, l := range claim.Links {
		ids = append(ids, l.PostingID)
	}

	postings, err := repo.GetByIDs(ctx, tx, claim.OrganizationID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Posting, len(postings))
	for _, p := range postings {
		byID[p.ID] = p
	}

	ordered := make([]*domain.Posting, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}

	return ordered, nil
}
