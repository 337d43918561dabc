package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
)

// BackfillUseCase repairs derived state and missing links left behind by
// partial failures or legacy imports. Every job is idempotent: it only writes
// when the stored value differs from the value derived from the source records,
// and it never creates or changes a posting.
type BackfillUseCase struct {
	uow                *UnitOfWork
	runningAccountRepo RunningAccountRepository
	postingRepo        PostingRepository
	claimRepo          ClaimRepository
	creditRepo         MetalCreditRepository
	lotRepo            MetalLotRepository
	events             eventWriter
	metrics            MetricsRecorder
	logger             zerolog.Logger
	tolerance          decimal.Decimal
	payableAccountID   string
	batchSize          int
	locker             RunLocker
	lockTTL            time.Duration
}

// BackfillDeps groups the repositories a backfill run reads and repairs.
type BackfillDeps struct {
	RunningAccounts RunningAccountRepository
	Postings        PostingRepository
	Claims          ClaimRepository
	Credits         MetalCreditRepository
	Lots            MetalLotRepository
	Outbox          OutboxRepository
	IDGen           IDGenerator
	Metrics         MetricsRecorder
}

// NewBackfillUseCase creates a new BackfillUseCase.
func NewBackfillUseCase(
	uow *UnitOfWork,
	deps BackfillDeps,
	logger zerolog.Logger,
	tolerance decimal.Decimal,
	payableAccountID string,
) *BackfillUseCase {
	return &BackfillUseCase{
		uow:                uow,
		runningAccountRepo: deps.RunningAccounts,
		postingRepo:        deps.Postings,
		claimRepo:          deps.Claims,
		creditRepo:         deps.Credits,
		lotRepo:            deps.Lots,
		events:             eventWriter{outboxRepo: deps.Outbox, idGen: deps.IDGen},
		metrics:            orNop(deps.Metrics),
		logger:             logger.With().Str("component", "backfill").Logger(),
		tolerance:          tolerance.Abs(),
		payableAccountID:   payableAccountID,
		batchSize:          DefaultBackfillBatchSize,
	}
}

// WithBatchSize overrides how many IDs each scan page reads.
func (uc *BackfillUseCase) WithBatchSize(n int) *BackfillUseCase {
	if n > 0 {
		uc.batchSize = n
	}
	return uc
}

// WithLocker makes Run hold a lock per organization and kind, so two
// processes never repair the same records concurrently.
func (uc *BackfillUseCase) WithLocker(l RunLocker, ttl time.Duration) *BackfillUseCase {
	uc.locker = l
	uc.lockTTL = ttl
	return uc
}

// BackfillInput selects the job and tenant.
type BackfillInput struct {
	OrganizationID string
	Kind           domain.BackfillKind
}

type scanFunc func(ctx context.Context, orgID, afterID string, limit int) ([]string, error)

// repairFunc re-reads one record under lock and fixes it. It reports whether
// anything was written. Errors wrapping domain.ErrInconsistent skip the record.
type repairFunc func(ctx context.Context, tx Transaction, orgID, id string, now time.Time) (bool, error)

type backfillJob struct {
	record string
	scan   scanFunc
	repair repairFunc
}

func (uc *BackfillUseCase) job(kind domain.BackfillKind) (backfillJob, error) {
	switch kind {
	case domain.BackfillRunningBalance:
		return backfillJob{domain.RecordRunningAccount, uc.runningAccountRepo.ScanIDs, uc.repairRunningBalance}, nil
	case domain.BackfillCreditRemaining:
		return backfillJob{domain.RecordMetalCredit, uc.creditRepo.ScanIDs, uc.repairCreditRemaining}, nil
	case domain.BackfillLotStatus:
		return backfillJob{domain.RecordMetalLot, uc.lotRepo.ScanIDs, uc.repairLotStatus}, nil
	case domain.BackfillUsagePayment:
		if uc.payableAccountID == "" {
			return backfillJob{}, domain.ErrMissingPayableRoot
		}
		return backfillJob{domain.RecordCreditUsage, uc.creditRepo.ScanUnlinkedCashUsageIDs, uc.repairUsagePayment}, nil
	case domain.BackfillClaimSettledFlag:
		return backfillJob{domain.RecordClaim, uc.claimRepo.ScanIDs, uc.repairClaimSettledFlag}, nil
	case domain.BackfillClaimSettlement:
		return backfillJob{domain.RecordClaim, uc.claimRepo.ScanIDs, uc.repairClaimSettlement}, nil
	default:
		return backfillJob{}, fmt.Errorf("%w: %q", domain.ErrUnknownBackfill, kind)
	}
}

// Run executes one job over every record of the organization.
func (uc *BackfillUseCase) Run(ctx context.Context, input BackfillInput) (*domain.BackfillReport, error) {
	job, err := uc.job(input.Kind)
	if err != nil {
		return nil, err
	}

	if uc.locker != nil {
		name := "backfill:" + input.OrganizationID + ":" + string(input.Kind)
		release, err := uc.locker.Acquire(ctx, name, uc.lockTTL)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	log := uc.logger.With().
		Str("kind", string(input.Kind)).
		Str("organization_id", input.OrganizationID).
		Logger()

	report := &domain.BackfillReport{Kind: input.Kind, Skipped: []domain.RecordRef{}}
	started := time.Now()

	after := ""
	for {
		ids, err := job.scan(ctx, input.OrganizationID, after, uc.batchSize)
		if err != nil {
			return nil, fmt.Errorf("scan %s after %q: %w", job.record, after, err)
		}

		for _, id := range ids {
			repaired, err := uc.repairOne(ctx, input, job, id)

			switch {
			case errors.Is(err, domain.ErrInconsistent):
				log.Warn().Err(err).Str("record_id", id).Msg("record skipped")
				report.Skip(job.record, id, err)
			case err != nil:
				return nil, fmt.Errorf("repair %s %s: %w", job.record, id, err)
			case repaired:
				log.Info().Str("record_id", id).Msg("record repaired")
				report.Repaired++
			}
		}

		if len(ids) < uc.batchSize {
			break
		}

		after = ids[len(ids)-1]
	}

	uc.metrics.BackfillFinished(input.Kind, report.Repaired, len(report.Skipped))

	log.Info().
		Int("repaired", report.Repaired).
		Int("skipped", len(report.Skipped)).
		Dur("duration", time.Since(started)).
		Msg("backfill finished")

	return report, nil
}

// RunAll executes every job in dependency order: balances and grams first,
// claims last so they see repaired postings.
func (uc *BackfillUseCase) RunAll(ctx context.Context, orgID string) ([]*domain.BackfillReport, error) {
	reports := make([]*domain.BackfillReport, 0, len(domain.BackfillKinds))

	for _, kind := range domain.BackfillKinds {
		if kind == domain.BackfillUsagePayment && uc.payableAccountID == "" {
			uc.logger.Warn().Str("kind", string(kind)).Msg("payable account not configured, job not run")
			continue
		}

		report, err := uc.Run(ctx, BackfillInput{OrganizationID: orgID, Kind: kind})
		if err != nil {
			return reports, err
		}

		reports = append(reports, report)
	}

	return reports, nil
}

func (uc *BackfillUseCase) repairOne(ctx context.Context, input BackfillInput, job backfillJob, id string) (bool, error) {
	var repaired bool

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		var err error
		repaired, err = job.repair(ctx, tx, input.OrganizationID, id, now)
		if err != nil || !repaired {
			return err
		}

		return uc.events.write(ctx, tx, input.OrganizationID, domain.AggregateTypeBackfill, id,
			domain.EventTypeBackfillRepaired, map[string]any{
				"kind":        string(input.Kind),
				"record_type": job.record,
				"record_id":   id,
			}, now)
	})

	return repaired, err
}

func (uc *BackfillUseCase) repairRunningBalance(ctx context.Context, tx Transaction, orgID, id string, now time.Time) (bool, error) {
	accounts, err := uc.runningAccountRepo.GetByIDsForUpdate(ctx, tx, orgID, []string{id})
	if err != nil {
		return false, err
	}

	if len(accounts) != 1 {
		return false, domain.ErrAccountNotFound
	}

	acc := accounts[0]

	postings, err := uc.postingRepo.ListActiveByRunningAccount(ctx, tx, orgID, id)
	if err != nil {
		return false, err
	}

	replayed := replay(postings)
	if replayed.Equal(domain.Balances{Fiat: acc.FiatBalance, Metal: acc.MetalBalance}) {
		return false, nil
	}

	acc.FiatBalance = replayed.Fiat
	acc.MetalBalance = replayed.Metal
	acc.UpdatedAt = now

	if err := uc.runningAccountRepo.UpdateBalances(ctx, tx, acc); err != nil {
		return false, err
	}

	return true, nil
}

func (uc *BackfillUseCase) repairCreditRemaining(ctx context.Context, tx Transaction, orgID, id string, now time.Time) (bool, error) {
	credit, err := uc.creditRepo.GetByIDForUpdate(ctx, tx, orgID, id)
	if err != nil {
		return false, err
	}

	usages, err := uc.creditRepo.ListUsages(ctx, tx, orgID, id)
	if err != nil {
		return false, err
	}

	remaining, status, err := credit.Recompute(usages)
	if err != nil {
		return false, err
	}

	if remaining.Equal(credit.RemainingGrams) && status == credit.Status {
		return false, nil
	}

	credit.RemainingGrams = remaining
	credit.Status = status
	credit.UpdatedAt = now

	if err := uc.creditRepo.Update(ctx, tx, credit); err != nil {
		return false, err
	}

	return true, nil
}

func (uc *BackfillUseCase) repairLotStatus(ctx context.Context, tx Transaction, orgID, id string, now time.Time) (bool, error) {
	lot, err := uc.lotRepo.GetByIDForUpdate(ctx, tx, orgID, id)
	if err != nil {
		return false, err
	}

	if lot.RemainingGrams.IsNegative() || lot.RemainingGrams.GreaterThan(lot.InitialGrams) {
		return false, fmt.Errorf("%w: lot %s has %s g remaining of %s g", domain.ErrInconsistent, lot.ID, lot.RemainingGrams, lot.InitialGrams)
	}

	status := domain.LotStatusFor(lot.RemainingGrams)
	if status == lot.Status {
		return false, nil
	}

	lot.Status = status
	lot.UpdatedAt = now

	if err := uc.lotRepo.Update(ctx, tx, lot); err != nil {
		return false, err
	}

	return true, nil
}

func (uc *BackfillUseCase) repairUsagePayment(ctx context.Context, tx Transaction, orgID, id string, _ time.Time) (bool, error) {
	usage, err := uc.creditRepo.GetUsageForUpdate(ctx, tx, orgID, id)
	if err != nil {
		return false, err
	}

	if usage.ConsumingPaymentID != nil || !usage.IsCashSettled() {
		return false, nil
	}

	found, err := uc.postingRepo.FindActive(ctx, tx, orgID, uc.payableAccountID, domain.PostingDebit, *usage.SettlementFiatValue)
	if err != nil {
		return false, err
	}

	var candidates []*domain.Posting
	for _, p := range found {
		linked, err := uc.creditRepo.IsPaymentLinked(ctx, tx, orgID, p.ID)
		if err != nil {
			return false, err
		}

		if !linked {
			candidates = append(candidates, p)
		}
	}

	if len(candidates) != 1 {
		return false, fmt.Errorf("%w: %d unlinked payments of %s on the payable account",
			domain.ErrInconsistent, len(candidates), usage.SettlementFiatValue)
	}

	if err := uc.creditRepo.SetUsagePayment(ctx, tx, orgID, usage.ID, candidates[0].ID); err != nil {
		return false, err
	}

	return true, nil
}

func (uc *BackfillUseCase) repairClaimSettledFlag(ctx context.Context, tx Transaction, orgID, id string, now time.Time) (bool, error) {
	claim, err := uc.claimRepo.GetByIDForUpdate(ctx, tx, orgID, id)
	if err != nil {
		return false, err
	}

	if claim.Settled && len(claim.Links) == 0 {
		return false, fmt.Errorf("%w: claim %s is settled without links", domain.ErrInconsistent, claim.ID)
	}

	linked, err := linkedPostings(ctx, uc.postingRepo, tx, claim)
	if err != nil {
		return false, err
	}

	derived := domain.DeriveSettlement(claim, linked, uc.tolerance)
	if derived.Settled == claim.Settled {
		return false, nil
	}

	claim.Apply(derived)
	claim.UpdatedAt = now

	if err := uc.claimRepo.UpdateSettlement(ctx, tx, claim); err != nil {
		return false, err
	}

	return true, nil
}

func (uc *BackfillUseCase) repairClaimSettlement(ctx context.Context, tx Transaction, orgID, id string, now time.Time) (bool, error) {
	claim, err := uc.claimRepo.GetByIDForUpdate(ctx, tx, orgID, id)
	if err != nil {
		return false, err
	}

	if !claim.Settled || (claim.RunningAccountID != nil && claim.SettledAt != nil) {
		return false, nil
	}

	linked, err := linkedPostings(ctx, uc.postingRepo, tx, claim)
	if err != nil {
		return false, err
	}

	accounts := make(map[string]bool)
	for _, p := range linked {
		if p != nil && p.IsActive() {
			accounts[p.RunningAccountID] = true
		}
	}

	if len(accounts) != 1 {
		return false, fmt.Errorf("%w: claim %s has %d running accounts among its active postings",
			domain.ErrInconsistent, claim.ID, len(accounts))
	}

	derived := domain.DeriveSettlement(claim, linked, uc.tolerance)
	if !derived.Settled {
		return false, fmt.Errorf("%w: claim %s links do not cover %s", domain.ErrInconsistent, claim.ID, claim.OriginalAmount)
	}

	if claim.RunningAccountID == nil {
		claim.RunningAccountID = derived.RunningAccountID
	}

	if claim.SettledAt == nil {
		claim.SettledAt = derived.SettledAt
	}

	claim.UpdatedAt = now

	if err := uc.claimRepo.UpdateSettlement(ctx, tx, claim); err != nil {
		return false, err
	}

	return true, nil
}

// replay sums the signed amounts of postings.
func replay(postings []*domain.Posting) domain.Balances {
	b := domain.Balances{Fiat: decimal.Zero, Metal: decimal.Zero}
	for _, p := range postings {
		if p.IsActive() {
			b = b.Add(p)
		}
	}
	return b
}
