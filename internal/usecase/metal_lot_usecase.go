package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
)

// MetalLotUseCase handles physical inventory.
type MetalLotUseCase struct {
	uow     *UnitOfWork
	lotRepo MetalLotRepository
	events  eventWriter
	idGen   IDGenerator
	metrics MetricsRecorder
}

// NewMetalLotUseCase creates a new MetalLotUseCase.
func NewMetalLotUseCase(
	uow *UnitOfWork,
	lotRepo MetalLotRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics MetricsRecorder,
) *MetalLotUseCase {
	return &MetalLotUseCase{
		uow:     uow,
		lotRepo: lotRepo,
		events:  eventWriter{outboxRepo: outboxRepo, idGen: idGen},
		idGen:   idGen,
		metrics: orNop(metrics),
	}
}

// ReceiveLotInput represents input for receiving a lot into stock.
type ReceiveLotInput struct {
	EntryDate      *time.Time
	OrganizationID string
	ProductID      string
	SourceType     string
	SourceID       string
	MetalType      domain.MetalType
	Grams          decimal.Decimal
	Purity         decimal.Decimal
}

// ConsumeLotInput represents input for consuming grams of a lot.
type ConsumeLotInput struct {
	OrganizationID string
	LotID          string
	Grams          decimal.Decimal
}

// ListLotsInput pages through the available lots of a product.
type ListLotsInput struct {
	After          *domain.LotCursor
	OrganizationID string
	ProductID      string
	Limit          int
}

// LotPage is one page of available lots. Next is nil on the last page.
type LotPage struct {
	Next *domain.LotCursor
	Lots []*domain.MetalLot
}

// ReceiveLot stores a new AVAILABLE lot.
func (uc *MetalLotUseCase) ReceiveLot(ctx context.Context, input ReceiveLotInput) (*domain.MetalLot, error) {
	now := time.Now().UTC()

	entryDate := now
	if input.EntryDate != nil {
		entryDate = input.EntryDate.UTC()
	}

	grams := domain.RoundGrams(input.Grams)

	lot := &domain.MetalLot{
		ID:             uc.idGen.Generate(),
		OrganizationID: input.OrganizationID,
		ProductID:      strings.TrimSpace(input.ProductID),
		SourceType:     input.SourceType,
		SourceID:       input.SourceID,
		MetalType:      input.MetalType,
		Status:         domain.LotAvailable,
		InitialGrams:   grams,
		RemainingGrams: grams,
		Purity:         input.Purity,
		EntryDate:      entryDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if lot.ProductID == "" {
		return nil, domain.ErrInvalidProduct
	}

	if err := lot.Validate(); err != nil {
		return nil, err
	}

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.lotRepo.Create(ctx, tx, lot); err != nil {
			return err
		}

		return uc.events.write(ctx, tx, lot.OrganizationID, domain.AggregateTypeLot, lot.ID,
			domain.EventTypeLotReceived, domain.LotPayload(lot), now)
	})
	if err != nil {
		return nil, err
	}

	return lot, nil
}

// Consume takes grams out of a lot under a row lock.
func (uc *MetalLotUseCase) Consume(ctx context.Context, input ConsumeLotInput) (*domain.MetalLot, error) {
	var lot *domain.MetalLot

	err := uc.uow.Do(ctx, func(ctx context.Context, tx Transaction) error {
		var err error
		lot, err = uc.ConsumeTx(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.LotConsumed(lot.MetalType, domain.RoundGrams(input.Grams))

	return lot, nil
}

// ConsumeTx consumes inside the caller's transaction.
func (uc *MetalLotUseCase) ConsumeTx(ctx context.Context, tx Transaction, input ConsumeLotInput) (*domain.MetalLot, error) {
	grams := domain.RoundGrams(input.Grams)

	if err := domain.ValidateGrams(grams); err != nil {
		return nil, err
	}

	lot, err := uc.lotRepo.GetByIDForUpdate(ctx, tx, input.OrganizationID, input.LotID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := lot.Consume(grams, now); err != nil {
		return nil, err
	}

	if err := uc.lotRepo.Update(ctx, tx, lot); err != nil {
		return nil, err
	}

	if err := uc.events.write(ctx, tx, lot.OrganizationID, domain.AggregateTypeLot, lot.ID,
		domain.EventTypeLotConsumed, domain.LotPayload(lot), now); err != nil {
		return nil, err
	}

	return lot, nil
}

// GetLot retrieves a lot by ID.
func (uc *MetalLotUseCase) GetLot(ctx context.Context, orgID, id string) (*domain.MetalLot, error) {
	return uc.lotRepo.GetByID(ctx, orgID, id)
}

// ListAvailableLots returns AVAILABLE lots of a product in (entry date, id)
// order, starting strictly after input.After. Feeding Next back in walks the
// whole set exactly once; a lot consumed between pages simply drops out.
func (uc *MetalLotUseCase) ListAvailableLots(ctx context.Context, input ListLotsInput) (*LotPage, error) {
	limit, _ := domain.ValidatePagination(input.Limit, 0)

	// one extra row tells us whether another page exists
	lots, err := uc.lotRepo.ListAvailable(ctx, input.OrganizationID, input.ProductID, input.After, limit+1)
	if err != nil {
		return nil, err
	}

	page := &LotPage{Lots: lots}

	if len(lots) > limit {
		page.Lots = lots[:limit]
		next := page.Lots[limit-1].Cursor()
		page.Next = &next
	}

	return page, nil
}
