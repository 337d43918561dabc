package usecase

import (
	"context"
	"time"

	"github.com/iho/metalledger/internal/domain"
)

// eventWriter appends outbox events inside the caller's transaction.
// A nil repository drops events.
type eventWriter struct {
	outboxRepo OutboxRepository
	idGen      IDGenerator
}

func (w eventWriter) write(
	ctx context.Context,
	tx Transaction,
	orgID, aggregateType, aggregateID, eventType string,
	payload map[string]any,
	now time.Time,
) error {
	if w.outboxRepo == nil {
		return nil
	}

	return w.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:             w.idGen.Generate(),
		OrganizationID: orgID,
		AggregateID:    aggregateID,
		AggregateType:  aggregateType,
		EventType:      eventType,
		Payload:        payload,
		CreatedAt:      now,
	})
}
