package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
)

// Metrics holds all Prometheus metrics and implements usecase.MetricsRecorder.
type Metrics struct {
	// Posting metrics
	Postings  prometheus.Counter
	Reversals prometheus.Counter

	// Metal metrics
	CreditGrams       *prometheus.CounterVec
	CreditAllocations *prometheus.CounterVec
	LotGrams          *prometheus.CounterVec

	// Backfill metrics
	BackfillRepaired *prometheus.CounterVec
	BackfillSkipped  *prometheus.CounterVec
	BackfillRuns     *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Postings: factory.NewCounter(prometheus.CounterOpts{
			Name: "metalledger_postings_created_total",
			Help: "Total number of postings written",
		}),
		Reversals: factory.NewCounter(prometheus.CounterOpts{
			Name: "metalledger_postings_reversed_total",
			Help: "Total number of postings reversed",
		}),

		CreditGrams: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalledger_credit_grams_allocated_total",
				Help: "Grams allocated out of metal credits",
			},
			[]string{"metal"},
		),
		CreditAllocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalledger_credit_allocations_total",
				Help: "Number of metal credit usages created",
			},
			[]string{"metal"},
		),
		LotGrams: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalledger_lot_grams_consumed_total",
				Help: "Grams consumed out of metal lots",
			},
			[]string{"metal"},
		),

		BackfillRepaired: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalledger_backfill_repaired_total",
				Help: "Records repaired by backfill jobs",
			},
			[]string{"kind"},
		),
		BackfillSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalledger_backfill_skipped_total",
				Help: "Records skipped by backfill jobs as inconsistent",
			},
			[]string{"kind"},
		),
		BackfillRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metalledger_backfill_runs_total",
				Help: "Completed backfill runs",
			},
			[]string{"kind"},
		),

		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "metalledger_outbox_published_total",
			Help: "Outbox events relayed",
		}),
		OutboxErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "metalledger_outbox_errors_total",
			Help: "Outbox events that failed to relay",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "metalledger_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}
}

// PostingsCreated counts postings written by one batch.
func (m *Metrics) PostingsCreated(n int) {
	m.Postings.Add(float64(n))
}

// PostingReversed counts a reversal.
func (m *Metrics) PostingReversed() {
	m.Reversals.Inc()
}

// CreditAllocated counts one usage and its grams.
func (m *Metrics) CreditAllocated(metal domain.MetalType, grams decimal.Decimal) {
	m.CreditAllocations.WithLabelValues(string(metal)).Inc()
	m.CreditGrams.WithLabelValues(string(metal)).Add(grams.InexactFloat64())
}

// LotConsumed counts grams taken out of a lot.
func (m *Metrics) LotConsumed(metal domain.MetalType, grams decimal.Decimal) {
	m.LotGrams.WithLabelValues(string(metal)).Add(grams.InexactFloat64())
}

// BackfillFinished records the outcome of one backfill run.
func (m *Metrics) BackfillFinished(kind domain.BackfillKind, repaired, skipped int) {
	m.BackfillRuns.WithLabelValues(string(kind)).Inc()
	m.BackfillRepaired.WithLabelValues(string(kind)).Add(float64(repaired))
	m.BackfillSkipped.WithLabelValues(string(kind)).Add(float64(skipped))
}

// EventsRelayed counts outbox events handed to the broker.
func (m *Metrics) EventsRelayed(n int) {
	m.OutboxPublished.Add(float64(n))
}

// EventRelayFailed counts an event that could not be relayed.
func (m *Metrics) EventRelayFailed() {
	m.OutboxErrors.Inc()
}

// RateLimited counts a rejected request.
func (m *Metrics) RateLimited() {
	m.RateLimitHits.Inc()
}
