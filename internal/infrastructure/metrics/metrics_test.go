package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

var _ usecase.MetricsRecorder = (*Metrics)(nil)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.Postings == nil || m.CreditGrams == nil || m.BackfillRuns == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.PostingsCreated(2)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestRecorderCounts(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.PostingsCreated(3)
	m.PostingReversed()
	m.CreditAllocated(domain.MetalGold, decimal.RequireFromString("2.5"))
	m.CreditAllocated(domain.MetalGold, decimal.RequireFromString("1.25"))
	m.LotConsumed(domain.MetalSilver, decimal.NewFromInt(10))
	m.BackfillFinished(domain.BackfillLotStatus, 4, 1)

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"postings", m.Postings, 3},
		{"reversals", m.Reversals, 1},
		{"gold grams", m.CreditGrams.WithLabelValues("AU"), 3.75},
		{"gold allocations", m.CreditAllocations.WithLabelValues("AU"), 2},
		{"silver lot grams", m.LotGrams.WithLabelValues("AG"), 10},
		{"backfill repaired", m.BackfillRepaired.WithLabelValues(string(domain.BackfillLotStatus)), 4},
		{"backfill skipped", m.BackfillSkipped.WithLabelValues(string(domain.BackfillLotStatus)), 1},
		{"backfill runs", m.BackfillRuns.WithLabelValues(string(domain.BackfillLotStatus)), 1},
	}

	for _, tc := range checks {
		if got := testutil.ToFloat64(tc.c); got != tc.want {
			t.Fatalf("%s = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRelayAndRateLimitCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.EventsRelayed(5)
	m.EventRelayFailed()
	m.RateLimited()
	m.RateLimited()

	if got := testutil.ToFloat64(m.OutboxPublished); got != 5 {
		t.Fatalf("outbox published = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.OutboxErrors); got != 1 {
		t.Fatalf("outbox errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RateLimitHits); got != 2 {
		t.Fatalf("rate limit hits = %v, want 2", got)
	}
}
