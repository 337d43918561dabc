package domain

import "fmt"

// BackfillKind names one reconciliation job.
type BackfillKind string

const (
	BackfillClaimSettlement  BackfillKind = "claim-settlement"
	BackfillClaimSettledFlag BackfillKind = "claim-settled-flag"
	BackfillCreditRemaining  BackfillKind = "credit-remaining"
	BackfillUsagePayment     BackfillKind = "usage-payment"
	BackfillLotStatus        BackfillKind = "lot-status"
	BackfillRunningBalance   BackfillKind = "running-balance"
)

// BackfillKinds lists every kind in the order "all" runs them.
var BackfillKinds = []BackfillKind{
	BackfillRunningBalance,
	BackfillCreditRemaining,
	BackfillLotStatus,
	BackfillUsagePayment,
	BackfillClaimSettledFlag,
	BackfillClaimSettlement,
}

// ParseBackfillKind validates a kind name.
func ParseBackfillKind(s string) (BackfillKind, error) {
	for _, k := range BackfillKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBackfill, s)
}

// Record types reported by backfill jobs.
const (
	RecordClaim          = "claim"
	RecordMetalCredit    = "metal_credit"
	RecordCreditUsage    = "metal_credit_usage"
	RecordMetalLot       = "metal_lot"
	RecordRunningAccount = "running_account"
)

// RecordRef identifies a record a backfill job could not repair.
type RecordRef struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BackfillReport is the outcome of one backfill run.
type BackfillReport struct {
	Kind     BackfillKind `json:"kind"`
	Skipped  []RecordRef  `json:"skipped"`
	Repaired int          `json:"repaired"`
}

// Skip records a record left untouched.
func (r *BackfillReport) Skip(recordType, id string, reason error) {
	r.Skipped = append(r.Skipped, RecordRef{Type: recordType, ID: id, Reason: reason.Error()})
}
