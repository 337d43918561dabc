package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

// LedgerService checks stored balances against posting history.
type LedgerService interface {
	ReconcileAccount(ctx context.Context, orgID, runningAccountID string) (*usecase.ReconciliationResult, error)
	CheckConsistency(ctx context.Context, orgID string) (*usecase.ConsistencyReport, error)
}

// BackfillService runs repair jobs.
type BackfillService interface {
	Run(ctx context.Context, input usecase.BackfillInput) (*domain.BackfillReport, error)
	RunAll(ctx context.Context, orgID string) ([]*domain.BackfillReport, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC   LedgerService
	backfillUC BackfillService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, backfillUC BackfillService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, backfillUC: backfillUC}
}

// CheckConsistency compares every running account with its posting replay.
// An inconsistent ledger answers 409 with the discrepancies.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	report, err := h.ledgerUC.CheckConsistency(r.Context(), orgID)
	if err != nil {
		writeDomainError(w, "failed to check consistency", err)
		return
	}

	status := http.StatusOK
	if !report.Consistent {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ConsistencyFromUseCase(report))
}

// Reconcile compares one running account with its posting replay.
func (h *LedgerHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	result, err := h.ledgerUC.ReconcileAccount(r.Context(), orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to reconcile account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}

// RunBackfill runs the job named by the kind URL parameter.
func (h *LedgerHandler) RunBackfill(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	report, err := h.backfillUC.Run(r.Context(), usecase.BackfillInput{
		OrganizationID: orgID,
		Kind:           domain.BackfillKind(chi.URLParam(r, "kind")),
	})
	if err != nil {
		writeDomainError(w, "backfill failed", err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// RunAllBackfills runs every job in dependency order.
func (h *LedgerHandler) RunAllBackfills(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	reports, err := h.backfillUC.RunAll(r.Context(), orgID)
	if err != nil {
		writeDomainError(w, "backfill failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(reports))
}
