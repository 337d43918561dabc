package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

// ClaimService defines the behavior needed by ClaimHandler.
type ClaimService interface {
	CreateClaim(ctx context.Context, input usecase.CreateClaimInput) (*domain.Claim, error)
	GetClaim(ctx context.Context, orgID, id string) (*domain.Claim, error)
	Settle(ctx context.Context, input usecase.SettleInput) (*domain.Claim, error)
	Unsettle(ctx context.Context, input usecase.UnsettleInput) (*domain.Claim, error)
	Outstanding(ctx context.Context, orgID, id string) (decimal.Decimal, error)
}

// ClaimHandler handles receivable and payable requests.
type ClaimHandler struct {
	claimUC ClaimService
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(claimUC ClaimService) *ClaimHandler {
	return &ClaimHandler{claimUC: claimUC}
}

// Create opens a claim.
func (h *ClaimHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.CreateClaimRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(orgID)
	if err != nil {
		writeDomainError(w, "invalid amount", err)
		return
	}

	claim, err := h.claimUC.CreateClaim(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create claim", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ClaimFromDomain(claim))
}

// Get retrieves a claim with its links.
func (h *ClaimHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	claim, err := h.claimUC.GetClaim(r.Context(), orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get claim", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClaimFromDomain(claim))
}

// Settle links a posting to the claim.
func (h *ClaimHandler) Settle(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.LinkPostingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	claim, err := h.claimUC.Settle(r.Context(), usecase.SettleInput{
		OrganizationID: orgID,
		ClaimID:        chi.URLParam(r, "id"),
		PostingID:      req.PostingID,
	})
	if err != nil {
		writeDomainError(w, "failed to settle claim", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClaimFromDomain(claim))
}

// Unsettle removes a posting link from the claim.
func (h *ClaimHandler) Unsettle(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	claim, err := h.claimUC.Unsettle(r.Context(), usecase.UnsettleInput{
		OrganizationID: orgID,
		ClaimID:        chi.URLParam(r, "id"),
		PostingID:      chi.URLParam(r, "postingID"),
	})
	if err != nil {
		writeDomainError(w, "failed to unsettle claim", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ClaimFromDomain(claim))
}

// Outstanding returns what is still owed on the claim.
func (h *ClaimHandler) Outstanding(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	amount, err := h.claimUC.Outstanding(r.Context(), orgID, id)
	if err != nil {
		writeDomainError(w, "failed to compute outstanding amount", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OutstandingResponse{ClaimID: id, Outstanding: amount.String()})
}
