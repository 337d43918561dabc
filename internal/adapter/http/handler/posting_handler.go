package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

// PostingService defines the behavior needed by PostingHandler.
type PostingService interface {
	Post(ctx context.Context, input usecase.PostInput) (*usecase.PostingResult, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.PostingResult, error)
	Reverse(ctx context.Context, input usecase.ReverseInput) (*domain.Posting, error)
	GetPosting(ctx context.Context, orgID, id string) (*domain.Posting, error)
	ListPostingsByRunningAccount(ctx context.Context, input usecase.ListPostingsInput) ([]*domain.Posting, error)
}

// PostingHandler handles posting requests.
type PostingHandler struct {
	postingUC PostingService
}

// NewPostingHandler creates a new PostingHandler.
func NewPostingHandler(postingUC PostingService) *PostingHandler {
	return &PostingHandler{postingUC: postingUC}
}

// Create posts a batch of legs atomically.
func (h *PostingHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.CreatePostingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(orgID)
	if err != nil {
		writeDomainError(w, "invalid amount", err)
		return
	}

	result, err := h.postingUC.Post(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to post", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingResultFromUseCase(result))
}

// Transfer posts a balanced pair of legs.
func (h *PostingHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(orgID)
	if err != nil {
		writeDomainError(w, "invalid amount", err)
		return
	}

	result, err := h.postingUC.Transfer(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to transfer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingResultFromUseCase(result))
}

// Get retrieves a posting by ID.
func (h *PostingHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	posting, err := h.postingUC.GetPosting(r.Context(), orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get posting", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PostingFromDomain(posting))
}

// Reverse books the opposite posting and marks both ADJUSTED.
func (h *PostingHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.ReversePostingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reversal, err := h.postingUC.Reverse(r.Context(), req.ToUseCaseInput(orgID, chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to reverse posting", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PostingFromDomain(reversal))
}

// ListByRunningAccount lists a running account's postings, newest first.
func (h *PostingHandler) ListByRunningAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	postings, err := h.postingUC.ListPostingsByRunningAccount(r.Context(), usecase.ListPostingsInput{
		OrganizationID:   orgID,
		RunningAccountID: chi.URLParam(r, "id"),
		Limit:            parseIntQuery(r, "limit", domain.DefaultPageSize),
		Offset:           parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list postings", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.PostingsFromDomain(postings)))
}
