package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

// MetalCreditService defines the behavior needed by MetalHandler for credits.
type MetalCreditService interface {
	CreateCredit(ctx context.Context, input usecase.CreateCreditInput) (*domain.MetalCredit, error)
	Allocate(ctx context.Context, input usecase.AllocateInput) (*domain.MetalCreditUsage, error)
	AllocateWithCash(ctx context.Context, input usecase.AllocateWithCashInput) (*domain.MetalCreditUsage, error)
	Cancel(ctx context.Context, input usecase.CancelCreditInput) (*domain.MetalCredit, error)
	GetCredit(ctx context.Context, orgID, id string) (*domain.MetalCredit, error)
	ListCreditsByClient(ctx context.Context, orgID, clientID string, metal *domain.MetalType) ([]*domain.MetalCredit, error)
	ListUsages(ctx context.Context, orgID, creditID string) ([]*domain.MetalCreditUsage, error)
}

// MetalLotService defines the behavior needed by MetalHandler for lots.
type MetalLotService interface {
	ReceiveLot(ctx context.Context, input usecase.ReceiveLotInput) (*domain.MetalLot, error)
	Consume(ctx context.Context, input usecase.ConsumeLotInput) (*domain.MetalLot, error)
	GetLot(ctx context.Context, orgID, id string) (*domain.MetalLot, error)
	ListAvailableLots(ctx context.Context, input usecase.ListLotsInput) (*usecase.LotPage, error)
}

// MetalHandler handles metal credit and metal lot requests.
type MetalHandler struct {
	creditUC MetalCreditService
	lotUC    MetalLotService
}

// NewMetalHandler creates a new MetalHandler.
func NewMetalHandler(creditUC MetalCreditService, lotUC MetalLotService) *MetalHandler {
	return &MetalHandler{creditUC: creditUC, lotUC: lotUC}
}

// CreateCredit records metal held for a client.
func (h *MetalHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.CreateCreditRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(orgID)
	if err != nil {
		writeDomainError(w, "invalid grams", err)
		return
	}

	credit, err := h.creditUC.CreateCredit(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to create credit", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MetalCreditFromDomain(credit))
}

// GetCredit retrieves a credit.
func (h *MetalHandler) GetCredit(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	credit, err := h.creditUC.GetCredit(r.Context(), orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get credit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MetalCreditFromDomain(credit))
}

// ListClientCredits lists a client's credits, optionally filtered by ?metal=.
func (h *MetalHandler) ListClientCredits(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var metal *domain.MetalType
	if m := r.URL.Query().Get("metal"); m != "" {
		mt := domain.MetalType(m)
		if !mt.IsValid() {
			writeDomainError(w, "invalid metal filter", domain.ErrInvalidMetalType)
			return
		}
		metal = &mt
	}

	credits, err := h.creditUC.ListCreditsByClient(r.Context(), orgID, chi.URLParam(r, "id"), metal)
	if err != nil {
		writeDomainError(w, "failed to list credits", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.MetalCreditsFromDomain(credits)))
}

// ListUsages lists a credit's allocations.
func (h *MetalHandler) ListUsages(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	usages, err := h.creditUC.ListUsages(r.Context(), orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to list usages", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.UsagesFromDomain(usages)))
}

// Allocate consumes grams for a sale or payment.
func (h *MetalHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.AllocateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "invalid grams", err)
		return
	}

	usage, err := h.creditUC.Allocate(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to allocate credit", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.UsageFromDomain(usage))
}

// AllocateWithCash pays grams out in fiat.
func (h *MetalHandler) AllocateWithCash(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.AllocateWithCashRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "invalid amount", err)
		return
	}

	usage, err := h.creditUC.AllocateWithCash(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to settle credit in cash", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.UsageFromDomain(usage))
}

// CancelCredit cancels a credit.
func (h *MetalHandler) CancelCredit(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	credit, err := h.creditUC.Cancel(r.Context(), usecase.CancelCreditInput{
		OrganizationID: orgID,
		CreditID:       chi.URLParam(r, "id"),
	})
	if err != nil {
		writeDomainError(w, "failed to cancel credit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MetalCreditFromDomain(credit))
}

// ReceiveLot books a lot into inventory.
func (h *MetalHandler) ReceiveLot(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.ReceiveLotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(orgID)
	if err != nil {
		writeDomainError(w, "invalid grams", err)
		return
	}

	lot, err := h.lotUC.ReceiveLot(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to receive lot", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.MetalLotFromDomain(lot))
}

// GetLot retrieves a lot.
func (h *MetalHandler) GetLot(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	lot, err := h.lotUC.GetLot(r.Context(), orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get lot", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MetalLotFromDomain(lot))
}

// ConsumeLot takes grams out of a lot.
func (h *MetalHandler) ConsumeLot(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.ConsumeLotRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "invalid grams", err)
		return
	}

	lot, err := h.lotUC.Consume(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to consume lot", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MetalLotFromDomain(lot))
}

// ListAvailableLots pages a product's available lots oldest first.
// Resume with ?after_date=RFC3339&after_id=... from the previous page's next cursor.
func (h *MetalHandler) ListAvailableLots(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	input := usecase.ListLotsInput{
		OrganizationID: orgID,
		ProductID:      chi.URLParam(r, "id"),
		Limit:          parseIntQuery(r, "limit", domain.DefaultPageSize),
	}

	q := r.URL.Query()
	if afterID := q.Get("after_id"); afterID != "" {
		afterDate, err := time.Parse(time.RFC3339Nano, q.Get("after_date"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid after_date", err.Error())
			return
		}
		input.After = &domain.LotCursor{EntryDate: afterDate, ID: afterID}
	}

	page, err := h.lotUC.ListAvailableLots(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to list lots", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LotPageFromUseCase(page))
}
