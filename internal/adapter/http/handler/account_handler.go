package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateLedgerAccount(ctx context.Context, input usecase.CreateLedgerAccountInput) (*domain.LedgerAccount, error)
	GetLedgerAccount(ctx context.Context, orgID, id string) (*domain.LedgerAccount, error)
	ListLedgerAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.LedgerAccount, error)
	CreateRunningAccount(ctx context.Context, input usecase.CreateRunningAccountInput) (*domain.RunningAccount, error)
	GetRunningAccount(ctx context.Context, orgID, id string) (*domain.RunningAccount, error)
	ListRunningAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.RunningAccount, error)
	SetRunningAccountActive(ctx context.Context, orgID, id string, active bool) (*domain.RunningAccount, error)
}

// AccountHandler handles ledger and running account requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// CreateLedgerAccount adds a node to the chart of accounts.
func (h *AccountHandler) CreateLedgerAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.CreateLedgerAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountUC.CreateLedgerAccount(r.Context(), req.ToUseCaseInput(orgID))
	if err != nil {
		writeDomainError(w, "failed to create ledger account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LedgerAccountFromDomain(account))
}

// GetLedgerAccount retrieves a ledger account by ID.
func (h *AccountHandler) GetLedgerAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.GetLedgerAccount(r.Context(), orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get ledger account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerAccountFromDomain(account))
}

// ListLedgerAccounts lists the chart of accounts.
func (h *AccountHandler) ListLedgerAccounts(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	accounts, err := h.accountUC.ListLedgerAccounts(r.Context(), usecase.ListAccountsInput{
		OrganizationID: orgID,
		Limit:          parseIntQuery(r, "limit", domain.DefaultPageSize),
		Offset:         parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list ledger accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.LedgerAccountsFromDomain(accounts)))
}

// CreateRunningAccount opens a running account.
func (h *AccountHandler) CreateRunningAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.CreateRunningAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountUC.CreateRunningAccount(r.Context(), req.ToUseCaseInput(orgID))
	if err != nil {
		writeDomainError(w, "failed to create running account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RunningAccountFromDomain(account))
}

// GetRunningAccount retrieves a running account with its balances.
func (h *AccountHandler) GetRunningAccount(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.GetRunningAccount(r.Context(), orgID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get running account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RunningAccountFromDomain(account))
}

// ListRunningAccounts lists running accounts.
func (h *AccountHandler) ListRunningAccounts(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	accounts, err := h.accountUC.ListRunningAccounts(r.Context(), usecase.ListAccountsInput{
		OrganizationID: orgID,
		Limit:          parseIntQuery(r, "limit", domain.DefaultPageSize),
		Offset:         parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list running accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.RunningAccountsFromDomain(accounts)))
}

// SetRunningAccountActive activates or deactivates a running account.
func (h *AccountHandler) SetRunningAccountActive(w http.ResponseWriter, r *http.Request) {
	orgID, ok := organizationID(w, r)
	if !ok {
		return
	}

	var req dto.SetActiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountUC.SetRunningAccountActive(r.Context(), orgID, chi.URLParam(r, "id"), req.Active)
	if err != nil {
		writeDomainError(w, "failed to update running account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RunningAccountFromDomain(account))
}
