package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

type accountServiceStub struct {
	createLedgerFn  func(ctx context.Context, input usecase.CreateLedgerAccountInput) (*domain.LedgerAccount, error)
	createRunningFn func(ctx context.Context, input usecase.CreateRunningAccountInput) (*domain.RunningAccount, error)
	getRunningFn    func(ctx context.Context, orgID, id string) (*domain.RunningAccount, error)
	listRunningFn   func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.RunningAccount, error)
	setActiveFn     func(ctx context.Context, orgID, id string, active bool) (*domain.RunningAccount, error)
}

func (s *accountServiceStub) CreateLedgerAccount(ctx context.Context, input usecase.CreateLedgerAccountInput) (*domain.LedgerAccount, error) {
	return s.createLedgerFn(ctx, input)
}

func (s *accountServiceStub) GetLedgerAccount(ctx context.Context, orgID, id string) (*domain.LedgerAccount, error) {
	return &domain.LedgerAccount{ID: id, OrganizationID: orgID}, nil
}

func (s *accountServiceStub) ListLedgerAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.LedgerAccount, error) {
	return nil, nil
}

func (s *accountServiceStub) CreateRunningAccount(ctx context.Context, input usecase.CreateRunningAccountInput) (*domain.RunningAccount, error) {
	return s.createRunningFn(ctx, input)
}

func (s *accountServiceStub) GetRunningAccount(ctx context.Context, orgID, id string) (*domain.RunningAccount, error) {
	return s.getRunningFn(ctx, orgID, id)
}

func (s *accountServiceStub) ListRunningAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.RunningAccount, error) {
	return s.listRunningFn(ctx, input)
}

func (s *accountServiceStub) SetRunningAccountActive(ctx context.Context, orgID, id string, active bool) (*domain.RunningAccount, error) {
	return s.setActiveFn(ctx, orgID, id, active)
}

func TestAccountHandler_CreateLedgerAccount_Success(t *testing.T) {
	var captured usecase.CreateLedgerAccountInput
	h := NewAccountHandler(&accountServiceStub{
		createLedgerFn: func(ctx context.Context, input usecase.CreateLedgerAccountInput) (*domain.LedgerAccount, error) {
			captured = input
			return &domain.LedgerAccount{ID: "la-1", OrganizationID: input.OrganizationID, Code: input.Code}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateLedgerAccountRequest{
		Code:            "1.1.01",
		Name:            "Cash",
		Kind:            string(domain.LedgerAccountAsset),
		AcceptsPostings: true,
	})
	req := withOrg(httptest.NewRequest(http.MethodPost, "/ledger-accounts", bytes.NewReader(body)))
	rec := httptest.NewRecorder()

	h.CreateLedgerAccount(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.OrganizationID != testOrg || captured.Code != "1.1.01" || !captured.AcceptsPostings {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.LedgerAccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "la-1" {
		t.Fatalf("expected ID la-1, got %s", resp.ID)
	}
}

func TestAccountHandler_CreateLedgerAccount_NoTenant(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		createLedgerFn: func(ctx context.Context, input usecase.CreateLedgerAccountInput) (*domain.LedgerAccount, error) {
			t.Fatal("CreateLedgerAccount should not be called without a tenant")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/ledger-accounts", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.CreateLedgerAccount(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAccountHandler_CreateRunningAccount_InvalidJSON(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		createRunningFn: func(ctx context.Context, input usecase.CreateRunningAccountInput) (*domain.RunningAccount, error) {
			t.Fatal("CreateRunningAccount should not be called for invalid payload")
			return nil, nil
		},
	})

	req := withOrg(httptest.NewRequest(http.MethodPost, "/running-accounts", bytes.NewBufferString("{invalid json")))
	rec := httptest.NewRecorder()

	h.CreateRunningAccount(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_GetRunningAccount(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getRunningFn: func(ctx context.Context, orgID, id string) (*domain.RunningAccount, error) {
			if id == "missing" {
				return nil, domain.ErrAccountNotFound
			}
			return &domain.RunningAccount{
				ID:             id,
				OrganizationID: orgID,
				FiatBalance:    decimal.RequireFromString("150.25"),
				MetalBalance:   decimal.RequireFromString("3.5"),
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.GetRunningAccount(rec, withURLParams(withOrg(httptest.NewRequest(http.MethodGet, "/running-accounts/ra-1", nil)), "id", "ra-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.RunningAccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.FiatBalance != "150.25" || resp.MetalBalance != "3.5" {
		t.Fatalf("unexpected balances %s / %s", resp.FiatBalance, resp.MetalBalance)
	}

	rec = httptest.NewRecorder()
	h.GetRunningAccount(rec, withURLParams(withOrg(httptest.NewRequest(http.MethodGet, "/running-accounts/missing", nil)), "id", "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_ListRunningAccounts_Pagination(t *testing.T) {
	var captured usecase.ListAccountsInput
	h := NewAccountHandler(&accountServiceStub{
		listRunningFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.RunningAccount, error) {
			captured = input
			return []*domain.RunningAccount{{ID: "ra-1"}, {ID: "ra-2"}}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.ListRunningAccounts(rec, withOrg(httptest.NewRequest(http.MethodGet, "/running-accounts?limit=5&offset=10", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Limit != 5 || captured.Offset != 10 || captured.OrganizationID != testOrg {
		t.Fatalf("unexpected list input %+v", captured)
	}

	var resp dto.ListResponse[dto.RunningAccountResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 items, got %d", resp.Total)
	}
}

func TestAccountHandler_SetRunningAccountActive_ServiceError(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		setActiveFn: func(ctx context.Context, orgID, id string, active bool) (*domain.RunningAccount, error) {
			return nil, errors.New("db error")
		},
	})

	req := withURLParams(withOrg(httptest.NewRequest(http.MethodPut, "/running-accounts/ra-1/active", bytes.NewBufferString(`{"active":false}`))), "id", "ra-1")
	rec := httptest.NewRecorder()

	h.SetRunningAccountActive(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
