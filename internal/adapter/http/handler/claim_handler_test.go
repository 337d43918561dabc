package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

type claimServiceStub struct {
	createFn   func(ctx context.Context, input usecase.CreateClaimInput) (*domain.Claim, error)
	settleFn   func(ctx context.Context, input usecase.SettleInput) (*domain.Claim, error)
	unsettleFn func(ctx context.Context, input usecase.UnsettleInput) (*domain.Claim, error)
}

func (s *claimServiceStub) CreateClaim(ctx context.Context, input usecase.CreateClaimInput) (*domain.Claim, error) {
	return s.createFn(ctx, input)
}

func (s *claimServiceStub) GetClaim(ctx context.Context, orgID, id string) (*domain.Claim, error) {
	return &domain.Claim{ID: id, OrganizationID: orgID}, nil
}

func (s *claimServiceStub) Settle(ctx context.Context, input usecase.SettleInput) (*domain.Claim, error) {
	return s.settleFn(ctx, input)
}

func (s *claimServiceStub) Unsettle(ctx context.Context, input usecase.UnsettleInput) (*domain.Claim, error) {
	return s.unsettleFn(ctx, input)
}

func (s *claimServiceStub) Outstanding(ctx context.Context, orgID, id string) (decimal.Decimal, error) {
	return decimal.RequireFromString("40.50"), nil
}

func TestClaimHandler_Create(t *testing.T) {
	var captured usecase.CreateClaimInput
	h := NewClaimHandler(&claimServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateClaimInput) (*domain.Claim, error) {
			captured = input
			return &domain.Claim{ID: "c-1", Kind: input.Kind, OriginalAmount: input.OriginalAmount}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateClaimRequest{
		Counterparty:   "client-7",
		Currency:       "BRL",
		Kind:           string(domain.ClaimReceivable),
		OriginalAmount: "250.00",
	})
	rec := httptest.NewRecorder()

	h.Create(rec, withOrg(httptest.NewRequest(http.MethodPost, "/claims", bytes.NewReader(body))))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.OrganizationID != testOrg || !captured.OriginalAmount.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("unexpected claim input %+v", captured)
	}
}

func TestClaimHandler_Settle(t *testing.T) {
	var captured usecase.SettleInput
	h := NewClaimHandler(&claimServiceStub{
		settleFn: func(ctx context.Context, input usecase.SettleInput) (*domain.Claim, error) {
			captured = input
			return &domain.Claim{ID: input.ClaimID, Settled: true}, nil
		},
	})

	req := withURLParams(withOrg(httptest.NewRequest(http.MethodPost, "/claims/c-1/links", bytes.NewBufferString(`{"posting_id":"p-1"}`))), "id", "c-1")
	rec := httptest.NewRecorder()

	h.Settle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.ClaimID != "c-1" || captured.PostingID != "p-1" {
		t.Fatalf("unexpected settle input %+v", captured)
	}
}

func TestClaimHandler_Settle_AlreadySettled(t *testing.T) {
	h := NewClaimHandler(&claimServiceStub{
		settleFn: func(ctx context.Context, input usecase.SettleInput) (*domain.Claim, error) {
			return nil, domain.ErrAlreadySettled
		},
	})

	req := withURLParams(withOrg(httptest.NewRequest(http.MethodPost, "/claims/c-1/links", bytes.NewBufferString(`{"posting_id":"p-2"}`))), "id", "c-1")
	rec := httptest.NewRecorder()

	h.Settle(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != string(domain.KindAlreadySettled) {
		t.Fatalf("expected ALREADY_SETTLED, got %+v", resp)
	}
}

func TestClaimHandler_Unsettle_UsesPathParams(t *testing.T) {
	var captured usecase.UnsettleInput
	h := NewClaimHandler(&claimServiceStub{
		unsettleFn: func(ctx context.Context, input usecase.UnsettleInput) (*domain.Claim, error) {
			captured = input
			return &domain.Claim{ID: input.ClaimID}, nil
		},
	})

	req := withURLParams(withOrg(httptest.NewRequest(http.MethodDelete, "/claims/c-1/links/p-1", nil)), "id", "c-1", "postingID", "p-1")
	rec := httptest.NewRecorder()

	h.Unsettle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.ClaimID != "c-1" || captured.PostingID != "p-1" {
		t.Fatalf("unexpected unsettle input %+v", captured)
	}
}

func TestClaimHandler_Outstanding(t *testing.T) {
	h := NewClaimHandler(&claimServiceStub{})

	rec := httptest.NewRecorder()
	h.Outstanding(rec, withURLParams(withOrg(httptest.NewRequest(http.MethodGet, "/claims/c-1/outstanding", nil)), "id", "c-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.OutstandingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ClaimID != "c-1" || resp.Outstanding != "40.5" {
		t.Fatalf("unexpected outstanding %+v", resp)
	}
}
