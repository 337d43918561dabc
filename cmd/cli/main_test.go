package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/metalledger/internal/adapter/http/dto"
	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/infrastructure/auth"
)

// runCLI executes the root command against srv and returns its output.
func runCLI(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = orig })

	cmd := rootCmd()
	if srv != nil {
		args = append([]string{"--url", srv.URL}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()

	return buf.String(), err
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon...", truncate("longerstring", 6))
}

func TestConsistency_Passed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/ledger/consistency", r.URL.Path)
		assert.Equal(t, "org-1", r.Header.Get("X-Organization-ID"))
		json.NewEncoder(w).Encode(dto.ConsistencyResponse{TotalAccounts: 4, Consistent: true})
	}))
	defer srv.Close()

	out, err := runCLI(t, srv, "--org", "org-1", "ledger", "consistency")

	require.NoError(t, err)
	assert.Contains(t, out, "PASSED (4 accounts)")
}

func TestConsistency_FailedListsDrift(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(dto.ConsistencyResponse{
			TotalAccounts: 4,
			Discrepancies: []*dto.ReconciliationResponse{{RunningAccountID: "ra-9", FiatDifference: "12.5", MetalDifference: "0"}},
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, srv, "--org", "org-1", "ledger", "consistency")

	require.Error(t, err)
	assert.Contains(t, out, "1 of 4 accounts drifted")
	assert.Contains(t, out, "ra-9")
}

func TestBackfillRun_SingleKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/backfills/lot-status", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(domain.BackfillReport{
			Kind:     domain.BackfillLotStatus,
			Repaired: 3,
			Skipped:  []domain.RecordRef{{Type: domain.RecordMetalLot, ID: "lot-7", Reason: "negative stock"}},
		})
	}))
	defer srv.Close()

	out, err := runCLI(t, srv, "--token", "tok", "backfill", "run", "--kind", "lot-status")

	require.NoError(t, err)
	assert.Contains(t, out, "lot-status: repaired=3 skipped=1")
	assert.Contains(t, out, "lot-7")
}

func TestBackfillRun_UnknownKind(t *testing.T) {
	_, err := runCLI(t, nil, "backfill", "run", "--kind", "nope")

	assert.True(t, errors.Is(err, domain.ErrUnknownBackfill))
}

func TestBackfillRun_LockHeld(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "backfill failed", Code: string(domain.KindBusy)})
	}))
	defer srv.Close()

	_, err := runCLI(t, srv, "--org", "org-1", "backfill", "run")

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, string(domain.KindBusy), apiErr.Body.Code)
}

func TestLotsAvailable_FollowsCursor(t *testing.T) {
	entry := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/v1/products/prod-1/lots", r.URL.Path)

		page := dto.LotPageResponse{}
		if r.URL.Query().Get("after_id") == "" {
			page.Lots = []*dto.MetalLotResponse{{ID: "lot-1", MetalType: "AU", EntryDate: entry, RemainingGrams: "5", Purity: "0.75", FineGrams: "3.75"}}
			page.Next = &dto.LotCursorResponse{AfterDate: entry, AfterID: "lot-1"}
		} else {
			assert.Equal(t, "lot-1", r.URL.Query().Get("after_id"))
			page.Lots = []*dto.MetalLotResponse{{ID: "lot-2", MetalType: "AU", EntryDate: entry, RemainingGrams: "2", Purity: "1", FineGrams: "2"}}
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	out, err := runCLI(t, srv, "--org", "org-1", "lots", "available", "--product", "prod-1", "--limit", "1")

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, out, "lot-1")
	assert.Contains(t, out, "lot-2")
	assert.Contains(t, out, "3.75")
}

func TestLotsAvailable_RequiresProduct(t *testing.T) {
	_, err := runCLI(t, nil, "lots", "available")

	assert.Error(t, err)
}

func TestTokenIssue(t *testing.T) {
	out, err := runCLI(t, nil, "--org", "org-1", "token", "issue", "--secret", "s3cret", "--role", "viewer")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager("s3cret", time.Hour).Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "org-1", claims.OrganizationID)
	assert.Equal(t, domain.RoleViewer, claims.Role)
}
