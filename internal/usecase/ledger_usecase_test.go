package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
	"github.com/iho/metalledger/internal/usecase/gomocks"
)

func runningAccount(id, fiat, metal string) *domain.RunningAccount {
	return &domain.RunningAccount{
		ID:             id,
		OrganizationID: org,
		Currency:       "BRL",
		FiatBalance:    d(fiat),
		MetalBalance:   d(metal),
		Active:         true,
	}
}

func activePosting(raID string, kind domain.PostingKind, fiat string, grams *string) *domain.Posting {
	p := &domain.Posting{
		ID:               "p-" + raID + "-" + fiat,
		OrganizationID:   org,
		RunningAccountID: raID,
		Kind:             kind,
		FiatAmount:       d(fiat),
		Currency:         "BRL",
		Status:           domain.PostingActive,
		Timestamp:        time.Now(),
	}
	if grams != nil {
		p.MetalGrams = dp(*grams)
	}
	return p
}

func TestLedgerUseCase_CheckConsistency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		setup          func(ras *gomocks.MockRunningAccountRepositoryMockRecorder, ps *gomocks.MockPostingRepositoryMockRecorder)
		wantConsistent bool
		wantTotal      int
		wantErr        bool
	}{
		{
			name: "balances match replay",
			setup: func(ras *gomocks.MockRunningAccountRepositoryMockRecorder, ps *gomocks.MockPostingRepositoryMockRecorder) {
				ras.ScanIDs(gomock.Any(), org, "", gomock.Any()).Return([]string{"ra-1"}, nil)
				ras.GetByID(gomock.Any(), org, "ra-1").Return(runningAccount("ra-1", "70", "0"), nil)
				ps.ListActiveByRunningAccount(gomock.Any(), nil, org, "ra-1").Return([]*domain.Posting{
					activePosting("ra-1", domain.PostingCredit, "100", nil),
					activePosting("ra-1", domain.PostingDebit, "30", nil),
				}, nil)
			},
			wantConsistent: true,
			wantTotal:      1,
		},
		{
			name: "metal drift is reported",
			setup: func(ras *gomocks.MockRunningAccountRepositoryMockRecorder, ps *gomocks.MockPostingRepositoryMockRecorder) {
				ras.ScanIDs(gomock.Any(), org, "", gomock.Any()).Return([]string{"ra-1", "ra-2"}, nil)
				ras.GetByID(gomock.Any(), org, "ra-1").Return(runningAccount("ra-1", "0", "0"), nil)
				ras.GetByID(gomock.Any(), org, "ra-2").Return(runningAccount("ra-2", "300", "2"), nil)
				ps.ListActiveByRunningAccount(gomock.Any(), nil, org, "ra-1").Return(nil, nil)
				grams := "1"
				ps.ListActiveByRunningAccount(gomock.Any(), nil, org, "ra-2").Return([]*domain.Posting{
					activePosting("ra-2", domain.PostingCredit, "300", &grams),
				}, nil)
			},
			wantConsistent: false,
			wantTotal:      2,
		},
		{
			name: "scan error surfaces",
			setup: func(ras *gomocks.MockRunningAccountRepositoryMockRecorder, ps *gomocks.MockPostingRepositoryMockRecorder) {
				ras.ScanIDs(gomock.Any(), org, "", gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			ras := gomocks.NewMockRunningAccountRepository(ctrl)
			ps := gomocks.NewMockPostingRepository(ctrl)
			tt.setup(ras.EXPECT(), ps.EXPECT())

			uc := usecase.NewLedgerUseCase(ras, ps)

			report, err := uc.CheckConsistency(context.Background(), org)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantConsistent, report.Consistent)
			assert.Equal(t, tt.wantTotal, report.TotalAccounts)
			assert.Equal(t, tt.wantConsistent, len(report.Discrepancies) == 0)
		})
	}
}

func TestLedgerUseCase_ReconcileAccount(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	f := e.fixture(t)
	ctx := context.Background()

	e.receipt(t, f, f.cash, "250", time.Now())

	ok, err := e.ledger.ReconcileAccount(ctx, org, f.cash.ID)
	require.NoError(t, err)
	assert.True(t, ok.IsReconciled)
	assert.True(t, ok.FiatDifference.IsZero())

	acc, err := e.runningRepo.GetByID(ctx, org, f.cash.ID)
	require.NoError(t, err)
	acc.FiatBalance = d("200")
	e.store.PutRunningAccount(acc)

	drift, err := e.ledger.ReconcileAccount(ctx, org, f.cash.ID)
	require.NoError(t, err)
	assert.False(t, drift.IsReconciled)
	assert.True(t, drift.FiatDifference.Equal(d("-50")))
	assert.True(t, drift.Calculated.Fiat.Equal(d("250")))

	report, err := e.ledger.CheckConsistency(ctx, org)
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	require.Len(t, report.Discrepancies, 1)
	assert.Equal(t, f.cash.ID, report.Discrepancies[0].RunningAccountID)

	_, err = e.ledger.ReconcileAccount(ctx, org, "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}
