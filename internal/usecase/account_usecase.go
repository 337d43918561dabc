package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
)

// AccountUseCase handles the chart of accounts and running accounts.
type AccountUseCase struct {
	ledgerAccountRepo  LedgerAccountRepository
	runningAccountRepo RunningAccountRepository
	idGen              IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	ledgerAccountRepo LedgerAccountRepository,
	runningAccountRepo RunningAccountRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		ledgerAccountRepo:  ledgerAccountRepo,
		runningAccountRepo: runningAccountRepo,
		idGen:              idGen,
	}
}

// CreateLedgerAccountInput represents input for creating a ledger account.
type CreateLedgerAccountInput struct {
	ParentID        *string
	OrganizationID  string
	Code            string
	Name            string
	Kind            domain.LedgerAccountKind
	AcceptsPostings bool
}

// CreateLedgerAccount creates a node of the chart of accounts. A parent is a
// grouping node and must not accept postings itself.
func (uc *AccountUseCase) CreateLedgerAccount(ctx context.Context, input CreateLedgerAccountInput) (*domain.LedgerAccount, error) {
	now := time.Now().UTC()

	account := &domain.LedgerAccount{
		ID:              uc.idGen.Generate(),
		OrganizationID:  input.OrganizationID,
		ParentID:        input.ParentID,
		Code:            strings.TrimSpace(input.Code),
		Name:            strings.TrimSpace(input.Name),
		Kind:            input.Kind,
		AcceptsPostings: input.AcceptsPostings,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var parent *domain.LedgerAccount
	if input.ParentID != nil {
		var err error

		parent, err = uc.ledgerAccountRepo.GetByID(ctx, input.OrganizationID, *input.ParentID)
		if err != nil {
			return nil, err
		}

		if parent.AcceptsPostings {
			return nil, fmt.Errorf("%w: parent %s accepts postings and cannot have children", domain.ErrInvalidAccountCode, parent.Code)
		}
	}

	if err := account.Validate(parent); err != nil {
		return nil, err
	}

	if err := uc.ledgerAccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetLedgerAccount retrieves a ledger account by ID.
func (uc *AccountUseCase) GetLedgerAccount(ctx context.Context, orgID, id string) (*domain.LedgerAccount, error) {
	return uc.ledgerAccountRepo.GetByID(ctx, orgID, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	OrganizationID string
	Limit          int
	Offset         int
}

// ListLedgerAccounts lists the chart of accounts ordered by code.
func (uc *AccountUseCase) ListLedgerAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.LedgerAccount, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.ledgerAccountRepo.List(ctx, input.OrganizationID, limit, offset)
}

// CreateRunningAccountInput represents input for creating a running account.
type CreateRunningAccountInput struct {
	OrganizationID string
	Name           string
	Currency       string
	Kind           domain.RunningAccountKind
}

// CreateRunningAccount creates an active running account with zero balances.
func (uc *AccountUseCase) CreateRunningAccount(ctx context.Context, input CreateRunningAccountInput) (*domain.RunningAccount, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	if !input.Kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown running account kind %q", domain.ErrInvalidAccountCode, input.Kind)
	}

	now := time.Now().UTC()

	account := &domain.RunningAccount{
		ID:             uc.idGen.Generate(),
		OrganizationID: input.OrganizationID,
		Name:           strings.TrimSpace(input.Name),
		Kind:           input.Kind,
		Currency:       strings.ToUpper(strings.TrimSpace(input.Currency)),
		FiatBalance:    decimal.Zero,
		MetalBalance:   decimal.Zero,
		Version:        0,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.runningAccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetRunningAccount retrieves a running account by ID.
func (uc *AccountUseCase) GetRunningAccount(ctx context.Context, orgID, id string) (*domain.RunningAccount, error) {
	return uc.runningAccountRepo.GetByID(ctx, orgID, id)
}

// ListRunningAccounts lists running accounts with pagination.
func (uc *AccountUseCase) ListRunningAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.RunningAccount, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.runningAccountRepo.List(ctx, input.OrganizationID, limit, offset)
}

// SetRunningAccountActive activates or deactivates a running account. An
// inactive account keeps its history but rejects new postings.
func (uc *AccountUseCase) SetRunningAccountActive(ctx context.Context, orgID, id string, active bool) (*domain.RunningAccount, error) {
	if err := uc.runningAccountRepo.SetActive(ctx, orgID, id, active, time.Now().UTC()); err != nil {
		return nil, err
	}

	return uc.runningAccountRepo.GetByID(ctx, orgID, id)
}
