package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/metalledger/internal/domain"
	"github.com/iho/metalledger/internal/usecase"
)

// state is everything the in-memory repositories persist.
type state struct {
	ledgerAccounts  map[string]*domain.LedgerAccount
	runningAccounts map[string]*domain.RunningAccount
	postings        map[string]*domain.Posting
	postingOrder    []string
	claims          map[string]*domain.Claim
	credits         map[string]*domain.MetalCredit
	usages          map[string]*domain.MetalCreditUsage
	usageOrder      []string
	lots            map[string]*domain.MetalLot
	outbox          []*domain.OutboxEvent
}

func newState() state {
	return state{
		ledgerAccounts:  make(map[string]*domain.LedgerAccount),
		runningAccounts: make(map[string]*domain.RunningAccount),
		postings:        make(map[string]*domain.Posting),
		claims:          make(map[string]*domain.Claim),
		credits:         make(map[string]*domain.MetalCredit),
		usages:          make(map[string]*domain.MetalCreditUsage),
		lots:            make(map[string]*domain.MetalLot),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.ledgerAccounts {
		c.ledgerAccounts[k] = cloneLedgerAccount(v)
	}
	for k, v := range s.runningAccounts {
		c.runningAccounts[k] = cloneRunningAccount(v)
	}
	for k, v := range s.postings {
		c.postings[k] = clonePosting(v)
	}
	for k, v := range s.claims {
		c.claims[k] = cloneClaim(v)
	}
	for k, v := range s.credits {
		c.credits[k] = cloneCredit(v)
	}
	for k, v := range s.usages {
		c.usages[k] = cloneUsage(v)
	}
	for k, v := range s.lots {
		c.lots[k] = cloneLot(v)
	}
	c.postingOrder = append([]string(nil), s.postingOrder...)
	c.usageOrder = append([]string(nil), s.usageOrder...)
	for _, e := range s.outbox {
		cp := *e
		c.outbox = append(c.outbox, &cp)
	}
	return c
}

func cloneLedgerAccount(a *domain.LedgerAccount) *domain.LedgerAccount {
	cp := *a
	return &cp
}

func cloneRunningAccount(a *domain.RunningAccount) *domain.RunningAccount {
	cp := *a
	return &cp
}

func clonePosting(p *domain.Posting) *domain.Posting {
	cp := *p
	return &cp
}

func cloneClaim(c *domain.Claim) *domain.Claim {
	cp := *c
	cp.Links = append([]domain.ClaimLink(nil), c.Links...)
	return &cp
}

func cloneCredit(c *domain.MetalCredit) *domain.MetalCredit {
	cp := *c
	return &cp
}

func cloneUsage(u *domain.MetalCreditUsage) *domain.MetalCreditUsage {
	cp := *u
	return &cp
}

func cloneLot(l *domain.MetalLot) *domain.MetalLot {
	cp := *l
	return &cp
}

// Store is the shared state behind the mock repositories. Begin holds the
// store-wide transaction lock until Commit or Rollback, so units of work run
// one at a time the way row locks would serialize them, and a Rollback
// without Commit restores the state seen at Begin. Reads return copies.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) read(fn func(d *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

func (s *Store) write(fn func(d *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

func (s *Store) restore(snap state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snap
}

// PutRunningAccount overwrites a running account as-is, for seeding drifted state.
func (s *Store) PutRunningAccount(a *domain.RunningAccount) {
	s.write(func(d *state) { d.runningAccounts[a.ID] = cloneRunningAccount(a) })
}

// PutPosting stores a posting as-is, bypassing balance updates.
func (s *Store) PutPosting(p *domain.Posting) {
	s.write(func(d *state) {
		if _, ok := d.postings[p.ID]; !ok {
			d.postingOrder = append(d.postingOrder, p.ID)
		}
		d.postings[p.ID] = clonePosting(p)
	})
}

// PutClaim overwrites a claim and its links as-is.
func (s *Store) PutClaim(c *domain.Claim) {
	s.write(func(d *state) { d.claims[c.ID] = cloneClaim(c) })
}

// PutCredit overwrites a metal credit as-is.
func (s *Store) PutCredit(c *domain.MetalCredit) {
	s.write(func(d *state) { d.credits[c.ID] = cloneCredit(c) })
}

// PutUsage stores a usage as-is.
func (s *Store) PutUsage(u *domain.MetalCreditUsage) {
	s.write(func(d *state) {
		if _, ok := d.usages[u.ID]; !ok {
			d.usageOrder = append(d.usageOrder, u.ID)
		}
		d.usages[u.ID] = cloneUsage(u)
	})
}

// PutLot overwrites a lot as-is.
func (s *Store) PutLot(l *domain.MetalLot) {
	s.write(func(d *state) { d.lots[l.ID] = cloneLot(l) })
}

// Postings returns every stored posting of the organization in insertion order.
func (s *Store) Postings(orgID string) []*domain.Posting {
	var out []*domain.Posting
	s.read(func(d *state) {
		for _, id := range d.postingOrder {
			if p := d.postings[id]; p.OrganizationID == orgID {
				out = append(out, clonePosting(p))
			}
		}
	})
	return out
}

// Usages returns every stored usage in insertion order.
func (s *Store) Usages() []*domain.MetalCreditUsage {
	var out []*domain.MetalCreditUsage
	s.read(func(d *state) {
		for _, id := range d.usageOrder {
			out = append(out, cloneUsage(d.usages[id]))
		}
	})
	return out
}

// Events returns the outbox in write order.
func (s *Store) Events() []*domain.OutboxEvent {
	var out []*domain.OutboxEvent
	s.read(func(d *state) {
		for _, e := range d.outbox {
			cp := *e
			out = append(out, &cp)
		}
	})
	return out
}

func scanIDs[T any](m map[string]T, keep func(T) bool, afterID string, limit int) []string {
	var ids []string
	for id, v := range m {
		if id > afterID && keep(v) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	store *Store

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

// NewMockTransactionManager returns a manager whose transactions lock and
// snapshot store. A nil store gives transactions that do nothing.
func NewMockTransactionManager(store *Store) *MockTransactionManager {
	return &MockTransactionManager{store: store}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	if m.store == nil {
		return &MockTransaction{}, nil
	}
	m.store.txMu.Lock()
	return &MockTransaction{store: m.store, snap: m.store.snapshot()}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	store *Store
	snap  state
	done  bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	m.finish(false)
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		if err := m.RollbackFunc(ctx); err != nil {
			return err
		}
	}
	m.finish(true)
	return nil
}

func (m *MockTransaction) finish(restore bool) {
	if m.done || m.store == nil {
		return
	}
	m.done = true
	if restore {
		m.store.restore(m.snap)
	}
	m.store.txMu.Unlock()
}

// MockLedgerAccountRepository is a mock implementation of LedgerAccountRepository.
type MockLedgerAccountRepository struct {
	store *Store

	CreateFunc   func(ctx context.Context, account *domain.LedgerAccount) error
	GetByIDFunc  func(ctx context.Context, orgID, id string) (*domain.LedgerAccount, error)
	GetByIDsFunc func(ctx context.Context, tx usecase.Transaction, orgID string, ids []string) ([]*domain.LedgerAccount, error)
	ListFunc     func(ctx context.Context, orgID string, limit, offset int) ([]*domain.LedgerAccount, error)
}

func NewMockLedgerAccountRepository(store *Store) *MockLedgerAccountRepository {
	return &MockLedgerAccountRepository{store: store}
}

func (m *MockLedgerAccountRepository) Create(ctx context.Context, account *domain.LedgerAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	var err error
	m.store.write(func(d *state) {
		for _, a := range d.ledgerAccounts {
			if a.OrganizationID == account.OrganizationID && a.Code == account.Code {
				err = fmt.Errorf("%w: code %s already exists", domain.ErrInvalidAccountCode, a.Code)
				return
			}
		}
		d.ledgerAccounts[account.ID] = cloneLedgerAccount(account)
	})
	return err
}

func (m *MockLedgerAccountRepository) GetByID(ctx context.Context, orgID, id string) (*domain.LedgerAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, orgID, id)
	}
	var out *domain.LedgerAccount
	m.store.read(func(d *state) {
		if a, ok := d.ledgerAccounts[id]; ok && a.OrganizationID == orgID {
			out = cloneLedgerAccount(a)
		}
	})
	if out == nil {
		return nil, domain.ErrAccountNotFound
	}
	return out, nil
}

func (m *MockLedgerAccountRepository) GetByIDs(ctx context.Context, tx usecase.Transaction, orgID string, ids []string) ([]*domain.LedgerAccount, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, tx, orgID, ids)
	}
	var out []*domain.LedgerAccount
	m.store.read(func(d *state) {
		for _, id := range ids {
			if a, ok := d.ledgerAccounts[id]; ok && a.OrganizationID == orgID {
				out = append(out, cloneLedgerAccount(a))
			}
		}
	})
	return out, nil
}

func (m *MockLedgerAccountRepository) List(ctx context.Context, orgID string, limit, offset int) ([]*domain.LedgerAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, orgID, limit, offset)
	}
	var out []*domain.LedgerAccount
	m.store.read(func(d *state) {
		for _, a := range d.ledgerAccounts {
			if a.OrganizationID == orgID {
				out = append(out, cloneLedgerAccount(a))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

// MockRunningAccountRepository is a mock implementation of RunningAccountRepository.
type MockRunningAccountRepository struct {
	store *Store

	CreateFunc            func(ctx context.Context, account *domain.RunningAccount) error
	GetByIDFunc           func(ctx context.Context, orgID, id string) (*domain.RunningAccount, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, orgID string, ids []string) ([]*domain.RunningAccount, error)
	UpdateBalancesFunc    func(ctx context.Context, tx usecase.Transaction, account *domain.RunningAccount) error
}

func NewMockRunningAccountRepository(store *Store) *MockRunningAccountRepository {
	return &MockRunningAccountRepository{store: store}
}

func (m *MockRunningAccountRepository) Create(ctx context.Context, account *domain.RunningAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.store.write(func(d *state) { d.runningAccounts[account.ID] = cloneRunningAccount(account) })
	return nil
}

func (m *MockRunningAccountRepository) GetByID(ctx context.Context, orgID, id string) (*domain.RunningAccount, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, orgID, id)
	}
	var out *domain.RunningAccount
	m.store.read(func(d *state) {
		if a, ok := d.runningAccounts[id]; ok && a.OrganizationID == orgID {
			out = cloneRunningAccount(a)
		}
	})
	if out == nil {
		return nil, domain.ErrAccountNotFound
	}
	return out, nil
}

func (m *MockRunningAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, orgID string, ids []string) ([]*domain.RunningAccount, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, orgID, ids)
	}
	var out []*domain.RunningAccount
	m.store.read(func(d *state) {
		for _, id := range ids {
			if a, ok := d.runningAccounts[id]; ok && a.OrganizationID == orgID {
				out = append(out, cloneRunningAccount(a))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRunningAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, account *domain.RunningAccount) error {
	if m.UpdateBalancesFunc != nil {
		return m.UpdateBalancesFunc(ctx, tx, account)
	}
	var err error
	m.store.write(func(d *state) {
		a, ok := d.runningAccounts[account.ID]
		if !ok {
			err = domain.ErrAccountNotFound
			return
		}
		a.FiatBalance = account.FiatBalance
		a.MetalBalance = account.MetalBalance
		a.Version = account.Version
		a.UpdatedAt = account.UpdatedAt
	})
	return err
}

func (m *MockRunningAccountRepository) SetActive(ctx context.Context, orgID, id string, active bool, updatedAt time.Time) error {
	var err error
	m.store.write(func(d *state) {
		a, ok := d.runningAccounts[id]
		if !ok || a.OrganizationID != orgID {
			err = domain.ErrAccountNotFound
			return
		}
		a.Active = active
		a.UpdatedAt = updatedAt
	})
	return err
}

func (m *MockRunningAccountRepository) List(ctx context.Context, orgID string, limit, offset int) ([]*domain.RunningAccount, error) {
	var out []*domain.RunningAccount
	m.store.read(func(d *state) {
		for _, a := range d.runningAccounts {
			if a.OrganizationID == orgID {
				out = append(out, cloneRunningAccount(a))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (m *MockRunningAccountRepository) ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	var ids []string
	m.store.read(func(d *state) {
		ids = scanIDs(d.runningAccounts, func(a *domain.RunningAccount) bool { return a.OrganizationID == orgID }, afterID, limit)
	})
	return ids, nil
}

// MockPostingRepository is a mock implementation of PostingRepository.
type MockPostingRepository struct {
	store *Store

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, posting *domain.Posting) error
	MarkAdjustedFunc func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockPostingRepository(store *Store) *MockPostingRepository {
	return &MockPostingRepository{store: store}
}

func (m *MockPostingRepository) Create(ctx context.Context, tx usecase.Transaction, posting *domain.Posting) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, posting)
	}
	m.store.PutPosting(posting)
	return nil
}

func (m *MockPostingRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Posting, error) {
	var out *domain.Posting
	m.store.read(func(d *state) {
		if p, ok := d.postings[id]; ok && p.OrganizationID == orgID {
			out = clonePosting(p)
		}
	})
	if out == nil {
		return nil, domain.ErrPostingNotFound
	}
	return out, nil
}

func (m *MockPostingRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.Posting, error) {
	return m.GetByID(ctx, orgID, id)
}

func (m *MockPostingRepository) GetByIDs(ctx context.Context, tx usecase.Transaction, orgID string, ids []string) ([]*domain.Posting, error) {
	var out []*domain.Posting
	m.store.read(func(d *state) {
		for _, id := range ids {
			if p, ok := d.postings[id]; ok && p.OrganizationID == orgID {
				out = append(out, clonePosting(p))
			}
		}
	})
	return out, nil
}

func (m *MockPostingRepository) MarkAdjusted(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.MarkAdjustedFunc != nil {
		return m.MarkAdjustedFunc(ctx, tx, id)
	}
	var err error
	m.store.write(func(d *state) {
		p, ok := d.postings[id]
		if !ok {
			err = domain.ErrPostingNotFound
			return
		}
		p.Status = domain.PostingAdjusted
	})
	return err
}

func (m *MockPostingRepository) filter(keep func(p *domain.Posting) bool) []*domain.Posting {
	var out []*domain.Posting
	m.store.read(func(d *state) {
		for _, id := range d.postingOrder {
			if p := d.postings[id]; keep(p) {
				out = append(out, clonePosting(p))
			}
		}
	})
	return out
}

func (m *MockPostingRepository) ListByRunningAccount(ctx context.Context, orgID, runningAccountID string, limit, offset int) ([]*domain.Posting, error) {
	out := m.filter(func(p *domain.Posting) bool {
		return p.OrganizationID == orgID && p.RunningAccountID == runningAccountID
	})
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return page(out, limit, offset), nil
}

func (m *MockPostingRepository) ListActiveByRunningAccount(ctx context.Context, tx usecase.Transaction, orgID, runningAccountID string) ([]*domain.Posting, error) {
	return m.filter(func(p *domain.Posting) bool {
		return p.OrganizationID == orgID && p.RunningAccountID == runningAccountID && p.IsActive()
	}), nil
}

func (m *MockPostingRepository) FindActive(ctx context.Context, tx usecase.Transaction, orgID, ledgerAccountID string, kind domain.PostingKind, fiat decimal.Decimal) ([]*domain.Posting, error) {
	return m.filter(func(p *domain.Posting) bool {
		return p.OrganizationID == orgID && p.LedgerAccountID == ledgerAccountID &&
			p.Kind == kind && p.IsActive() && p.FiatAmount.Equal(fiat)
	}), nil
}

// MockClaimRepository is a mock implementation of ClaimRepository.
type MockClaimRepository struct {
	store *Store

	AddLinkFunc          func(ctx context.Context, tx usecase.Transaction, link domain.ClaimLink) error
	UpdateSettlementFunc func(ctx context.Context, tx usecase.Transaction, claim *domain.Claim) error
}

func NewMockClaimRepository(store *Store) *MockClaimRepository {
	return &MockClaimRepository{store: store}
}

func (m *MockClaimRepository) Create(ctx context.Context, tx usecase.Transaction, claim *domain.Claim) error {
	m.store.PutClaim(claim)
	return nil
}

func (m *MockClaimRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Claim, error) {
	var out *domain.Claim
	m.store.read(func(d *state) {
		if c, ok := d.claims[id]; ok && c.OrganizationID == orgID {
			out = cloneClaim(c)
		}
	})
	if out == nil {
		return nil, domain.ErrClaimNotFound
	}
	return out, nil
}

func (m *MockClaimRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.Claim, error) {
	return m.GetByID(ctx, orgID, id)
}

func (m *MockClaimRepository) AddLink(ctx context.Context, tx usecase.Transaction, link domain.ClaimLink) error {
	if m.AddLinkFunc != nil {
		return m.AddLinkFunc(ctx, tx, link)
	}
	var err error
	m.store.write(func(d *state) {
		c, ok := d.claims[link.ClaimID]
		if !ok {
			err = domain.ErrClaimNotFound
			return
		}
		if c.HasLink(link.PostingID) {
			err = domain.ErrPostingAlreadyLinked
			return
		}
		c.Links = append(c.Links, link)
	})
	return err
}

func (m *MockClaimRepository) RemoveLink(ctx context.Context, tx usecase.Transaction, claimID, postingID string) error {
	var err error
	m.store.write(func(d *state) {
		c, ok := d.claims[claimID]
		if !ok {
			err = domain.ErrClaimNotFound
			return
		}
		_, err = c.RemoveLink(postingID)
	})
	return err
}

func (m *MockClaimRepository) UpdateSettlement(ctx context.Context, tx usecase.Transaction, claim *domain.Claim) error {
	if m.UpdateSettlementFunc != nil {
		return m.UpdateSettlementFunc(ctx, tx, claim)
	}
	var err error
	m.store.write(func(d *state) {
		c, ok := d.claims[claim.ID]
		if !ok {
			err = domain.ErrClaimNotFound
			return
		}
		c.Settled = claim.Settled
		c.SettledAt = claim.SettledAt
		c.RunningAccountID = claim.RunningAccountID
		c.UpdatedAt = claim.UpdatedAt
	})
	return err
}

func (m *MockClaimRepository) ListIDsByPosting(ctx context.Context, tx usecase.Transaction, orgID, postingID string) ([]string, error) {
	var ids []string
	m.store.read(func(d *state) {
		for id, c := range d.claims {
			if c.OrganizationID == orgID && c.HasLink(postingID) {
				ids = append(ids, id)
			}
		}
	})
	sort.Strings(ids)
	return ids, nil
}

func (m *MockClaimRepository) ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	var ids []string
	m.store.read(func(d *state) {
		ids = scanIDs(d.claims, func(c *domain.Claim) bool { return c.OrganizationID == orgID }, afterID, limit)
	})
	return ids, nil
}

// MockMetalCreditRepository is a mock implementation of MetalCreditRepository.
type MockMetalCreditRepository struct {
	store *Store

	UpdateFunc      func(ctx context.Context, tx usecase.Transaction, credit *domain.MetalCredit) error
	CreateUsageFunc func(ctx context.Context, tx usecase.Transaction, usage *domain.MetalCreditUsage) error
}

func NewMockMetalCreditRepository(store *Store) *MockMetalCreditRepository {
	return &MockMetalCreditRepository{store: store}
}

func (m *MockMetalCreditRepository) Create(ctx context.Context, tx usecase.Transaction, credit *domain.MetalCredit) error {
	m.store.PutCredit(credit)
	return nil
}

func (m *MockMetalCreditRepository) GetByID(ctx context.Context, orgID, id string) (*domain.MetalCredit, error) {
	var out *domain.MetalCredit
	m.store.read(func(d *state) {
		if c, ok := d.credits[id]; ok && c.OrganizationID == orgID {
			out = cloneCredit(c)
		}
	})
	if out == nil {
		return nil, domain.ErrCreditNotFound
	}
	return out, nil
}

func (m *MockMetalCreditRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.MetalCredit, error) {
	return m.GetByID(ctx, orgID, id)
}

func (m *MockMetalCreditRepository) Update(ctx context.Context, tx usecase.Transaction, credit *domain.MetalCredit) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, credit)
	}
	var err error
	m.store.write(func(d *state) {
		c, ok := d.credits[credit.ID]
		if !ok {
			err = domain.ErrCreditNotFound
			return
		}
		c.RemainingGrams = credit.RemainingGrams
		c.Status = credit.Status
		c.UpdatedAt = credit.UpdatedAt
		c.Version++
	})
	return err
}

func (m *MockMetalCreditRepository) ListByClient(ctx context.Context, orgID, clientID string, metal *domain.MetalType) ([]*domain.MetalCredit, error) {
	var out []*domain.MetalCredit
	m.store.read(func(d *state) {
		for _, c := range d.credits {
			if c.OrganizationID == orgID && c.ClientID == clientID && (metal == nil || c.MetalType == *metal) {
				out = append(out, cloneCredit(c))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (m *MockMetalCreditRepository) ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	var ids []string
	m.store.read(func(d *state) {
		ids = scanIDs(d.credits, func(c *domain.MetalCredit) bool { return c.OrganizationID == orgID }, afterID, limit)
	})
	return ids, nil
}

func (m *MockMetalCreditRepository) CreateUsage(ctx context.Context, tx usecase.Transaction, usage *domain.MetalCreditUsage) error {
	if m.CreateUsageFunc != nil {
		return m.CreateUsageFunc(ctx, tx, usage)
	}
	m.store.PutUsage(usage)
	return nil
}

func (m *MockMetalCreditRepository) ListUsages(ctx context.Context, tx usecase.Transaction, orgID, creditID string) ([]*domain.MetalCreditUsage, error) {
	var out []*domain.MetalCreditUsage
	m.store.read(func(d *state) {
		for _, id := range d.usageOrder {
			if u := d.usages[id]; u.OrganizationID == orgID && u.MetalCreditID == creditID {
				out = append(out, cloneUsage(u))
			}
		}
	})
	return out, nil
}

func (m *MockMetalCreditRepository) GetUsageForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.MetalCreditUsage, error) {
	var out *domain.MetalCreditUsage
	m.store.read(func(d *state) {
		if u, ok := d.usages[id]; ok && u.OrganizationID == orgID {
			out = cloneUsage(u)
		}
	})
	if out == nil {
		return nil, domain.ErrCreditNotFound
	}
	return out, nil
}

func (m *MockMetalCreditRepository) SetUsagePayment(ctx context.Context, tx usecase.Transaction, orgID, usageID, paymentID string) error {
	var err error
	m.store.write(func(d *state) {
		u, ok := d.usages[usageID]
		if !ok || u.OrganizationID != orgID {
			err = domain.ErrCreditNotFound
			return
		}
		pid := paymentID
		u.ConsumingPaymentID = &pid
	})
	return err
}

func (m *MockMetalCreditRepository) IsPaymentLinked(ctx context.Context, tx usecase.Transaction, orgID, paymentID string) (bool, error) {
	var linked bool
	m.store.read(func(d *state) {
		for _, u := range d.usages {
			if u.OrganizationID == orgID && u.ConsumingPaymentID != nil && *u.ConsumingPaymentID == paymentID {
				linked = true
				return
			}
		}
	})
	return linked, nil
}

func (m *MockMetalCreditRepository) ScanUnlinkedCashUsageIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	var ids []string
	m.store.read(func(d *state) {
		ids = scanIDs(d.usages, func(u *domain.MetalCreditUsage) bool {
			return u.OrganizationID == orgID && u.ConsumingPaymentID == nil && u.IsCashSettled()
		}, afterID, limit)
	})
	return ids, nil
}

// MockMetalLotRepository is a mock implementation of MetalLotRepository.
type MockMetalLotRepository struct {
	store *Store

	UpdateFunc func(ctx context.Context, tx usecase.Transaction, lot *domain.MetalLot) error
}

func NewMockMetalLotRepository(store *Store) *MockMetalLotRepository {
	return &MockMetalLotRepository{store: store}
}

func (m *MockMetalLotRepository) Create(ctx context.Context, tx usecase.Transaction, lot *domain.MetalLot) error {
	m.store.PutLot(lot)
	return nil
}

func (m *MockMetalLotRepository) GetByID(ctx context.Context, orgID, id string) (*domain.MetalLot, error) {
	var out *domain.MetalLot
	m.store.read(func(d *state) {
		if l, ok := d.lots[id]; ok && l.OrganizationID == orgID {
			out = cloneLot(l)
		}
	})
	if out == nil {
		return nil, domain.ErrLotNotFound
	}
	return out, nil
}

func (m *MockMetalLotRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, orgID, id string) (*domain.MetalLot, error) {
	return m.GetByID(ctx, orgID, id)
}

func (m *MockMetalLotRepository) Update(ctx context.Context, tx usecase.Transaction, lot *domain.MetalLot) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, lot)
	}
	var err error
	m.store.write(func(d *state) {
		l, ok := d.lots[lot.ID]
		if !ok {
			err = domain.ErrLotNotFound
			return
		}
		l.RemainingGrams = lot.RemainingGrams
		l.Status = lot.Status
		l.UpdatedAt = lot.UpdatedAt
	})
	return err
}

func (m *MockMetalLotRepository) ListAvailable(ctx context.Context, orgID, productID string, after *domain.LotCursor, limit int) ([]*domain.MetalLot, error) {
	var out []*domain.MetalLot
	m.store.read(func(d *state) {
		for _, l := range d.lots {
			if l.OrganizationID != orgID || l.ProductID != productID || l.Status != domain.LotAvailable {
				continue
			}
			if after != nil && !after.Before(l) {
				continue
			}
			out = append(out, cloneLot(l))
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Cursor().Before(out[j]) })
	return page(out, limit, 0), nil
}

func (m *MockMetalLotRepository) ScanIDs(ctx context.Context, orgID, afterID string, limit int) ([]string, error) {
	var ids []string
	m.store.read(func(d *state) {
		ids = scanIDs(d.lots, func(l *domain.MetalLot) bool { return l.OrganizationID == orgID }, afterID, limit)
	})
	return ids, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	store *Store

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository(store *Store) *MockOutboxRepository {
	return &MockOutboxRepository{store: store}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	cp := *event
	m.store.write(func(d *state) { d.outbox = append(d.outbox, &cp) })
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	var out []*domain.OutboxEvent
	m.store.read(func(d *state) {
		for _, e := range d.outbox {
			if !e.Published {
				cp := *e
				out = append(out, &cp)
			}
		}
	})
	return page(out, limit, 0), nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.store.write(func(d *state) {
		for _, e := range d.outbox {
			if e.ID == id {
				at := publishedAt
				e.Published = true
				e.PublishedAt = &at
			}
		}
	})
	return nil
}

func (m *MockOutboxRepository) GetByAggregate(ctx context.Context, aggregateType, aggregateID string, limit, offset int) ([]*domain.OutboxEvent, error) {
	var out []*domain.OutboxEvent
	m.store.read(func(d *state) {
		for _, e := range d.outbox {
			if e.AggregateType == aggregateType && e.AggregateID == aggregateID {
				cp := *e
				out = append(out, &cp)
			}
		}
	})
	return page(out, limit, offset), nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	m.store.write(func(d *state) {
		kept := d.outbox[:0]
		for _, e := range d.outbox {
			if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
				kept = append(kept, e)
			}
		}
		d.outbox = kept
	})
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator. IDs sort in
// generation order.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%06d", m.counter)
}

// MockRetrier is a mock implementation of Retrier. By default it runs the
// operation once.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
	Calls     int
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	m.Calls++
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockMetrics is a mock implementation of MetricsRecorder that counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	Postings         int
	Reversals        int
	AllocatedGrams   map[domain.MetalType]decimal.Decimal
	ConsumedGrams    map[domain.MetalType]decimal.Decimal
	BackfillRepaired map[domain.BackfillKind]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		AllocatedGrams:   make(map[domain.MetalType]decimal.Decimal),
		ConsumedGrams:    make(map[domain.MetalType]decimal.Decimal),
		BackfillRepaired: make(map[domain.BackfillKind]int),
	}
}

func (m *MockMetrics) PostingsCreated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Postings += n
}

func (m *MockMetrics) PostingReversed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reversals++
}

func (m *MockMetrics) CreditAllocated(metal domain.MetalType, grams decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AllocatedGrams[metal] = m.AllocatedGrams[metal].Add(grams)
}

func (m *MockMetrics) LotConsumed(metal domain.MetalType, grams decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ConsumedGrams[metal] = m.ConsumedGrams[metal].Add(grams)
}

func (m *MockMetrics) BackfillFinished(kind domain.BackfillKind, repaired, skipped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackfillRepaired[kind] += repaired
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
