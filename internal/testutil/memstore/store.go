// Package memstore is an in-memory UnitOfWork for tests. A single mutex
// stands in for the store's row locks, and map snapshots stand in for
// transaction rollback.
package memstore

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	investmentDomain "github.com/Parthsuii/fintech/internal/domain/investment"
	ledgerDomain "github.com/Parthsuii/fintech/internal/domain/ledger"
	projectDomain "github.com/Parthsuii/fintech/internal/domain/project"
	"github.com/Parthsuii/fintech/internal/domain/uow"
)

var _ uow.UnitOfWork = (*Store)(nil)

type Store struct {
	mu          sync.Mutex
	investments map[string]*investmentDomain.Investment // by InvestmentID
	accounts    map[string]*ledgerDomain.Account        // by OwnerID
	projects    map[string]*projectDomain.Project       // by ProjectID
}

func New() *Store {
	return &Store{
		investments: map[string]*investmentDomain.Investment{},
		accounts:    map[string]*ledgerDomain.Account{},
		projects:    map[string]*projectDomain.Project{},
	}
}

// ---- seeding & assertions ----

func (s *Store) AddProject(p *projectDomain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ProjectID] = p
}

func (s *Store) AddInvestment(inv *investmentDomain.Investment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.investments[inv.InvestmentID] = &cp
}

func (s *Store) Investment(investmentID string) (investmentDomain.Investment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.investments[investmentID]
	if !ok {
		return investmentDomain.Investment{}, false
	}
	return *inv, true
}

// Balance returns zero for accounts that were never credited.
func (s *Store) Balance(ownerID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[ownerID]
	if !ok {
		return decimal.Zero
	}
	return acc.Balance
}

// ---- UnitOfWork ----

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	if err := fn(s.repos()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) WithinInvestmentTx(ctx context.Context, investmentID string, fn func(r uow.Repos, inv *investmentDomain.Investment) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.investments[investmentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	snap := s.snapshot()
	if err := fn(s.repos(), inv); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *Store) repos() uow.Repos {
	return uow.Repos{
		Investments: &investmentRepo{s},
		Accounts:    &accountRepo{s},
		Projects:    &projectRepo{s},
	}
}

type snapshotState struct {
	investments map[string]investmentDomain.Investment
	accounts    map[string]ledgerDomain.Account
}

func (s *Store) snapshot() snapshotState {
	snap := snapshotState{
		investments: make(map[string]investmentDomain.Investment, len(s.investments)),
		accounts:    make(map[string]ledgerDomain.Account, len(s.accounts)),
	}
	for k, v := range s.investments {
		cp := *v
		if v.ExternalTxnID != nil {
			txn := *v.ExternalTxnID
			cp.ExternalTxnID = &txn
		}
		snap.investments[k] = cp
	}
	for k, v := range s.accounts {
		snap.accounts[k] = *v
	}
	return snap
}

func (s *Store) restore(snap snapshotState) {
	s.investments = make(map[string]*investmentDomain.Investment, len(snap.investments))
	for k, v := range snap.investments {
		cp := v
		s.investments[k] = &cp
	}
	s.accounts = make(map[string]*ledgerDomain.Account, len(snap.accounts))
	for k, v := range snap.accounts {
		cp := v
		s.accounts[k] = &cp
	}
}

// ---- repositories (callers already hold s.mu via WithinTx) ----

type investmentRepo struct{ s *Store }

func (r *investmentRepo) Create(ctx context.Context, inv *investmentDomain.Investment) error {
	cp := *inv
	r.s.investments[inv.InvestmentID] = &cp
	return nil
}

func (r *investmentRepo) Save(ctx context.Context, inv *investmentDomain.Investment) error {
	cp := *inv
	r.s.investments[inv.InvestmentID] = &cp
	return nil
}

func (r *investmentRepo) GetByInvestmentID(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	inv, ok := r.s.investments[investmentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *investmentRepo) GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	return r.GetByInvestmentID(ctx, investmentID)
}

func (r *investmentRepo) GetByExternalTxnIDForUpdate(ctx context.Context, txnID string) (*investmentDomain.Investment, error) {
	for _, inv := range r.s.investments {
		if inv.ExternalTxnID != nil && *inv.ExternalTxnID == txnID {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *investmentRepo) GetOpenByInvestorAndProject(ctx context.Context, investorID, projectID string) (*investmentDomain.Investment, error) {
	for _, inv := range r.s.investments {
		if inv.InvestorID == investorID && inv.ProjectID == projectID && !inv.Status.Terminal() {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type accountRepo struct{ s *Store }

func (r *accountRepo) Credit(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	acc, ok := r.s.accounts[ownerID]
	if !ok {
		acc = &ledgerDomain.Account{OwnerID: ownerID, Balance: decimal.Zero}
		r.s.accounts[ownerID] = acc
	}
	acc.Balance = acc.Balance.Add(amount)
	return nil
}

func (r *accountRepo) GetByOwnerID(ctx context.Context, ownerID string) (*ledgerDomain.Account, error) {
	acc, ok := r.s.accounts[ownerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return acc, nil
}

type projectRepo struct{ s *Store }

func (r *projectRepo) GetByProjectID(ctx context.Context, projectID string) (*projectDomain.Project, error) {
	p, ok := r.s.projects[projectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}
