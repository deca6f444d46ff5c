package uow

import (
	"context"

	"github.com/Parthsuii/fintech/internal/domain/investment"
	"github.com/Parthsuii/fintech/internal/domain/ledger"
	"github.com/Parthsuii/fintech/internal/domain/project"
)

type Repos struct {
	Investments investment.Repository
	Accounts    ledger.Repository
	Projects    project.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the investment row first, then pass it in
	WithinInvestmentTx(ctx context.Context, investmentID string, fn func(r Repos, inv *investment.Investment) error) error
}
