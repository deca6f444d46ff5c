package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/Parthsuii/fintech/internal/domain/investment"
	"github.com/Parthsuii/fintech/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Investments: &InvestmentRepository{db: tx},
		Accounts:    &AccountRepository{db: tx},
		Projects:    &ProjectRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinInvestmentTx(ctx context.Context, investmentID string, fn func(r uow.Repos, inv *investment.Investment) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the investment row up-front to prevent races
		inv, err := r.Investments.GetByInvestmentIDForUpdate(ctx, investmentID)
		if err != nil {
			return err
		}
		return fn(r, inv)
	})
}
