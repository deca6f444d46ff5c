package mysql

import (
	"context"

	"gorm.io/gorm"

	investmentDomain "github.com/Parthsuii/fintech/internal/domain/investment"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository { return &InvestmentRepository{db: db} }

func (r *InvestmentRepository) Create(ctx context.Context, inv *investmentDomain.Investment) error {
	return translate(r.db.WithContext(ctx).Create(inv).Error)
}

func (r *InvestmentRepository) Save(ctx context.Context, inv *investmentDomain.Investment) error {
	return translate(r.db.WithContext(ctx).Save(inv).Error)
}

func (r *InvestmentRepository) GetByInvestmentID(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := r.db.WithContext(ctx).Where("investment_id = ?", investmentID).First(&out)
	return &out, translate(res.Error)
}

func (r *InvestmentRepository) GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := forUpdate(r.db.WithContext(ctx)).Where("investment_id = ?", investmentID).First(&out)
	return &out, translate(res.Error)
}

func (r *InvestmentRepository) GetByExternalTxnIDForUpdate(ctx context.Context, txnID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := forUpdate(r.db.WithContext(ctx)).Where("external_txn_id = ?", txnID).First(&out)
	return &out, translate(res.Error)
}

func (r *InvestmentRepository) GetOpenByInvestorAndProject(ctx context.Context, investorID, projectID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := r.db.WithContext(ctx).
		Where("investor_id = ? AND project_id = ? AND status NOT IN ?",
			investorID, projectID,
			[]investmentDomain.Status{investmentDomain.StatusCompleted, investmentDomain.StatusFailed}).
		Order("status_updated_at DESC, id DESC").
		First(&out)
	return &out, translate(res.Error)
}
