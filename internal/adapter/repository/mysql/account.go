package mysql

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ledgerDomain "github.com/Parthsuii/fintech/internal/domain/ledger"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

// Credit locks the account row, creating it lazily on first credit, and adds
// amount to the balance. Atomicity with the investment status write comes
// from running inside the caller's transaction.
func (r *AccountRepository) Credit(ctx context.Context, ownerID string, amount decimal.Decimal) error {
	var acc ledgerDomain.Account
	err := forUpdate(r.db.WithContext(ctx)).Where("owner_id = ?", ownerID).First(&acc).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		acc = ledgerDomain.Account{OwnerID: ownerID, Balance: decimal.Zero}
		if err := r.db.WithContext(ctx).Create(&acc).Error; err != nil {
			return translate(err)
		}
	case err != nil:
		return translate(err)
	}

	acc.Balance = acc.Balance.Add(amount)
	return translate(r.db.WithContext(ctx).Save(&acc).Error)
}

func (r *AccountRepository) GetByOwnerID(ctx context.Context, ownerID string) (*ledgerDomain.Account, error) {
	var out ledgerDomain.Account
	res := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&out)
	return &out, translate(res.Error)
}
