package ledger

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	// Credit adds amount to the owner's balance, creating the account on
	// first credit. Must run inside the caller's transaction so the credit
	// commits or rolls back together with the status write.
	Credit(ctx context.Context, ownerID string, amount decimal.Decimal) error

	GetByOwnerID(ctx context.Context, ownerID string) (*Account, error)
}
