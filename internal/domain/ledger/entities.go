package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketOwnerID is the well-known account holding the platform's share of
// every settlement. It lives in the same table as creator wallets.
const BucketOwnerID = "platform_bucket"

type Account struct {
	ID        uint64          `gorm:"primaryKey;column:id" json:"-"`
	OwnerID   string          `gorm:"size:36;uniqueIndex:ux_accounts_owner_id" json:"owner_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(14,2)" json:"balance"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
