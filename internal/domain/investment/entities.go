package investment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount              = errors.New("invalid amount")
	ErrDuplicatePendingInvestment = errors.New("pending investment already exists")
	ErrInvalidStateTransition     = errors.New("invalid state transition")
	ErrNotFound                   = errors.New("investment not found")
	// ErrLockTimeout surfaces a lock-wait timeout from the store; callers may retry.
	ErrLockTimeout = errors.New("row lock timeout")
)

type Status string

const (
	StatusInitiated      Status = "initiated"
	StatusPendingPayment Status = "pending_payment"
	StatusFunded         Status = "funded"
	StatusReleased       Status = "released"
	StatusCompleted      Status = "completed"
	StatusFailed         Status = "failed"
)

// transitions is the closed transition table. Anything not listed here is
// rejected; statuses never regress.
var transitions = map[Status][]Status{
	StatusInitiated:      {StatusPendingPayment, StatusFailed},
	StatusPendingPayment: {StatusFunded, StatusFailed},
	StatusFunded:         {StatusReleased, StatusFailed},
	StatusReleased:       {StatusCompleted, StatusFailed},
	StatusCompleted:      {},
	StatusFailed:         {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusFailed }

type Investment struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID    string          `gorm:"size:32;uniqueIndex:ux_investments_investment_id" json:"investment_id"`
	InvestorID      string          `gorm:"size:32;index:idx_investments_investor_project" json:"investor_id"`
	ProjectID       string          `gorm:"size:32;index:idx_investments_investor_project" json:"project_id"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_amount"`
	CreatorAmount   decimal.Decimal `gorm:"type:decimal(12,2)" json:"creator_amount"`
	BucketAmount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"bucket_amount"`
	Status          Status          `gorm:"type:enum('initiated','pending_payment','funded','released','completed','failed');default:'initiated'" json:"status"`
	ExternalTxnID   *string         `gorm:"size:200;index:idx_investments_external_txn" json:"external_txn_id"`
	StatusUpdatedAt time.Time       `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Investment) TableName() string { return "investments" }

// Advance applies a guarded forward transition. Callers must hold the row lock.
func (i *Investment) Advance(next Status, now time.Time) error {
	if !i.Status.CanTransitionTo(next) {
		return ErrInvalidStateTransition
	}
	i.Status = next
	i.StatusUpdatedAt = now
	return nil
}

// AssignIntent records the external escrow reference exactly once and moves
// the investment to pending_payment.
func (i *Investment) AssignIntent(txnID string, now time.Time) error {
	if i.ExternalTxnID != nil {
		return ErrInvalidStateTransition
	}
	if err := i.Advance(StatusPendingPayment, now); err != nil {
		return err
	}
	i.ExternalTxnID = &txnID
	return nil
}
