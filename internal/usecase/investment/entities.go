package investment

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateInvestmentInput struct {
	InvestorID string
	ProjectID  string
	Amount     decimal.Decimal
}

type InvestmentDTO struct {
	InvestmentID  string    `json:"investment_id"`
	InvestorID    string    `json:"investor_id"`
	ProjectID     string    `json:"project_id"`
	TotalAmount   string    `json:"total_amount"`
	CreatorAmount string    `json:"creator_amount"`
	BucketAmount  string    `json:"bucket_amount"`
	Status        string    `json:"status"`
	ExternalTxnID string    `json:"external_txn_id,omitempty"`
	PaymentURL    string    `json:"payment_url,omitempty"`
	Mode          string    `json:"mode,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
