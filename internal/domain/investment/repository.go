package investment

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	Save(ctx context.Context, inv *Investment) error
	GetByInvestmentID(ctx context.Context, investmentID string) (*Investment, error)

	// ForUpdate variants take an exclusive row lock; only valid inside a tx.
	GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*Investment, error)
	GetByExternalTxnIDForUpdate(ctx context.Context, txnID string) (*Investment, error)

	// GetOpenByInvestorAndProject returns the investor's non-terminal
	// investment for the project, if any (duplicate-pending guard).
	GetOpenByInvestorAndProject(ctx context.Context, investorID, projectID string) (*Investment, error)
}
