package gatewaymock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Parthsuii/fintech/internal/domain/escrow"
)

var _ escrow.Gateway = (*Gateway)(nil)

// Gateway is a function-backed mock that satisfies escrow.Gateway.
// With no function set it behaves like the sandbox fallback.
type Gateway struct {
	RequestEscrowFn func(ctx context.Context, amount decimal.Decimal, referenceID string, metadata map[string]string) escrow.Intent
}

func (m *Gateway) RequestEscrow(ctx context.Context, amount decimal.Decimal, referenceID string, metadata map[string]string) escrow.Intent {
	if m.RequestEscrowFn != nil {
		return m.RequestEscrowFn(ctx, amount, referenceID, metadata)
	}
	intentID := escrow.SandboxIntentID(referenceID)
	return escrow.Intent{
		IntentID:   intentID,
		PaymentURL: "http://localhost:8080/api/pay/" + intentID,
		Mode:       escrow.ModeSandbox,
	}
}
