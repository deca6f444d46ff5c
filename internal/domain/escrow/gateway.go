package escrow

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeLive    Mode = "live"
	ModeSandbox Mode = "sandbox"
)

// SandboxPrefix marks locally-issued intent ids so they are distinguishable
// from gateway-issued ones. The remainder of the id is the investment id,
// which settlement uses as a fallback lookup key.
const SandboxPrefix = "local_"

// Intent correlates an investment with funds held by the payment processor,
// or with the local sandbox when the processor is unreachable.
type Intent struct {
	IntentID   string
	PaymentURL string
	Mode       Mode
}

// Gateway requests escrow intents from the external payment processor.
// RequestEscrow never fails: any gateway trouble (missing credential,
// non-success status, timeout, transport error) degrades to a sandbox
// intent so the creation flow always receives a usable result.
type Gateway interface {
	RequestEscrow(ctx context.Context, amount decimal.Decimal, referenceID string, metadata map[string]string) Intent
}

func SandboxIntentID(referenceID string) string { return SandboxPrefix + referenceID }

// InvestmentIDFromIntent extracts the investment id embedded in a sandbox
// intent id. ok is false for live ids.
func InvestmentIDFromIntent(intentID string) (string, bool) {
	if !strings.HasPrefix(intentID, SandboxPrefix) {
		return "", false
	}
	return strings.TrimPrefix(intentID, SandboxPrefix), true
}
