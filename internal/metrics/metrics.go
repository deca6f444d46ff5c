// Package metrics holds the service's prometheus counters. Exposed on
// GET /metrics by the api server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewaySandboxFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gateway_sandbox_fallback_total",
		Help: "Escrow intents served by the sandbox because the gateway was unavailable or misconfigured.",
	})

	SettlementsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "investment_settlements_total",
		Help: "Investments settled (status completed, both credits applied).",
	})

	LedgerCredits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_credits_total",
		Help: "Account balance credits applied inside settlement transactions.",
	})
)
