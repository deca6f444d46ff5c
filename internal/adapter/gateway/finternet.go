package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Parthsuii/fintech/internal/domain/escrow"
	"github.com/Parthsuii/fintech/internal/metrics"
)

// Finternet requests DvP payment intents from the Finternet gateway.
// Implements escrow.Gateway: every failure path degrades to a sandbox
// intent instead of failing the caller.
type Finternet struct {
	apiKey     string
	baseURL    string
	payBaseURL string // where sandbox payment pages are served
	client     *http.Client
}

func NewFinternet(apiKey, baseURL, payBaseURL string, timeout time.Duration) *Finternet {
	return &Finternet{
		apiKey:     apiKey,
		baseURL:    baseURL,
		payBaseURL: payBaseURL,
		client:     &http.Client{Timeout: timeout},
	}
}

type intentRequest struct {
	Amount                string            `json:"amount"`
	Currency              string            `json:"currency"`
	Type                  string            `json:"type"`
	SettlementMethod      string            `json:"settlementMethod"`
	SettlementDestination string            `json:"settlementDestination"`
	Description           string            `json:"description"`
	Metadata              map[string]string `json:"metadata"`
}

type intentResponse struct {
	Data struct {
		ID         string `json:"id"`
		PaymentURL string `json:"paymentUrl"`
	} `json:"data"`
}

func (f *Finternet) RequestEscrow(ctx context.Context, amount decimal.Decimal, referenceID string, metadata map[string]string) escrow.Intent {
	if f.apiKey == "" {
		slog.Warn("finternet: missing API key, degrading to sandbox", "reference_id", referenceID)
		return f.sandbox(referenceID)
	}

	body, _ := json.Marshal(intentRequest{
		Amount:                amount.StringFixed(2),
		Currency:              "USDC",
		Type:                  "DELIVERY_VS_PAYMENT",
		SettlementMethod:      "OFF_RAMP_MOCK",
		SettlementDestination: "bank_account_123",
		Description:           "Investment " + referenceID,
		Metadata:              metadata,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+"/payment-intents", bytes.NewReader(body))
	if err != nil {
		slog.Warn("finternet: build request failed, degrading to sandbox", "reference_id", referenceID, "err", err)
		return f.sandbox(referenceID)
	}
	req.Header.Set("X-API-Key", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Warn("finternet: request failed, degrading to sandbox", "reference_id", referenceID, "err", err)
		return f.sandbox(referenceID)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("finternet: non-success status, degrading to sandbox", "reference_id", referenceID, "status", resp.StatusCode)
		return f.sandbox(referenceID)
	}

	var out intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Data.ID == "" {
		slog.Warn("finternet: malformed response, degrading to sandbox", "reference_id", referenceID, "err", err)
		return f.sandbox(referenceID)
	}

	return escrow.Intent{
		IntentID:   out.Data.ID,
		PaymentURL: out.Data.PaymentURL,
		Mode:       escrow.ModeLive,
	}
}

func (f *Finternet) sandbox(referenceID string) escrow.Intent {
	metrics.GatewaySandboxFallbacks.Inc()
	intentID := escrow.SandboxIntentID(referenceID)
	return escrow.Intent{
		IntentID:   intentID,
		PaymentURL: f.payBaseURL + "/api/pay/" + intentID,
		Mode:       escrow.ModeSandbox,
	}
}
