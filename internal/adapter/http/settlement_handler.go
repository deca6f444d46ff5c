package http

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	settlementUC "github.com/Parthsuii/fintech/internal/usecase/settlement"
)

type SettlementHandler struct{ uc *settlementUC.Usecase }

func NewSettlementHandler(uc *settlementUC.Usecase) *SettlementHandler {
	return &SettlementHandler{uc: uc}
}

// Confirm simulates the bank/card confirmation: pending_payment → funded.
func (h *SettlementHandler) Confirm(c echo.Context) error {
	dto, err := h.uc.Confirm(c.Request().Context(), c.Param("intent_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// AcceptDelivery records the delivery proof: funded → released.
func (h *SettlementHandler) AcceptDelivery(c echo.Context) error {
	dto, err := h.uc.AcceptDelivery(c.Request().Context(), c.Param("investment_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// Callback is the gateway's settlement notification: released → completed
// plus the ledger credits. Safe to redeliver.
func (h *SettlementHandler) Callback(c echo.Context) error {
	dto, err := h.uc.Settle(c.Request().Context(), c.Param("txn_id"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// PayPage renders the sandbox payment form for locally-issued intents.
func (h *SettlementHandler) PayPage(c echo.Context) error {
	intentID := template.HTMLEscapeString(c.Param("intent_id"))
	page := fmt.Sprintf(`<h2>DvP Escrow Payment</h2>
<p>Intent: %s</p>
<form method="post" action="/api/confirm/%s">
	<button type="submit">Confirm Payment</button>
</form>`, intentID, intentID)
	return c.HTML(http.StatusOK, page)
}
