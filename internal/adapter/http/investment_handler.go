package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	investmentUC "github.com/Parthsuii/fintech/internal/usecase/investment"
)

type InvestmentHandler struct{ uc *investmentUC.Usecase }

func NewInvestmentHandler(uc *investmentUC.Usecase) *InvestmentHandler {
	return &InvestmentHandler{uc: uc}
}

type createInvestmentReq struct {
	ProjectID string `json:"project_id" validate:"required,hex32"`
	Amount    string `json:"amount"     validate:"required,money"`
}

// CreateInvestment opens a DvP escrow. The investor identity comes from the
// X-Investor-Id header; authentication itself is owned by the edge proxy.
func (h *InvestmentHandler) CreateInvestment(c echo.Context) error {
	investorID := c.Request().Header.Get("X-Investor-Id")
	if !reHex32.MatchString(investorID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid X-Investor-Id"})
	}

	var req createInvestmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid amount"})
	}

	dto, err := h.uc.Create(c.Request().Context(), investmentUC.CreateInvestmentInput{
		InvestorID: investorID,
		ProjectID:  req.ProjectID,
		Amount:     amount,
	})
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InvestmentHandler) GetInvestment(c echo.Context) error {
	investmentID := c.Param("investment_id")
	dto, err := h.uc.Get(c.Request().Context(), investmentID)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
