package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	investmentDomain "github.com/Parthsuii/fintech/internal/domain/investment"
	projectDomain "github.com/Parthsuii/fintech/internal/domain/project"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// writeDomainErr maps domain errors to HTTP responses. Webhook callers rely
// on the distinction between "not allowed" (409), "not found" (404) and
// retryable (503).
func writeDomainErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, investmentDomain.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, investmentDomain.ErrNotFound), errors.Is(err, projectDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, investmentDomain.ErrDuplicatePendingInvestment),
		errors.Is(err, investmentDomain.ErrInvalidStateTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, investmentDomain.ErrLockTimeout):
		c.Response().Header().Set("Retry-After", "1")
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
