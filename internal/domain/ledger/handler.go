package ledger

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinica/billing/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	reports := api.Group("/reports", auth.RequireRole("admin", "billing"))
	reports.GET("/billing", h.BillingSummary)
	reports.GET("/aging", h.Aging)
}

func (h *Handler) BillingSummary(c echo.Context) error {
	var f ReportFilter
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		}
		f.From = t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
		}
		f.To = t
	}
	f.CashierID = c.QueryParam("cashier_id")
	if v := c.QueryParam("status"); v != "" {
		switch v {
		case "pending", "paid", "cancelled":
			f.Status = v
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
	}
	if v := c.QueryParam("method"); v != "" {
		switch v {
		case "cash", "card", "check", "bank_transfer":
			f.Method = v
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "invalid method filter")
		}
	}

	report, err := h.svc.BillingSummary(c.Request().Context(), f)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build billing report")
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) Aging(c echo.Context) error {
	var asOf time.Time
	if v := c.QueryParam("as_of"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid as_of date, expected YYYY-MM-DD")
		}
		asOf = t
	}
	report, err := h.svc.Aging(c.Request().Context(), asOf)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build aging report")
	}
	return c.JSON(http.StatusOK, report)
}
