package billing

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/clinica/billing/internal/platform/auth"
	"github.com/clinica/billing/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	cashierGroup := api.Group("", auth.RequireRole("admin", "billing", "cashier"))
	cashierGroup.POST("/invoices", h.CreateInvoice)
	cashierGroup.GET("/invoices", h.ListInvoices)
	cashierGroup.GET("/invoices/:id", h.GetInvoice)
	cashierGroup.POST("/invoices/:id/payments", h.ProcessPayment)
	cashierGroup.GET("/receipts/:number", h.GetReceipt)

	billingGroup := api.Group("", auth.RequireRole("admin", "billing"))
	billingGroup.POST("/invoices/:id/cancel", h.CancelInvoice)
}

type paymentRequest struct {
	Method         PaymentMethod   `json:"method"`
	AmountTendered decimal.Decimal `json:"amount_tendered"`
}

func (h *Handler) CreateInvoice(c echo.Context) error {
	var in CreateInvoiceInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	detail, err := h.svc.CreateInvoice(c.Request().Context(), in, auth.ActorFromContext(c.Request().Context()))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, detail)
}

func (h *Handler) GetInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	detail, err := h.svc.GetInvoiceDetail(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) ListInvoices(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := InvoiceFilter{Status: InvoiceStatus(c.QueryParam("status"))}
	if f.Status != "" {
		switch f.Status {
		case StatusPending, StatusPaid, StatusCancelled:
		default:
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
	}
	if p := c.QueryParam("patient_id"); p != "" {
		pid, err := uuid.Parse(p)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		f.PatientID = &pid
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
		}
		// inclusive end date
		end := t.AddDate(0, 0, 1)
		f.To = &end
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return echo.NewHTTPError(http.StatusBadRequest, "date range is inverted")
	}

	invoices, total, err := h.svc.ListInvoices(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(invoices, total, pg.Limit, pg.Offset))
}

func (h *Handler) ProcessPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.svc.ProcessPayment(c.Request().Context(), id, req.Method, req.AmountTendered,
		auth.ActorFromContext(c.Request().Context()))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, receipt)
}

func (h *Handler) CancelInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	inv, err := h.svc.CancelInvoice(c.Request().Context(), id, auth.ActorFromContext(c.Request().Context()))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) GetReceipt(c echo.Context) error {
	receipt, err := h.svc.GetReceiptByNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, receipt)
}

// httpError maps service errors to HTTP statuses: validation 400, missing
// resources 404, state conflicts 409, insufficient tender 422, and wrapped
// persistence failures 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrInvoiceNotFound),
		errors.Is(err, ErrReceiptNotFound),
		errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyInvoice),
		errors.Is(err, ErrInvalidLineItem),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidDiscount),
		errors.Is(err, ErrInvalidPaymentMethod):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInsufficientPayment):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrInvoiceNotPayable):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "temporary database error, please retry")
	}
}
