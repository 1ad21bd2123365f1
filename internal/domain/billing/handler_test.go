package billing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinica/billing/internal/platform/auth"
)

func newTestServer(f *fixture) *echo.Echo {
	e := echo.New()
	api := e.Group("/api/v1", auth.DevAuthMiddleware())
	NewHandler(f.svc).RegisterRoutes(api)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateInvoiceEndpoint(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)

	body := fmt.Sprintf(`{
		"patient_id": %q,
		"discount_type": "senior",
		"lines": [{"service_item_id": %q, "quantity": 2}]
	}`, f.patientID, f.consultID)

	rec := doJSON(e, http.MethodPost, "/api/v1/invoices", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var detail InvoiceDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !detail.Invoice.NetAmount.Equal(dec("800.00")) {
		t.Errorf("expected net 800.00, got %s", detail.Invoice.NetAmount)
	}
	if !strings.HasPrefix(detail.Invoice.Number, "INV-") {
		t.Errorf("expected INV number, got %q", detail.Invoice.Number)
	}
}

func TestCreateInvoiceEndpointRejectsEmpty(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)

	body := fmt.Sprintf(`{"patient_id": %q, "discount_type": "none", "lines": []}`, f.patientID)
	rec := doJSON(e, http.MethodPost, "/api/v1/invoices", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPaymentEndpointFlow(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)
	inv := makePendingInvoice(t, f)

	rec := doJSON(e, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/payments",
		`{"method": "cash", "amount_tendered": "1000.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var rc Receipt
	if err := json.Unmarshal(rec.Body.Bytes(), &rc); err != nil {
		t.Fatalf("decode receipt: %v", err)
	}
	if !rc.ChangeAmount.Equal(dec("500.00")) {
		t.Errorf("expected change 500.00, got %s", rc.ChangeAmount)
	}

	// paying again conflicts
	rec = doJSON(e, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/payments",
		`{"method": "cash", "amount_tendered": "1000.00"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second payment, got %d", rec.Code)
	}

	// receipt lookup by number
	rec = doJSON(e, http.MethodGet, "/api/v1/receipts/"+rc.Number, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPaymentEndpointInsufficientTender(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)
	inv := makePendingInvoice(t, f)

	rec := doJSON(e, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/payments",
		`{"method": "cash", "amount_tendered": "100.00"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestPaymentEndpointUnknownInvoice(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)

	rec := doJSON(e, http.MethodPost, "/api/v1/invoices/"+uuid.NewString()+"/payments",
		`{"method": "cash", "amount_tendered": "100.00"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/v1/invoices/not-a-uuid/payments",
		`{"method": "cash", "amount_tendered": "100.00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestCancelEndpoint(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)
	inv := makePendingInvoice(t, f)

	rec := doJSON(e, http.MethodPost, "/api/v1/invoices/"+inv.ID.String()+"/cancel", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got Invoice
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode invoice: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Errorf("expected cancelled, got %s", got.Status)
	}
}

func TestListInvoicesEndpointValidatesFilters(t *testing.T) {
	f := newFixture()
	e := newTestServer(f)
	makePendingInvoice(t, f)

	rec := doJSON(e, http.MethodGet, "/api/v1/invoices?status=pending", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/invoices?status=bogus", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad status, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/v1/invoices?from=2025-06-01&to=2025-01-01", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted range, got %d", rec.Code)
	}
}
