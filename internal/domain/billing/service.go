package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/clinica/billing/internal/domain/audit"
	"github.com/clinica/billing/internal/domain/catalog"
	"github.com/clinica/billing/internal/platform/auth"
	"github.com/clinica/billing/internal/platform/db"
	"github.com/clinica/billing/pkg/money"
)

// maxLineQuantity bounds a single invoice line. Anything above this is a
// data-entry mistake, not a real order.
const maxLineQuantity = 1000

// CatalogReader is the slice of the catalog service the invoice builder
// needs.
type CatalogReader interface {
	GetItem(ctx context.Context, id uuid.UUID) (*catalog.ServiceItem, error)
}

// PatientDirectory is the slice of the patient service the billing flows
// need.
type PatientDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	DisplayName(ctx context.Context, id uuid.UUID) (string, error)
}

// AuditRecorder appends a domain audit entry. Inside a mutation it runs on
// the same transaction, so the audit row commits or rolls back with the
// change it describes.
type AuditRecorder interface {
	Record(ctx context.Context, e *audit.Entry) error
}

type Service struct {
	invoices InvoiceRepository
	payments PaymentRepository
	items    CatalogReader
	patients PatientDirectory
	auditlog AuditRecorder
	txr      db.TxRunner
	now      func() time.Time
}

func NewService(invoices InvoiceRepository, payments PaymentRepository, items CatalogReader,
	patients PatientDirectory, auditlog AuditRecorder, txr db.TxRunner) *Service {
	return &Service{
		invoices: invoices,
		payments: payments,
		items:    items,
		patients: patients,
		auditlog: auditlog,
		txr:      txr,
		now:      time.Now,
	}
}

// CreateInvoice validates the input, snapshots catalog prices into lines,
// computes totals and the discount, and persists the invoice together with
// its number and audit entry in one transaction.
func (s *Service) CreateInvoice(ctx context.Context, in CreateInvoiceInput, actor auth.Actor) (*InvoiceDetail, error) {
	if len(in.Lines) == 0 {
		return nil, ErrEmptyInvoice
	}
	if !in.DiscountType.Valid() {
		return nil, ErrInvalidDiscount
	}

	ok, err := s.patients.Exists(ctx, in.PatientID)
	if err != nil {
		return nil, persistence("lookup patient", err)
	}
	if !ok {
		return nil, ErrPatientNotFound
	}

	lines := make([]*InvoiceLine, 0, len(in.Lines))
	total := money.Zero()
	for _, li := range in.Lines {
		if li.Quantity <= 0 || li.Quantity > maxLineQuantity {
			return nil, ErrInvalidQuantity
		}
		item, err := s.items.GetItem(ctx, li.ServiceItemID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrInvalidLineItem
			}
			return nil, persistence("lookup catalog item", err)
		}
		if !item.Active {
			return nil, ErrInvalidLineItem
		}
		lineTotal := money.Mul(item.UnitPrice, li.Quantity)
		lines = append(lines, &InvoiceLine{
			ServiceItemID: item.ID,
			Code:          item.Code,
			Description:   item.Name,
			Quantity:      li.Quantity,
			UnitPrice:     item.UnitPrice,
			LineTotal:     lineTotal,
		})
		total = total.Add(lineTotal)
	}
	total = money.Round2(total)

	discount, err := ComputeDiscount(total, in.DiscountType, in.PhilHealthAmount)
	if err != nil {
		return nil, err
	}
	net := money.Round2(total.Sub(discount))

	inv := &Invoice{
		PatientID:      in.PatientID,
		Status:         StatusPending,
		DiscountType:   in.DiscountType,
		TotalAmount:    total,
		DiscountAmount: discount,
		NetAmount:      net,
		PaidAmount:     money.Zero(),
		CreatedBy:      actor.ID,
		CreatedByName:  actor.Name,
	}

	err = s.txr.InTx(ctx, func(ctx context.Context) error {
		if err := s.invoices.Create(ctx, inv, lines); err != nil {
			return persistence("create invoice", err)
		}
		inv.Number = InvoiceNumber(inv.Seq, inv.CreatedAt)
		if err := s.invoices.SetNumber(ctx, inv.ID, inv.Number); err != nil {
			return persistence("assign invoice number", err)
		}
		return s.recordAudit(ctx, audit.ActionInvoiceCreated, inv.ID, actor, map[string]interface{}{
			"invoice_number": inv.Number,
			"net_amount":     inv.NetAmount.StringFixed(2),
			"discount_type":  string(inv.DiscountType),
			"line_count":     len(lines),
		})
	})
	if err != nil {
		return nil, err
	}
	return &InvoiceDetail{Invoice: inv, Lines: lines}, nil
}

// ProcessPayment settles a pending invoice in full. The invoice row is
// locked for the transaction, the status transition is conditional on it
// still being pending, and the payment, receipt and audit rows commit
// atomically with it. A second concurrent attempt sees a non-pending row and
// fails with ErrInvoiceNotPayable.
func (s *Service) ProcessPayment(ctx context.Context, invoiceID uuid.UUID, method PaymentMethod,
	amountTendered decimal.Decimal, actor auth.Actor) (*Receipt, error) {
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if money.IsNegative(amountTendered) {
		return nil, ErrInsufficientPayment
	}
	amountTendered = money.Round2(amountTendered)

	var receipt *Receipt
	err := s.txr.InTx(ctx, func(ctx context.Context) error {
		inv, err := s.invoices.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInvoiceNotFound
			}
			return persistence("lock invoice", err)
		}
		if inv.Status != StatusPending {
			return ErrInvoiceNotPayable
		}
		if amountTendered.LessThan(inv.NetAmount) {
			return ErrInsufficientPayment
		}

		now := s.now().UTC()
		ok, err := s.invoices.MarkPaid(ctx, inv.ID, inv.NetAmount, now)
		if err != nil {
			return persistence("mark invoice paid", err)
		}
		if !ok {
			return ErrInvoiceNotPayable
		}

		patientName, err := s.patients.DisplayName(ctx, inv.PatientID)
		if err != nil {
			return persistence("lookup patient name", err)
		}

		p := &Payment{
			InvoiceID:      inv.ID,
			Method:         method,
			AmountDue:      inv.NetAmount,
			AmountTendered: amountTendered,
			ChangeAmount:   money.Round2(amountTendered.Sub(inv.NetAmount)),
			CashierID:      actor.ID,
			CashierName:    actor.Name,
		}
		if err := s.payments.CreatePayment(ctx, p); err != nil {
			return persistence("create payment", err)
		}

		rc := &Receipt{
			PaymentID:      p.ID,
			InvoiceID:      inv.ID,
			InvoiceNumber:  inv.Number,
			PatientID:      inv.PatientID,
			PatientName:    patientName,
			TotalAmount:    inv.TotalAmount,
			DiscountAmount: inv.DiscountAmount,
			NetAmount:      inv.NetAmount,
			AmountTendered: p.AmountTendered,
			ChangeAmount:   p.ChangeAmount,
			Method:         method,
			CashierName:    actor.Name,
		}
		if err := s.payments.CreateReceipt(ctx, rc); err != nil {
			return persistence("create receipt", err)
		}
		rc.Number = ReceiptNumber(rc.Seq, rc.IssuedAt)
		if err := s.payments.SetReceiptNumber(ctx, rc.ID, rc.Number); err != nil {
			return persistence("assign receipt number", err)
		}
		receipt = rc

		return s.recordAudit(ctx, audit.ActionPaymentProcessed, inv.ID, actor, map[string]interface{}{
			"receipt_number":  rc.Number,
			"method":          string(method),
			"amount_due":      p.AmountDue.StringFixed(2),
			"amount_tendered": p.AmountTendered.StringFixed(2),
			"change_amount":   p.ChangeAmount.StringFixed(2),
		})
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// CancelInvoice voids a pending invoice. Paid and already-cancelled
// invoices are terminal and cannot be cancelled again.
func (s *Service) CancelInvoice(ctx context.Context, invoiceID uuid.UUID, actor auth.Actor) (*Invoice, error) {
	var inv *Invoice
	err := s.txr.InTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.invoices.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrInvoiceNotFound
			}
			return persistence("lock invoice", err)
		}
		if inv.Status != StatusPending {
			return ErrInvoiceNotPayable
		}

		now := s.now().UTC()
		ok, err := s.invoices.MarkCancelled(ctx, inv.ID, now)
		if err != nil {
			return persistence("mark invoice cancelled", err)
		}
		if !ok {
			return ErrInvoiceNotPayable
		}
		inv.Status = StatusCancelled
		inv.CancelledAt = &now

		return s.recordAudit(ctx, audit.ActionInvoiceCancelled, inv.ID, actor, map[string]interface{}{
			"invoice_number": inv.Number,
			"net_amount":     inv.NetAmount.StringFixed(2),
		})
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// GetInvoiceDetail loads an invoice with its lines and, when settled, the
// payment and receipt.
func (s *Service) GetInvoiceDetail(ctx context.Context, invoiceID uuid.UUID) (*InvoiceDetail, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, persistence("load invoice", err)
	}
	lines, err := s.invoices.GetLines(ctx, invoiceID)
	if err != nil {
		return nil, persistence("load invoice lines", err)
	}
	detail := &InvoiceDetail{Invoice: inv, Lines: lines}

	if inv.Status == StatusPaid {
		p, err := s.payments.GetPaymentByInvoice(ctx, invoiceID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, persistence("load payment", err)
		}
		if err == nil {
			detail.Payment = p
		}
		rc, err := s.payments.GetReceiptByInvoice(ctx, invoiceID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, persistence("load receipt", err)
		}
		if err == nil {
			detail.Receipt = rc
		}
	}
	return detail, nil
}

func (s *Service) ListInvoices(ctx context.Context, f InvoiceFilter, limit, offset int) ([]*Invoice, int, error) {
	invoices, total, err := s.invoices.List(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, persistence("list invoices", err)
	}
	return invoices, total, nil
}

func (s *Service) GetReceiptByNumber(ctx context.Context, number string) (*Receipt, error) {
	rc, err := s.payments.GetReceiptByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReceiptNotFound
		}
		return nil, persistence("load receipt", err)
	}
	return rc, nil
}

func (s *Service) recordAudit(ctx context.Context, action string, invoiceID uuid.UUID,
	actor auth.Actor, detail map[string]interface{}) error {
	err := s.auditlog.Record(ctx, &audit.Entry{
		Action:    action,
		InvoiceID: &invoiceID,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Detail:    detail,
	})
	if err != nil {
		return persistence("record audit entry", err)
	}
	return nil
}
