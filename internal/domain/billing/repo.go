package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceFilter narrows ListInvoices results. Zero values mean "any".
type InvoiceFilter struct {
	PatientID *uuid.UUID
	Status    InvoiceStatus
	From      *time.Time
	To        *time.Time
}

// InvoiceRepository persists invoices and their lines.
//
// Create fills Seq, CreatedAt and UpdatedAt from the insert. GetByIDForUpdate
// locks the row for the duration of the enclosing transaction. MarkPaid and
// MarkCancelled are conditional on the row still being pending and report
// whether the transition happened.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *Invoice, lines []*InvoiceLine) error
	SetNumber(ctx context.Context, id uuid.UUID, number string) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	GetLines(ctx context.Context, invoiceID uuid.UUID) ([]*InvoiceLine, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal, paidAt time.Time) (bool, error)
	MarkCancelled(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (bool, error)
	List(ctx context.Context, f InvoiceFilter, limit, offset int) ([]*Invoice, int, error)
}

// PaymentRepository persists payments and their receipt snapshots.
// CreatePayment and CreateReceipt fill Seq and the insert timestamp; the
// receipt number is formatted from the returned Seq and written back with
// SetReceiptNumber in the same transaction.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p *Payment) error
	CreateReceipt(ctx context.Context, r *Receipt) error
	SetReceiptNumber(ctx context.Context, id uuid.UUID, number string) error
	GetPaymentByInvoice(ctx context.Context, invoiceID uuid.UUID) (*Payment, error)
	GetReceiptByInvoice(ctx context.Context, invoiceID uuid.UUID) (*Receipt, error)
	GetReceiptByNumber(ctx context.Context, number string) (*Receipt, error)
}
