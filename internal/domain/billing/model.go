package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/clinica/billing/pkg/money"
)

// DiscountType classifies the statutory or contractual discount applied to
// an invoice.
type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountSenior     DiscountType = "senior"
	DiscountPWD        DiscountType = "pwd"
	DiscountPhilHealth DiscountType = "philhealth"
)

func (d DiscountType) Valid() bool {
	switch d {
	case DiscountNone, DiscountSenior, DiscountPWD, DiscountPhilHealth:
		return true
	}
	return false
}

// InvoiceStatus is the invoice lifecycle state. Transitions are
// pending -> paid and pending -> cancelled; both targets are terminal.
type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "pending"
	StatusPaid      InvoiceStatus = "paid"
	StatusCancelled InvoiceStatus = "cancelled"
)

// PaymentMethod identifies how an invoice was settled.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodCard         PaymentMethod = "card"
	MethodCheck        PaymentMethod = "check"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodCheck, MethodBankTransfer:
		return true
	}
	return false
}

type Invoice struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Seq            int64           `db:"seq" json:"-"`
	Number         string          `db:"number" json:"number"`
	PatientID      uuid.UUID       `db:"patient_id" json:"patient_id"`
	Status         InvoiceStatus   `db:"status" json:"status"`
	DiscountType   DiscountType    `db:"discount_type" json:"discount_type"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	NetAmount      decimal.Decimal `db:"net_amount" json:"net_amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	CreatedBy      string          `db:"created_by" json:"created_by"`
	CreatedByName  string          `db:"created_by_name" json:"created_by_name"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
	PaidAt         *time.Time      `db:"paid_at" json:"paid_at,omitempty"`
	CancelledAt    *time.Time      `db:"cancelled_at" json:"cancelled_at,omitempty"`
}

// InvoiceLine snapshots a catalog item at billing time: code, description and
// unit price are copied so later catalog edits never change the invoice.
type InvoiceLine struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	InvoiceID     uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	ServiceItemID uuid.UUID       `db:"service_item_id" json:"service_item_id"`
	Code          string          `db:"code" json:"code"`
	Description   string          `db:"description" json:"description"`
	Quantity      int             `db:"quantity" json:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	LineTotal     decimal.Decimal `db:"line_total" json:"line_total"`
}

type Payment struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Seq            int64           `db:"seq" json:"-"`
	InvoiceID      uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	Method         PaymentMethod   `db:"method" json:"method"`
	AmountDue      decimal.Decimal `db:"amount_due" json:"amount_due"`
	AmountTendered decimal.Decimal `db:"amount_tendered" json:"amount_tendered"`
	ChangeAmount   decimal.Decimal `db:"change_amount" json:"change_amount"`
	CashierID      string          `db:"cashier_id" json:"cashier_id"`
	CashierName    string          `db:"cashier_name" json:"cashier_name"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Receipt is the denormalized official receipt snapshot written at payment
// time. It repeats the amounts and names so the printed record survives any
// later edits to patients or the catalog.
type Receipt struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	Seq            int64           `db:"seq" json:"-"`
	Number         string          `db:"number" json:"number"`
	PaymentID      uuid.UUID       `db:"payment_id" json:"payment_id"`
	InvoiceID      uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	InvoiceNumber  string          `db:"invoice_number" json:"invoice_number"`
	PatientID      uuid.UUID       `db:"patient_id" json:"patient_id"`
	PatientName    string          `db:"patient_name" json:"patient_name"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	NetAmount      decimal.Decimal `db:"net_amount" json:"net_amount"`
	AmountTendered decimal.Decimal `db:"amount_tendered" json:"amount_tendered"`
	ChangeAmount   decimal.Decimal `db:"change_amount" json:"change_amount"`
	Method         PaymentMethod   `db:"method" json:"method"`
	CashierName    string          `db:"cashier_name" json:"cashier_name"`
	IssuedAt       time.Time       `db:"issued_at" json:"issued_at"`
}

// LineInput is one requested invoice line: which catalog item, how many.
type LineInput struct {
	ServiceItemID uuid.UUID `json:"service_item_id"`
	Quantity      int       `json:"quantity"`
}

// CreateInvoiceInput carries everything needed to build an invoice.
// PhilHealthAmount is the coverage deduction and only applies when
// DiscountType is philhealth.
type CreateInvoiceInput struct {
	PatientID        uuid.UUID       `json:"patient_id"`
	DiscountType     DiscountType    `json:"discount_type"`
	PhilHealthAmount decimal.Decimal `json:"philhealth_amount"`
	Lines            []LineInput     `json:"lines"`
}

// InvoiceDetail bundles an invoice with its lines and, when settled, the
// payment and receipt.
type InvoiceDetail struct {
	Invoice *Invoice       `json:"invoice"`
	Lines   []*InvoiceLine `json:"lines"`
	Payment *Payment       `json:"payment,omitempty"`
	Receipt *Receipt       `json:"receipt,omitempty"`
}

// statutoryDiscountRate is the percentage share for senior citizen and PWD
// discounts.
const statutoryDiscountRate = 20

// ComputeDiscount returns the discount amount for the gross total. Senior
// and PWD take the statutory 20%; philhealth takes the supplied coverage
// amount capped at the total so the net can never go negative.
func ComputeDiscount(total decimal.Decimal, dt DiscountType, philhealthAmount decimal.Decimal) (decimal.Decimal, error) {
	switch dt {
	case DiscountNone:
		return money.Zero(), nil
	case DiscountSenior, DiscountPWD:
		return money.Percent(total, statutoryDiscountRate), nil
	case DiscountPhilHealth:
		if money.IsNegative(philhealthAmount) {
			return money.Zero(), ErrInvalidDiscount
		}
		return money.Min(money.Round2(philhealthAmount), total), nil
	default:
		return money.Zero(), ErrInvalidDiscount
	}
}
