package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/clinica/billing/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type invoiceRepoPG struct{ pool *pgxpool.Pool }

func NewInvoiceRepoPG(pool *pgxpool.Pool) InvoiceRepository {
	return &invoiceRepoPG{pool: pool}
}

func (r *invoiceRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const invoiceCols = `id, seq, COALESCE(number, ''), patient_id, status, discount_type,
	total_amount, discount_amount, net_amount, paid_amount,
	created_by, created_by_name, created_at, updated_at, paid_at, cancelled_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.Seq, &inv.Number, &inv.PatientID, &inv.Status, &inv.DiscountType,
		&inv.TotalAmount, &inv.DiscountAmount, &inv.NetAmount, &inv.PaidAmount,
		&inv.CreatedBy, &inv.CreatedByName, &inv.CreatedAt, &inv.UpdatedAt, &inv.PaidAt, &inv.CancelledAt)
	return &inv, err
}

func (r *invoiceRepoPG) Create(ctx context.Context, inv *Invoice, lines []*InvoiceLine) error {
	c := r.conn(ctx)
	inv.ID = uuid.New()
	err := c.QueryRow(ctx, `
		INSERT INTO invoices (id, patient_id, status, discount_type,
			total_amount, discount_amount, net_amount, paid_amount,
			created_by, created_by_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING seq, created_at, updated_at`,
		inv.ID, inv.PatientID, inv.Status, inv.DiscountType,
		inv.TotalAmount, inv.DiscountAmount, inv.NetAmount, inv.PaidAmount,
		inv.CreatedBy, inv.CreatedByName).
		Scan(&inv.Seq, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return err
	}
	for _, ln := range lines {
		ln.ID = uuid.New()
		ln.InvoiceID = inv.ID
		_, err = c.Exec(ctx, `
			INSERT INTO invoice_lines (id, invoice_id, service_item_id, code, description,
				quantity, unit_price, line_total)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
			ln.ID, ln.InvoiceID, ln.ServiceItemID, ln.Code, ln.Description,
			ln.Quantity, ln.UnitPrice, ln.LineTotal)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *invoiceRepoPG) SetNumber(ctx context.Context, id uuid.UUID, number string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE invoices SET number=$2, updated_at=NOW() WHERE id = $1`, id, number)
	return err
}

func (r *invoiceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.conn(ctx).QueryRow(ctx,
		`SELECT `+invoiceCols+` FROM invoices WHERE id = $1`, id))
}

func (r *invoiceRepoPG) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.conn(ctx).QueryRow(ctx,
		`SELECT `+invoiceCols+` FROM invoices WHERE id = $1 FOR UPDATE`, id))
}

func (r *invoiceRepoPG) GetByNumber(ctx context.Context, number string) (*Invoice, error) {
	return scanInvoice(r.conn(ctx).QueryRow(ctx,
		`SELECT `+invoiceCols+` FROM invoices WHERE number = $1`, number))
}

func (r *invoiceRepoPG) GetLines(ctx context.Context, invoiceID uuid.UUID) ([]*InvoiceLine, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, invoice_id, service_item_id, code, description, quantity, unit_price, line_total
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY code`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []*InvoiceLine
	for rows.Next() {
		var ln InvoiceLine
		if err := rows.Scan(&ln.ID, &ln.InvoiceID, &ln.ServiceItemID, &ln.Code, &ln.Description,
			&ln.Quantity, &ln.UnitPrice, &ln.LineTotal); err != nil {
			return nil, err
		}
		lines = append(lines, &ln)
	}
	return lines, rows.Err()
}

// MarkPaid flips a pending invoice to paid. The status predicate makes the
// update a no-op if another transaction settled or cancelled the invoice
// first; the caller checks the returned bool.
func (r *invoiceRepoPG) MarkPaid(ctx context.Context, id uuid.UUID, paidAmount decimal.Decimal, paidAt time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices SET status=$2, paid_amount=$3, paid_at=$4, updated_at=NOW()
		WHERE id = $1 AND status = $5`,
		id, StatusPaid, paidAmount, paidAt, StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *invoiceRepoPG) MarkCancelled(ctx context.Context, id uuid.UUID, cancelledAt time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices SET status=$2, cancelled_at=$3, updated_at=NOW()
		WHERE id = $1 AND status = $4`,
		id, StatusCancelled, cancelledAt, StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *invoiceRepoPG) List(ctx context.Context, f InvoiceFilter, limit, offset int) ([]*Invoice, int, error) {
	var clauses []string
	var args []interface{}
	if f.PatientID != nil {
		args = append(args, *f.PatientID)
		clauses = append(clauses, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM invoices`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+invoiceCols+` FROM invoices%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var invoices []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, rows.Err()
}

type paymentRepoPG struct{ pool *pgxpool.Pool }

func NewPaymentRepoPG(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepoPG{pool: pool}
}

func (r *paymentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const paymentCols = `id, seq, invoice_id, method, amount_due, amount_tendered, change_amount,
	cashier_id, cashier_name, created_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.Seq, &p.InvoiceID, &p.Method, &p.AmountDue, &p.AmountTendered,
		&p.ChangeAmount, &p.CashierID, &p.CashierName, &p.CreatedAt)
	return &p, err
}

func (r *paymentRepoPG) CreatePayment(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO payments (id, invoice_id, method, amount_due, amount_tendered, change_amount,
			cashier_id, cashier_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING seq, created_at`,
		p.ID, p.InvoiceID, p.Method, p.AmountDue, p.AmountTendered, p.ChangeAmount,
		p.CashierID, p.CashierName).
		Scan(&p.Seq, &p.CreatedAt)
}

const receiptCols = `id, seq, COALESCE(number, ''), payment_id, invoice_id, invoice_number, patient_id, patient_name,
	total_amount, discount_amount, net_amount, amount_tendered, change_amount,
	method, cashier_name, issued_at`

func scanReceipt(row pgx.Row) (*Receipt, error) {
	var rc Receipt
	err := row.Scan(&rc.ID, &rc.Seq, &rc.Number, &rc.PaymentID, &rc.InvoiceID, &rc.InvoiceNumber,
		&rc.PatientID, &rc.PatientName, &rc.TotalAmount, &rc.DiscountAmount, &rc.NetAmount,
		&rc.AmountTendered, &rc.ChangeAmount, &rc.Method, &rc.CashierName, &rc.IssuedAt)
	return &rc, err
}

func (r *paymentRepoPG) CreateReceipt(ctx context.Context, rc *Receipt) error {
	rc.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO receipts (id, payment_id, invoice_id, invoice_number,
			patient_id, patient_name, total_amount, discount_amount, net_amount,
			amount_tendered, change_amount, method, cashier_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING seq, issued_at`,
		rc.ID, rc.PaymentID, rc.InvoiceID, rc.InvoiceNumber,
		rc.PatientID, rc.PatientName, rc.TotalAmount, rc.DiscountAmount, rc.NetAmount,
		rc.AmountTendered, rc.ChangeAmount, rc.Method, rc.CashierName).
		Scan(&rc.Seq, &rc.IssuedAt)
}

func (r *paymentRepoPG) SetReceiptNumber(ctx context.Context, id uuid.UUID, number string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE receipts SET number=$2 WHERE id = $1`, id, number)
	return err
}

func (r *paymentRepoPG) GetPaymentByInvoice(ctx context.Context, invoiceID uuid.UUID) (*Payment, error) {
	return scanPayment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+paymentCols+` FROM payments WHERE invoice_id = $1`, invoiceID))
}

func (r *paymentRepoPG) GetReceiptByInvoice(ctx context.Context, invoiceID uuid.UUID) (*Receipt, error) {
	return scanReceipt(r.conn(ctx).QueryRow(ctx,
		`SELECT `+receiptCols+` FROM receipts WHERE invoice_id = $1`, invoiceID))
}

func (r *paymentRepoPG) GetReceiptByNumber(ctx context.Context, number string) (*Receipt, error) {
	return scanReceipt(r.conn(ctx).QueryRow(ctx,
		`SELECT `+receiptCols+` FROM receipts WHERE number = $1`, number))
}
