package ledger

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica/billing/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) BillingSummary(ctx context.Context, f ReportFilter) (*BillingReport, error) {
	report := &BillingReport{From: f.From, To: f.To}
	c := r.conn(ctx)

	// invoices bucket by creation date; cancelled amounts are excluded
	// from the money totals but still counted
	var ib whereBuilder
	ib.Add("created_at >= $%d", f.From)
	ib.Add("created_at < $%d", f.To.AddDate(0, 0, 1))
	if f.Status != "" {
		ib.Add("status = $%d", f.Status)
	}
	err := c.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status = 'cancelled'),
			COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0),
			COALESCE(SUM(discount_amount) FILTER (WHERE status <> 'cancelled'), 0),
			COALESCE(SUM(net_amount) FILTER (WHERE status <> 'cancelled'), 0)
		FROM invoices`+ib.Where(), ib.Args()...).
		Scan(&report.InvoiceCount, &report.PendingCount, &report.PaidCount, &report.CancelledCount,
			&report.GrossTotal, &report.DiscountTotal, &report.NetTotal)
	if err != nil {
		return nil, err
	}

	// collections bucket by payment date
	var pb whereBuilder
	pb.Add("created_at >= $%d", f.From)
	pb.Add("created_at < $%d", f.To.AddDate(0, 0, 1))
	if f.CashierID != "" {
		pb.Add("cashier_id = $%d", f.CashierID)
	}
	if f.Method != "" {
		pb.Add("method = $%d", f.Method)
	}
	err = c.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_due), 0) FROM payments`+pb.Where(), pb.Args()...).
		Scan(&report.CollectedTotal)
	if err != nil {
		return nil, err
	}

	rows, err := c.Query(ctx, `
		SELECT method, COUNT(*), COALESCE(SUM(amount_due), 0)
		FROM payments`+pb.Where()+`
		GROUP BY method ORDER BY method`, pb.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var mt MethodTotal
		if err := rows.Scan(&mt.Method, &mt.Count, &mt.Amount); err != nil {
			return nil, err
		}
		report.ByMethod = append(report.ByMethod, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = c.Query(ctx, `
		SELECT cashier_id, cashier_name, COUNT(*), COALESCE(SUM(amount_due), 0)
		FROM payments`+pb.Where()+`
		GROUP BY cashier_id, cashier_name ORDER BY cashier_name`, pb.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ct CashierTotal
		if err := rows.Scan(&ct.CashierID, &ct.CashierName, &ct.Count, &ct.Amount); err != nil {
			return nil, err
		}
		report.ByCashier = append(report.ByCashier, ct)
	}
	return report, rows.Err()
}

// agingBucketLabels fixes the band order; the CASE expression below must
// produce the same labels.
var agingBucketLabels = []string{"0-30", "31-60", "61-90", "90+"}

func (r *repoPG) Aging(ctx context.Context, asOf time.Time) (*AgingReport, error) {
	report := &AgingReport{AsOf: asOf}
	byLabel := make(map[string]AgingBucket, len(agingBucketLabels))

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT CASE
				WHEN $1::timestamptz - created_at <= INTERVAL '30 days' THEN '0-30'
				WHEN $1::timestamptz - created_at <= INTERVAL '60 days' THEN '31-60'
				WHEN $1::timestamptz - created_at <= INTERVAL '90 days' THEN '61-90'
				ELSE '90+'
			END AS bucket,
			COUNT(*), COALESCE(SUM(net_amount), 0)
		FROM invoices
		WHERE status = 'pending' AND created_at <= $1::timestamptz
		GROUP BY bucket`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var b AgingBucket
		if err := rows.Scan(&b.Label, &b.Count, &b.Amount); err != nil {
			return nil, err
		}
		byLabel[b.Label] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, label := range agingBucketLabels {
		b, ok := byLabel[label]
		if !ok {
			b = AgingBucket{Label: label}
		}
		report.Buckets = append(report.Buckets, b)
		report.TotalCount += b.Count
		report.TotalOutstanding = report.TotalOutstanding.Add(b.Amount)
	}
	return report, nil
}
