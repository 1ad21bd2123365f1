package ledger

import (
	"context"
	"time"
)

// Repository runs the aggregate queries. Implementations must return zero
// totals, never errors, for periods with no activity.
type Repository interface {
	BillingSummary(ctx context.Context, f ReportFilter) (*BillingReport, error)
	Aging(ctx context.Context, asOf time.Time) (*AgingReport, error)
}
