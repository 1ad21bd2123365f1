package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidRange means the report period is inverted.
var ErrInvalidRange = errors.New("report period is inverted")

// defaultReportDays is the period used when the caller gives no dates.
const defaultReportDays = 30

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// BillingSummary aggregates the period. Missing dates default to the last
// 30 days ending today; an inverted range is rejected, an empty range just
// yields zero totals.
func (s *Service) BillingSummary(ctx context.Context, f ReportFilter) (*BillingReport, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	if f.To.IsZero() {
		f.To = today
	}
	if f.From.IsZero() {
		f.From = f.To.AddDate(0, 0, -(defaultReportDays - 1))
	}
	if f.To.Before(f.From) {
		return nil, ErrInvalidRange
	}
	return s.repo.BillingSummary(ctx, f)
}

// Aging reports outstanding pending invoices bucketed by age. AsOf defaults
// to now.
func (s *Service) Aging(ctx context.Context, asOf time.Time) (*AgingReport, error) {
	if asOf.IsZero() {
		asOf = s.now().UTC()
	}
	return s.repo.Aging(ctx, asOf)
}
