package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

type mockRepo struct {
	lastFilter ReportFilter
	lastAsOf   time.Time
}

func (m *mockRepo) BillingSummary(_ context.Context, f ReportFilter) (*BillingReport, error) {
	m.lastFilter = f
	return &BillingReport{From: f.From, To: f.To}, nil
}

func (m *mockRepo) Aging(_ context.Context, asOf time.Time) (*AgingReport, error) {
	m.lastAsOf = asOf
	return &AgingReport{AsOf: asOf, Buckets: []AgingBucket{
		{Label: "0-30", Count: 2, Amount: decimal.RequireFromString("700.00")},
		{Label: "31-60"}, {Label: "61-90"}, {Label: "90+"},
	}}, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
}

func newTestService(repo *mockRepo) *Service {
	svc := NewService(repo)
	svc.now = fixedNow
	return svc
}

func TestBillingSummaryDefaultsPeriod(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	_, err := svc.BillingSummary(context.Background(), ReportFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantTo := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	wantFrom := time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC)
	if !repo.lastFilter.To.Equal(wantTo) {
		t.Errorf("expected to %v, got %v", wantTo, repo.lastFilter.To)
	}
	if !repo.lastFilter.From.Equal(wantFrom) {
		t.Errorf("expected from %v, got %v", wantFrom, repo.lastFilter.From)
	}
}

func TestBillingSummaryRejectsInvertedRange(t *testing.T) {
	svc := newTestService(&mockRepo{})

	_, err := svc.BillingSummary(context.Background(), ReportFilter{
		From: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestBillingSummarySingleDayRange(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.BillingSummary(context.Background(), ReportFilter{From: day, To: day})
	if err != nil {
		t.Fatalf("single-day range must be accepted: %v", err)
	}
}

func TestAgingDefaultsAsOf(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	report, err := svc.Aging(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.lastAsOf.Equal(fixedNow()) {
		t.Errorf("expected as_of defaulted to now, got %v", repo.lastAsOf)
	}
	if len(report.Buckets) != 4 {
		t.Errorf("expected 4 buckets, got %d", len(report.Buckets))
	}
}
