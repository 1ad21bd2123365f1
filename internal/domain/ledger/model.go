// Package ledger answers read-only questions about the money that flowed
// through billing: period summaries, per-method and per-cashier breakdowns,
// and the age of outstanding invoices. All aggregation happens in SQL; this
// package never mutates billing rows.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter bounds a billing summary. From and To are inclusive calendar
// dates. Status narrows the invoice aggregates; CashierID and Method narrow
// the collection breakdowns.
type ReportFilter struct {
	From      time.Time
	To        time.Time
	Status    string
	CashierID string
	Method    string
}

type MethodTotal struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type CashierTotal struct {
	CashierID   string          `json:"cashier_id"`
	CashierName string          `json:"cashier_name"`
	Count       int             `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
}

// BillingReport summarizes invoices raised and payments collected in a
// period. Invoice figures bucket by creation date; collection figures bucket
// by payment date, so an invoice raised in one period and settled in the
// next shows up in both reports correctly.
type BillingReport struct {
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	InvoiceCount   int             `json:"invoice_count"`
	PendingCount   int             `json:"pending_count"`
	PaidCount      int             `json:"paid_count"`
	CancelledCount int             `json:"cancelled_count"`
	GrossTotal     decimal.Decimal `json:"gross_total"`
	DiscountTotal  decimal.Decimal `json:"discount_total"`
	NetTotal       decimal.Decimal `json:"net_total"`
	CollectedTotal decimal.Decimal `json:"collected_total"`
	ByMethod       []MethodTotal   `json:"by_method"`
	ByCashier      []CashierTotal  `json:"by_cashier"`
}

// AgingBucket is one band of outstanding invoices by age in days.
type AgingBucket struct {
	Label  string          `json:"label"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// AgingReport buckets pending invoices by days outstanding as of a given
// date: 0-30, 31-60, 61-90 and over 90.
type AgingReport struct {
	AsOf             time.Time       `json:"as_of"`
	Buckets          []AgingBucket   `json:"buckets"`
	TotalCount       int             `json:"total_count"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
}
