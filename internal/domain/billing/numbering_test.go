package billing

import (
	"testing"
	"time"
)

func TestInvoiceNumberFormat(t *testing.T) {
	ts := time.Date(2025, 3, 7, 10, 30, 0, 0, time.UTC)
	got := InvoiceNumber(42, ts)
	if got != "INV-20250307-000042" {
		t.Errorf("expected INV-20250307-000042, got %s", got)
	}
}

func TestReceiptNumberFormat(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	got := ReceiptNumber(1, ts)
	if got != "OR-20251231-000001" {
		t.Errorf("expected OR-20251231-000001, got %s", got)
	}
}

func TestNumberWidthGrowsPastSixDigits(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := InvoiceNumber(1234567, ts)
	if got != "INV-20250101-1234567" {
		t.Errorf("expected INV-20250101-1234567, got %s", got)
	}
}

func TestNumberUsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 01:00 on Jan 2 in UTC+8 is still Jan 1 in UTC
	ts := time.Date(2025, 1, 2, 1, 0, 0, 0, loc)
	got := InvoiceNumber(5, ts)
	if got != "INV-20250101-000005" {
		t.Errorf("expected date normalized to UTC, got %s", got)
	}
}
