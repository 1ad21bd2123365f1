package billing

import (
	"fmt"
	"time"
)

// Document number prefixes. OR is the official receipt series.
const (
	InvoicePrefix = "INV"
	ReceiptPrefix = "OR"
)

// formatNumber renders PREFIX-YYYYMMDD-NNNNNN from a row's own sequence
// value. The sequence comes from the insert's RETURNING clause, so two
// concurrent transactions can never format the same number; a unique
// constraint on the number column backs this up.
func formatNumber(prefix string, seq int64, t time.Time) string {
	return fmt.Sprintf("%s-%s-%06d", prefix, t.UTC().Format("20060102"), seq)
}

// InvoiceNumber formats the human-readable invoice number.
func InvoiceNumber(seq int64, t time.Time) string {
	return formatNumber(InvoicePrefix, seq, t)
}

// ReceiptNumber formats the official receipt number.
func ReceiptNumber(seq int64, t time.Time) string {
	return formatNumber(ReceiptPrefix, seq, t)
}
