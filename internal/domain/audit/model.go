package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions recorded in the financial audit trail.
const (
	ActionInvoiceCreated   = "invoice_created"
	ActionPaymentProcessed = "payment_processed"
	ActionInvoiceCancelled = "invoice_cancelled"
)

// Entry is one append-only audit row. Entries for financial mutations are
// written in the same transaction as the mutation itself, so a committed
// invoice or payment always has its trail and a rolled-back one never does.
type Entry struct {
	ID        uuid.UUID              `db:"id" json:"id"`
	Action    string                 `db:"action" json:"action"`
	InvoiceID *uuid.UUID             `db:"invoice_id" json:"invoice_id,omitempty"`
	ActorID   string                 `db:"actor_id" json:"actor_id"`
	ActorName string                 `db:"actor_name" json:"actor_name"`
	Detail    map[string]interface{} `db:"detail" json:"detail,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
