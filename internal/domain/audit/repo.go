package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository appends to and reads from the audit trail. There is no update
// or delete: audit rows are immutable once committed.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*Entry, error)
	List(ctx context.Context, action string, limit, offset int) ([]*Entry, int, error)
}
