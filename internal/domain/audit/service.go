package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	entries Repository
}

func NewService(entries Repository) *Service {
	return &Service{entries: entries}
}

// Record appends an audit entry. Callers invoke this inside the transaction
// of the financial mutation being recorded.
func (s *Service) Record(ctx context.Context, e *Entry) error {
	if e.Action == "" {
		return fmt.Errorf("action is required")
	}
	if e.ActorID == "" {
		return fmt.Errorf("actor_id is required")
	}
	return s.entries.Append(ctx, e)
}

func (s *Service) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*Entry, error) {
	return s.entries.ListByInvoice(ctx, invoiceID)
}

func (s *Service) List(ctx context.Context, action string, limit, offset int) ([]*Entry, int, error) {
	return s.entries.List(ctx, action, limit, offset)
}
