package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	entries []*Entry
}

func (m *mockRepo) Append(_ context.Context, e *Entry) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockRepo) ListByInvoice(_ context.Context, invoiceID uuid.UUID) ([]*Entry, error) {
	var result []*Entry
	for _, e := range m.entries {
		if e.InvoiceID != nil && *e.InvoiceID == invoiceID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockRepo) List(_ context.Context, action string, limit, offset int) ([]*Entry, int, error) {
	var result []*Entry
	for _, e := range m.entries {
		if action == "" || e.Action == action {
			result = append(result, e)
		}
	}
	return result, len(result), nil
}

func TestRecordValidation(t *testing.T) {
	svc := NewService(&mockRepo{})

	if err := svc.Record(context.Background(), &Entry{ActorID: "emp-1"}); err == nil {
		t.Error("expected error for missing action")
	}
	if err := svc.Record(context.Background(), &Entry{Action: ActionInvoiceCreated}); err == nil {
		t.Error("expected error for missing actor")
	}
}

func TestRecordAndListByInvoice(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	invoiceID := uuid.New()

	err := svc.Record(context.Background(), &Entry{
		Action:    ActionInvoiceCreated,
		InvoiceID: &invoiceID,
		ActorID:   "emp-1",
		ActorName: "Maria Santos",
		Detail:    map[string]interface{}{"net_amount": "450.00"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.ListByInvoice(context.Background(), invoiceID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Action != ActionInvoiceCreated {
		t.Errorf("unexpected action %q", entries[0].Action)
	}
}
