package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type mockItemRepo struct {
	items map[uuid.UUID]*ServiceItem
}

func newMockItemRepo() *mockItemRepo {
	return &mockItemRepo{items: make(map[uuid.UUID]*ServiceItem)}
}

func (m *mockItemRepo) Create(_ context.Context, item *ServiceItem) error {
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepo) GetByID(_ context.Context, id uuid.UUID) (*ServiceItem, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return it, nil
}

func (m *mockItemRepo) GetByCode(_ context.Context, code string) (*ServiceItem, error) {
	for _, it := range m.items {
		if it.Code == code {
			return it, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockItemRepo) Update(_ context.Context, item *ServiceItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	it, ok := m.items[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	it.Active = active
	return nil
}

func (m *mockItemRepo) List(_ context.Context, activeOnly bool, limit, offset int) ([]*ServiceItem, int, error) {
	var result []*ServiceItem
	for _, it := range m.items {
		if activeOnly && !it.Active {
			continue
		}
		result = append(result, it)
	}
	return result, len(result), nil
}

func TestCreateItem(t *testing.T) {
	svc := NewService(newMockItemRepo())

	item := &ServiceItem{Code: "CONSULT", Name: "General Consultation", UnitPrice: decimal.RequireFromString("500.005")}
	if err := svc.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.Active {
		t.Error("new items should be active")
	}
	if item.UnitPrice.String() != "500.01" {
		t.Errorf("expected price rounded to 500.01, got %s", item.UnitPrice.String())
	}
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewService(newMockItemRepo())

	if err := svc.CreateItem(context.Background(), &ServiceItem{Name: "X"}); err == nil {
		t.Error("expected error for missing code")
	}
	if err := svc.CreateItem(context.Background(), &ServiceItem{Code: "X"}); err == nil {
		t.Error("expected error for missing name")
	}
	neg := &ServiceItem{Code: "X", Name: "X", UnitPrice: decimal.RequireFromString("-1")}
	if err := svc.CreateItem(context.Background(), neg); err == nil {
		t.Error("expected error for negative price")
	}
}

func TestDeactivateItem(t *testing.T) {
	repo := newMockItemRepo()
	svc := NewService(repo)

	item := &ServiceItem{Code: "XRAY", Name: "Chest X-Ray", UnitPrice: decimal.RequireFromString("800.00")}
	if err := svc.CreateItem(context.Background(), item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeactivateItem(context.Background(), item.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.GetItem(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Active {
		t.Error("expected item to be inactive")
	}

	active, _, err := svc.ListItems(context.Background(), true, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active items, got %d", len(active))
	}
}
