package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinica/billing/pkg/money"
)

type Service struct {
	items ServiceItemRepository
}

func NewService(items ServiceItemRepository) *Service {
	return &Service{items: items}
}

func (s *Service) CreateItem(ctx context.Context, item *ServiceItem) error {
	if item.Code == "" {
		return fmt.Errorf("code is required")
	}
	if item.Name == "" {
		return fmt.Errorf("name is required")
	}
	if money.IsNegative(item.UnitPrice) {
		return fmt.Errorf("unit_price must not be negative")
	}
	item.UnitPrice = money.Round2(item.UnitPrice)
	item.Active = true
	return s.items.Create(ctx, item)
}

func (s *Service) GetItem(ctx context.Context, id uuid.UUID) (*ServiceItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *Service) GetItemByCode(ctx context.Context, code string) (*ServiceItem, error) {
	return s.items.GetByCode(ctx, code)
}

func (s *Service) UpdateItem(ctx context.Context, item *ServiceItem) error {
	if item.Code == "" {
		return fmt.Errorf("code is required")
	}
	if item.Name == "" {
		return fmt.Errorf("name is required")
	}
	if money.IsNegative(item.UnitPrice) {
		return fmt.Errorf("unit_price must not be negative")
	}
	item.UnitPrice = money.Round2(item.UnitPrice)
	return s.items.Update(ctx, item)
}

// DeactivateItem retires an item from new invoices. Existing invoice lines
// keep their snapshotted price and description.
func (s *Service) DeactivateItem(ctx context.Context, id uuid.UUID) error {
	return s.items.SetActive(ctx, id, false)
}

func (s *Service) ActivateItem(ctx context.Context, id uuid.UUID) error {
	return s.items.SetActive(ctx, id, true)
}

func (s *Service) ListItems(ctx context.Context, activeOnly bool, limit, offset int) ([]*ServiceItem, int, error) {
	return s.items.List(ctx, activeOnly, limit, offset)
}
