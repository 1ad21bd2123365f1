package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ServiceItemRepository persists the billable service catalog.
type ServiceItemRepository interface {
	Create(ctx context.Context, item *ServiceItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceItem, error)
	GetByCode(ctx context.Context, code string) (*ServiceItem, error)
	Update(ctx context.Context, item *ServiceItem) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*ServiceItem, int, error)
}
