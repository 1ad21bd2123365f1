package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists patient registry records.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, nameQuery string, limit, offset int) ([]*Patient, int, error)
}
