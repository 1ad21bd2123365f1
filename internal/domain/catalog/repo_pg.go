package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinica/billing/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type serviceItemRepoPG struct{ pool *pgxpool.Pool }

func NewServiceItemRepoPG(pool *pgxpool.Pool) ServiceItemRepository {
	return &serviceItemRepoPG{pool: pool}
}

func (r *serviceItemRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const itemCols = `id, code, name, description, unit_price, active, created_at, updated_at`

func (r *serviceItemRepoPG) scanItem(row pgx.Row) (*ServiceItem, error) {
	var it ServiceItem
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Description, &it.UnitPrice,
		&it.Active, &it.CreatedAt, &it.UpdatedAt)
	return &it, err
}

func (r *serviceItemRepoPG) Create(ctx context.Context, item *ServiceItem) error {
	item.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO service_items (id, code, name, description, unit_price, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		item.ID, item.Code, item.Name, item.Description, item.UnitPrice, item.Active).
		Scan(&item.CreatedAt, &item.UpdatedAt)
}

func (r *serviceItemRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ServiceItem, error) {
	return r.scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM service_items WHERE id = $1`, id))
}

func (r *serviceItemRepoPG) GetByCode(ctx context.Context, code string) (*ServiceItem, error) {
	return r.scanItem(r.conn(ctx).QueryRow(ctx, `SELECT `+itemCols+` FROM service_items WHERE code = $1`, code))
}

func (r *serviceItemRepoPG) Update(ctx context.Context, item *ServiceItem) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE service_items SET code=$2, name=$3, description=$4, unit_price=$5, updated_at=NOW()
		WHERE id = $1`,
		item.ID, item.Code, item.Name, item.Description, item.UnitPrice)
	return err
}

func (r *serviceItemRepoPG) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE service_items SET active=$2, updated_at=NOW() WHERE id = $1`, id, active)
	return err
}

func (r *serviceItemRepoPG) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*ServiceItem, int, error) {
	where := ``
	if activeOnly {
		where = ` WHERE active`
	}
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM service_items`+where).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+itemCols+` FROM service_items`+where+` ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*ServiceItem
	for rows.Next() {
		it, err := r.scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, nil
}
