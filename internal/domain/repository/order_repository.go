package repository

import (
	"context"

	"github.com/NenadVrtue/webshop-triangle/internal/domain/order"
)

type OrderRepository interface {
	// Create persists the order and all of its items atomically, then
	// reloads the aggregate with tire display fields joined in. On any
	// failure nothing persists.
	Create(ctx context.Context, o *order.Order) (*order.Order, error)

	// FindByID loads the full aggregate. Returns order.ErrOrderNotFound
	// when no such order exists.
	FindByID(ctx context.Context, id int64) (*order.Order, error)

	// UpdateStatus moves the order to the given status. Transition rules
	// are enforced by the caller.
	UpdateStatus(ctx context.Context, id int64, status order.Status) error
}
