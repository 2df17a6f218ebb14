package repository

import (
	"context"

	"github.com/NenadVrtue/webshop-triangle/internal/domain/catalog"
)

type TireRepository interface {
	// FindByID returns (nil, nil) when the tire does not exist.
	FindByID(ctx context.Context, id int64) (*catalog.Tire, error)

	// UpsertBatch inserts or updates the given tires and returns how many
	// rows were written.
	UpsertBatch(ctx context.Context, tires []catalog.Tire) (int, error)
}
