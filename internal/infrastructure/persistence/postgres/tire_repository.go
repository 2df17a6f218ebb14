package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NenadVrtue/webshop-triangle/internal/domain/catalog"
)

type TireRepository struct {
	pool *pgxpool.Pool
}

func NewTireRepository(pool *pgxpool.Pool) *TireRepository {
	return &TireRepository{pool: pool}
}

func (r *TireRepository) FindByID(ctx context.Context, id int64) (*catalog.Tire, error) {
	const query = `
		SELECT id, code, name, type, dimensions, brand, price, is_active
		FROM tires
		WHERE id = $1;
	`
	var t catalog.Tire
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Code,
		&t.Name,
		&t.Type,
		&t.Dimensions,
		&t.Brand,
		&t.Price,
		&t.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpsertBatch writes the given tires in one round trip using a pgx batch.
func (r *TireRepository) UpsertBatch(ctx context.Context, tires []catalog.Tire) (int, error) {
	if len(tires) == 0 {
		return 0, nil
	}

	const query = `
		INSERT INTO tires (id, code, name, type, dimensions, brand, price, is_active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO UPDATE
		SET code = EXCLUDED.code,
			name = EXCLUDED.name,
			type = EXCLUDED.type,
			dimensions = EXCLUDED.dimensions,
			brand = EXCLUDED.brand,
			price = EXCLUDED.price,
			is_active = EXCLUDED.is_active,
			updated_at = now();
	`

	batch := &pgx.Batch{}
	for _, t := range tires {
		batch.Queue(query, t.ID, t.Code, t.Name, t.Type, t.Dimensions, t.Brand, t.Price, t.Active)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for range tires {
		if _, err := results.Exec(); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
