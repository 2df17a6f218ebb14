package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables the order workflow needs if they do not
// exist yet. Monetary columns are fixed at 2 decimal places.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
		CREATE TABLE IF NOT EXISTS tires (
			id BIGINT PRIMARY KEY,
			code TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			dimensions TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT,
			status TEXT NOT NULL,
			order_date TIMESTAMPTZ NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_email VARCHAR(255) NOT NULL,
			customer_phone VARCHAR(20) NOT NULL,
			company_name VARCHAR(255),
			address VARCHAR(500) NOT NULL,
			city VARCHAR(100) NOT NULL,
			postal_code VARCHAR(20) NOT NULL,
			notes TEXT,
			subtotal NUMERIC(10,2) NOT NULL DEFAULT 0,
			discount_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			total NUMERIC(10,2) NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id),
			tire_id BIGINT NOT NULL,
			quantity INT NOT NULL CHECK (quantity >= 1),
			unit_price NUMERIC(10,2) NOT NULL,
			total_price NUMERIC(10,2) NOT NULL
		);
	`
	_, err := pool.Exec(ctx, stmt)
	return err
}
