package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/NenadVrtue/webshop-triangle/internal/domain/catalog"
	domain "github.com/NenadVrtue/webshop-triangle/internal/domain/order"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts the order row and one row per item inside a single
// transaction, items in input order, then reloads the aggregate. Any
// failure rolls everything back.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback(ctx)

	const insertOrder = `
		INSERT INTO orders (
			user_id, status, order_date,
			customer_name, customer_email, customer_phone, company_name,
			address, city, postal_code, notes,
			subtotal, discount_amount, total
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, insertOrder,
		o.UserID,
		o.Status,
		o.OrderDate,
		o.CustomerName,
		o.CustomerEmail,
		o.CustomerPhone,
		nullIfEmpty(o.CompanyName),
		o.Address,
		o.City,
		o.PostalCode,
		nullIfEmpty(o.Notes),
		o.Subtotal,
		o.DiscountAmount,
		o.Total,
	).Scan(&o.ID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "insert order", Err: err}
	}

	const insertItem = `
		INSERT INTO order_items (order_id, tire_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID
		err = tx.QueryRow(ctx, insertItem,
			item.OrderID,
			item.TireID,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "insert order item", Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, &domain.PersistenceError{Op: "commit order", Err: err}
	}

	return r.FindByID(ctx, o.ID)
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	const orderQuery = `
		SELECT id, user_id, status, order_date,
			customer_name, customer_email, customer_phone,
			COALESCE(company_name, ''), address, city, postal_code,
			COALESCE(notes, ''),
			subtotal, discount_amount, total
		FROM orders
		WHERE id = $1;
	`
	var o domain.Order
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.OrderDate,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.CustomerPhone,
		&o.CompanyName,
		&o.Address,
		&o.City,
		&o.PostalCode,
		&o.Notes,
		&o.Subtotal,
		&o.DiscountAmount,
		&o.Total,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load order", Err: err}
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	const query = `UPDATE orders SET status = $1 WHERE id = $2;`

	tag, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return &domain.PersistenceError{Op: "update order status", Err: err}
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// loadItems returns the items in insertion order with the tire display
// fields the confirmation UI needs joined in.
func (r *OrderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.Item, error) {
	const query = `
		SELECT oi.id, oi.order_id, oi.tire_id, oi.quantity, oi.unit_price, oi.total_price,
			t.id, t.code, t.name, t.type, t.dimensions, t.brand, t.price
		FROM order_items oi
		LEFT JOIN tires t ON t.id = oi.tire_id
		WHERE oi.order_id = $1
		ORDER BY oi.id;
	`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load order items", Err: err}
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var (
			item     domain.Item
			tireID   *int64
			code     *string
			name     *string
			tireType *string
			dims     *string
			brand    *string
			price    decimal.NullDecimal
		)
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.TireID,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
			&tireID,
			&code,
			&name,
			&tireType,
			&dims,
			&brand,
			&price,
		)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "scan order item", Err: err}
		}
		if tireID != nil {
			item.Tire = &catalog.Tire{
				ID:         *tireID,
				Code:       deref(code),
				Name:       deref(name),
				Type:       deref(tireType),
				Dimensions: deref(dims),
				Brand:      deref(brand),
				Price:      price,
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "iterate order items", Err: err}
	}
	return items, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
