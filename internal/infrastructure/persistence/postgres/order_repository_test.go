package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NenadVrtue/webshop-triangle/internal/config"
	"github.com/NenadVrtue/webshop-triangle/internal/domain/catalog"
	domain "github.com/NenadVrtue/webshop-triangle/internal/domain/order"
)

// testPool connects to the database from .env and resets the order
// tables. Tests are skipped when no database is reachable.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err, "load config failed")

	pool, err := NewPool(cfg.DB)
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}
	t.Cleanup(pool.Close)

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, pool))

	_, err = pool.Exec(ctx, `TRUNCATE order_items, orders, tires RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return pool
}

func seedTire(t *testing.T, pool *pgxpool.Pool, id int64, price string) {
	t.Helper()

	tires := NewTireRepository(pool)
	n, err := tires.UpsertBatch(context.Background(), []catalog.Tire{{
		ID:     id,
		Code:   "T-100",
		Name:   "Road Master",
		Price:  decimal.NewNullDecimal(decimal.RequireFromString(price)),
		Active: true,
	}})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func testOrder(items []domain.Item) *domain.Order {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	return &domain.Order{
		Status:        domain.StatusPending,
		OrderDate:     time.Now().UTC(),
		CustomerName:  "Petar Petrovic",
		CustomerEmail: "petar@example.com",
		CustomerPhone: "+38765123456",
		Address:       "Kralja Petra 12",
		City:          "Banja Luka",
		PostalCode:    "78000",
		Subtotal:      subtotal,
		Total:         subtotal,
		Items:         items,
	}
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n))
	return n
}

func TestOrderRepository_Create_RollsBackOnItemFailure(t *testing.T) {
	pool := testPool(t)
	seedTire(t, pool, 1, "50.00")

	repo := NewOrderRepository(pool)

	// The second item violates the quantity check after the order row
	// and the first item row are already inserted.
	o := testOrder([]domain.Item{
		{TireID: 1, Quantity: 2,
			UnitPrice:  decimal.RequireFromString("50.00"),
			TotalPrice: decimal.RequireFromString("100.00")},
		{TireID: 1, Quantity: 0,
			UnitPrice:  decimal.RequireFromString("50.00"),
			TotalPrice: decimal.Zero},
	})

	_, err := repo.Create(context.Background(), o)

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, countRows(t, pool, "orders"))
	assert.Equal(t, 0, countRows(t, pool, "order_items"))
}

func TestOrderRepository_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	pool := testPool(t)
	seedTire(t, pool, 1, "50.00")

	repo := NewOrderRepository(pool)

	created, err := repo.Create(context.Background(), testOrder([]domain.Item{
		{TireID: 1, Quantity: 2,
			UnitPrice:  decimal.RequireFromString("50.00"),
			TotalPrice: decimal.RequireFromString("100.00")},
	}))
	require.NoError(t, err)
	require.Len(t, created.Items, 1)

	seedTire(t, pool, 1, "80.00")

	reread, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, reread.Items, 1)

	item := reread.Items[0]
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("50.00")),
		"unit_price changed with the catalog: %s", item.UnitPrice)
	assert.True(t, item.TotalPrice.Equal(decimal.RequireFromString("100.00")),
		"total_price changed with the catalog: %s", item.TotalPrice)

	// The joined catalog row reflects the new price; only the order
	// snapshot is frozen.
	require.NotNil(t, item.Tire)
	assert.True(t, item.Tire.Price.Decimal.Equal(decimal.RequireFromString("80.00")))
}

func TestOrderRepository_CreateAndReload(t *testing.T) {
	pool := testPool(t)
	seedTire(t, pool, 1, "50.00")

	repo := NewOrderRepository(pool)

	created, err := repo.Create(context.Background(), testOrder([]domain.Item{
		{TireID: 1, Quantity: 2,
			UnitPrice:  decimal.RequireFromString("50.00"),
			TotalPrice: decimal.RequireFromString("100.00")},
	}))
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	require.Len(t, created.Items, 1)
	assert.Equal(t, created.ID, created.Items[0].OrderID)
	assert.NotZero(t, created.Items[0].ID)
	require.NotNil(t, created.Items[0].Tire)
	assert.Equal(t, "Road Master", created.Items[0].Tire.Name)
	assert.True(t, created.Subtotal.Equal(decimal.RequireFromString("100.00")))
}

func TestOrderRepository_UpdateStatus_MissingOrder(t *testing.T) {
	pool := testPool(t)

	repo := NewOrderRepository(pool)

	err := repo.UpdateStatus(context.Background(), 12345, domain.StatusConfirmed)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}
