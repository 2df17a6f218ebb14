package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/NenadVrtue/webshop-triangle/internal/domain/catalog"
)

// Order is the root aggregate of a placed purchase request. It is created
// together with its items in one atomic write; after that only the status
// may change.
type Order struct {
	ID             int64
	UserID         *int64
	Status         Status
	OrderDate      time.Time
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	CompanyName    string
	Address        string
	City           string
	PostalCode     string
	Notes          string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	Items          []Item
}

// Item is an immutable priced line within an order. UnitPrice and
// TotalPrice are snapshots taken from the catalog at creation time; later
// catalog price changes never alter them.
type Item struct {
	ID         int64
	OrderID    int64
	TireID     int64
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	// Tire carries minimal display fields joined on read for the
	// confirmation UI. Nil when the catalog row has since disappeared.
	Tire *catalog.Tire
}
