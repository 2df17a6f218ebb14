package catalog

import (
	"github.com/shopspring/decimal"
)

// Tire is a catalog product record. The catalog is read-only to the order
// workflow; only the display fields the order aggregate serializes are
// carried here, the supplier feed has many more.
type Tire struct {
	ID         int64
	Code       string
	Name       string
	Type       string
	Dimensions string
	Brand      string
	// Price is the wholesale unit price. It is nullable in the feed:
	// a tire without a valid positive price cannot be ordered.
	Price  decimal.NullDecimal
	Active bool
}

// Priced reports whether the tire carries a usable unit price.
func (t *Tire) Priced() bool {
	return t.Price.Valid && t.Price.Decimal.IsPositive()
}
