package order

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	domain "github.com/NenadVrtue/webshop-triangle/internal/domain/order"
	"github.com/NenadVrtue/webshop-triangle/internal/domain/repository"
)

// LineInput is one submitted cart row.
type LineInput struct {
	TireID   int64 `json:"tire_id"`
	Quantity int   `json:"quantity"`
}

// PricedLine is one input row with its price snapshot resolved.
type PricedLine struct {
	TireID    int64
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// Quote is a fully priced order shape. It carries no identity and no
// persistence; it is safe to compute speculatively for previews.
type Quote struct {
	Lines          []PricedLine
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Pricer resolves current catalog prices into line and order totals.
// Duplicate tire ids are priced as separate lines, each submitted row
// becomes its own order item; callers wanting merged lines pre-aggregate.
type Pricer struct {
	tires repository.TireRepository
}

func NewPricer(tires repository.TireRepository) *Pricer {
	return &Pricer{tires: tires}
}

// Price computes the quote for the given lines and discount. It reads the
// catalog and mutates nothing. Monetary values are fixed at 2 decimal
// places. Failures are ValidationError or NotFoundError; a catalog read
// failure comes back unclassified for the submission boundary to wrap.
func (p *Pricer) Price(ctx context.Context, lines []LineInput, discount decimal.Decimal) (*Quote, error) {
	verr := domain.NewValidationError()

	if len(lines) == 0 {
		verr.Add("items", "order must contain at least one item")
		return nil, verr
	}
	for i, line := range lines {
		if line.Quantity < 1 {
			verr.Add(fmt.Sprintf("items.%d.quantity", i), "quantity must be at least 1")
		}
	}
	if discount.IsNegative() {
		verr.Add("discount", "discount must not be negative")
	}
	if !verr.Empty() {
		return nil, verr
	}

	quote := &Quote{
		Lines:          make([]PricedLine, 0, len(lines)),
		DiscountAmount: discount.Round(2),
	}

	subtotal := decimal.Zero
	for i, line := range lines {
		tire, err := p.tires.FindByID(ctx, line.TireID)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup: %w", err)
		}
		if tire == nil {
			return nil, &domain.NotFoundError{TireID: line.TireID}
		}
		// The old webshop silently priced unpriced tires at zero.
		// Here a tire without a positive price cannot be ordered.
		if !tire.Priced() {
			verr.Add(fmt.Sprintf("items.%d.tire_id", i), "tire has no valid price")
			continue
		}

		unitPrice := tire.Price.Decimal.Round(2)
		lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
		subtotal = subtotal.Add(lineTotal)

		quote.Lines = append(quote.Lines, PricedLine{
			TireID:    line.TireID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}
	if !verr.Empty() {
		return nil, verr
	}

	quote.Subtotal = subtotal.Round(2)
	if quote.DiscountAmount.GreaterThan(quote.Subtotal) {
		verr.Add("discount", "discount must not exceed the order subtotal")
		return nil, verr
	}
	quote.Total = quote.Subtotal.Sub(quote.DiscountAmount).Round(2)

	return quote, nil
}
