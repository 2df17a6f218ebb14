package avro

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/NenadVrtue/webshop-triangle/internal/domain/order"
)

// OrderCreatedEvent is the wire shape of the post-commit notification.
type OrderCreatedEvent struct {
	OrderID        int64
	Status         string
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
	Items          []OrderCreatedItem
}

type OrderCreatedItem struct {
	TireID     int64
	TireName   string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// NewOrderCreatedEvent maps a persisted order aggregate to its event.
func NewOrderCreatedEvent(o *domain.Order) *OrderCreatedEvent {
	ev := &OrderCreatedEvent{
		OrderID:        o.ID,
		Status:         string(o.Status),
		OrderDate:      o.OrderDate,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		CustomerPhone:  o.CustomerPhone,
		CompanyName:    o.CompanyName,
		Address:        o.Address,
		City:           o.City,
		PostalCode:     o.PostalCode,
		Notes:          o.Notes,
		Subtotal:       o.Subtotal,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
	}
	for _, item := range o.Items {
		name := ""
		if item.Tire != nil {
			name = item.Tire.Name
		}
		ev.Items = append(ev.Items, OrderCreatedItem{
			TireID:     item.TireID,
			TireName:   name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	return ev
}

// ToNative converts the event into the native map goavro expects.
func (e *OrderCreatedEvent) ToNative() map[string]interface{} {
	items := make([]interface{}, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, map[string]interface{}{
			"tire_id":     item.TireID,
			"tire_name":   nullableString(item.TireName),
			"quantity":    int64(item.Quantity),
			"unit_price":  item.UnitPrice.StringFixed(2),
			"total_price": item.TotalPrice.StringFixed(2),
		})
	}

	return map[string]interface{}{
		"order_id":        e.OrderID,
		"status":          e.Status,
		"order_date":      e.OrderDate.UTC().Format(time.RFC3339),
		"customer_name":   e.CustomerName,
		"customer_email":  e.CustomerEmail,
		"customer_phone":  e.CustomerPhone,
		"company_name":    nullableString(e.CompanyName),
		"address":         e.Address,
		"city":            e.City,
		"postal_code":     e.PostalCode,
		"notes":           nullableString(e.Notes),
		"subtotal":        e.Subtotal.StringFixed(2),
		"discount_amount": e.DiscountAmount.StringFixed(2),
		"total":           e.Total.StringFixed(2),
		"items":           items,
	}
}

// OrderCreatedFromNative rebuilds the event from a decoded native value.
func OrderCreatedFromNative(v interface{}) (*OrderCreatedEvent, error) {
	record, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("order created event is not a record")
	}

	orderDate, err := time.Parse(time.RFC3339, stringField(record, "order_date"))
	if err != nil {
		return nil, fmt.Errorf("parse order_date: %w", err)
	}

	ev := &OrderCreatedEvent{
		OrderID:       longField(record, "order_id"),
		Status:        stringField(record, "status"),
		OrderDate:     orderDate,
		CustomerName:  stringField(record, "customer_name"),
		CustomerEmail: stringField(record, "customer_email"),
		CustomerPhone: stringField(record, "customer_phone"),
		CompanyName:   unionString(record["company_name"]),
		Address:       stringField(record, "address"),
		City:          stringField(record, "city"),
		PostalCode:    stringField(record, "postal_code"),
		Notes:         unionString(record["notes"]),
	}

	if ev.Subtotal, err = decimalField(record, "subtotal"); err != nil {
		return nil, err
	}
	if ev.DiscountAmount, err = decimalField(record, "discount_amount"); err != nil {
		return nil, err
	}
	if ev.Total, err = decimalField(record, "total"); err != nil {
		return nil, err
	}

	rawItems, _ := record["items"].([]interface{})
	for i, raw := range rawItems {
		itemRecord, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("item %d is not a record", i)
		}
		item := OrderCreatedItem{
			TireID:   longField(itemRecord, "tire_id"),
			TireName: unionString(itemRecord["tire_name"]),
			Quantity: int(longField(itemRecord, "quantity")),
		}
		if item.UnitPrice, err = decimalField(itemRecord, "unit_price"); err != nil {
			return nil, err
		}
		if item.TotalPrice, err = decimalField(itemRecord, "total_price"); err != nil {
			return nil, err
		}
		ev.Items = append(ev.Items, item)
	}

	return ev, nil
}

// nullableString wraps a string for a ["null","string"] union; empty
// strings travel as null.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return map[string]interface{}{"string": s}
}

func unionString(v interface{}) string {
	wrapper, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	s, _ := wrapper["string"].(string)
	return s
}

func stringField(record map[string]interface{}, name string) string {
	s, _ := record[name].(string)
	return s
}

func longField(record map[string]interface{}, name string) int64 {
	n, _ := record[name].(int64)
	return n
}

func decimalField(record map[string]interface{}, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(stringField(record, name))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %s: %w", name, err)
	}
	return d, nil
}
