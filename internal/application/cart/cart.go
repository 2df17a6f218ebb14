package cart

import (
	"time"

	"github.com/google/uuid"

	app "github.com/NenadVrtue/webshop-triangle/internal/application/order"
	"github.com/NenadVrtue/webshop-triangle/pkg/logger"
)

// StorageKey is the fixed key the cart snapshot is persisted under.
const StorageKey = "webshop-cart"

// Line is one staged (tire, quantity) pairing. The id is a local
// surrogate distinguishing repeated adds over time; it is never sent to
// the server.
type Line struct {
	ID       string    `json:"id"`
	TireID   int64     `json:"tire_id"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Store is the persistence port for the cart snapshot. Implementations
// must treat an unreadable snapshot as an empty cart, never as a failure
// the user sees.
type Store interface {
	Load() ([]Line, error)
	Save(lines []Line) error
}

// AddOutcome tells the UI whether an add created a new line or bumped an
// existing one, so it can word the notification accordingly.
type AddOutcome int

const (
	LineAdded AddOutcome = iota
	QuantityIncreased
)

// Cart is the pre-order staging area. It is single-writer within one
// session; every mutation re-persists the full snapshot synchronously.
type Cart struct {
	store  Store
	log    logger.Logger
	lines  []Line
	loaded bool
}

func New(store Store, log logger.Logger) *Cart {
	return &Cart{store: store, log: log}
}

// Load restores the persisted snapshot. A load failure degrades to an
// empty cart and is logged, not surfaced.
func (c *Cart) Load() {
	lines, err := c.store.Load()
	if err != nil {
		c.log.Warn("cart snapshot unreadable, starting empty", logger.Error(err))
		lines = nil
	}
	c.lines = lines
	c.loaded = true
}

// Ready reports whether the persisted snapshot has been loaded, so an
// empty cart is not rendered as confirmed-empty before load completes.
func (c *Cart) Ready() bool {
	return c.loaded
}

// Add stages quantity units of the given tire. An existing line for the
// same tire is incremented instead of duplicated.
func (c *Cart) Add(tireID int64, quantity int) (AddOutcome, Line) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.lines {
		if c.lines[i].TireID == tireID {
			c.lines[i].Quantity += quantity
			c.persist()
			return QuantityIncreased, c.lines[i]
		}
	}

	line := Line{
		ID:       uuid.NewString(),
		TireID:   tireID,
		Quantity: quantity,
		AddedAt:  time.Now().UTC(),
	}
	c.lines = append(c.lines, line)
	c.persist()
	return LineAdded, line
}

// Remove deletes the line. Removing an absent line is a no-op.
func (c *Cart) Remove(lineID string) {
	kept := c.lines[:0]
	removed := false
	for _, l := range c.lines {
		if l.ID == lineID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	c.lines = kept
	if removed {
		c.persist()
	}
}

// SetQuantity overwrites a line's quantity. Zero or less removes the line,
// a zero-quantity line is never persisted.
func (c *Cart) SetQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		c.Remove(lineID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Clear empties the cart, called after a successful order submission.
func (c *Cart) Clear() {
	c.lines = nil
	c.persist()
}

// Lines returns a copy of the staged lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// DistinctLineCount is the number of staged lines.
func (c *Cart) DistinctLineCount() int {
	return len(c.lines)
}

// TotalQuantity is the sum of all staged quantities.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// Contains reports whether any line references the given tire.
func (c *Cart) Contains(tireID int64) bool {
	for _, l := range c.lines {
		if l.TireID == tireID {
			return true
		}
	}
	return false
}

// Items converts the staged lines into submission input.
func (c *Cart) Items() []app.LineInput {
	items := make([]app.LineInput, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, app.LineInput{TireID: l.TireID, Quantity: l.Quantity})
	}
	return items
}

func (c *Cart) persist() {
	if err := c.store.Save(c.Lines()); err != nil {
		c.log.Error("cart snapshot not saved", logger.Error(err))
	}
}
