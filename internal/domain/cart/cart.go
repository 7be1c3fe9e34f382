// Package cart implements the per-session shopping cart. Carts live purely
// in memory: they are discarded when the session ends and cleared after a
// successful order submission.
package cart

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/tlucafe/pos/internal/domain/catalog"
)

var (
	// ErrLineNotFound is returned by Remove when no line matches the given
	// item and size. The cart is left unchanged; callers treat this as a
	// warning, not a failure.
	ErrLineNotFound = errors.New("cart line not found")
)

// InvalidQuantityError indicates an add with a quantity below 1.
type InvalidQuantityError struct {
	ItemID   int64
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity %d for item %d: must be at least 1", e.Quantity, e.ItemID)
}

// ItemUnavailableError indicates an add of an item whose availability flag
// is off.
type ItemUnavailableError struct {
	ItemID int64
	Name   string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("item %q is not available", e.Name)
}

// Line is one aggregated (item, size, quantity) entry. Name, price, and
// temperature class are snapshots of the item at add time; order submission
// re-reads live prices from the catalog.
type Line struct {
	ItemID    int64
	Name      string
	Size      catalog.Size
	Price     decimal.Decimal
	TempClass catalog.TempClass
	Quantity  int
}

// Subtotal returns price × quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered collection of lines. At most one line exists per
// (item ID, size) pair; duplicate adds are merged by summing quantities.
// Cart is not safe for concurrent use; Store serializes access per session.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts quantity units of the item in the given size into the cart.
// If a line for (item, size) already exists its quantity is incremented;
// otherwise a new line is appended carrying a snapshot of the item's
// current name, price, and temperature class.
func (c *Cart) Add(item catalog.MenuItem, size catalog.Size, quantity int) error {
	if quantity < 1 {
		return &InvalidQuantityError{ItemID: item.ID, Quantity: quantity}
	}
	if !size.Valid() {
		return &catalog.InvalidSizeError{Size: string(size)}
	}
	if !item.Available {
		return &ItemUnavailableError{ItemID: item.ID, Name: item.Name}
	}

	for i := range c.lines {
		if c.lines[i].ItemID == item.ID && c.lines[i].Size == size {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		Size:      size,
		Price:     item.Price,
		TempClass: item.TempClass,
		Quantity:  quantity,
	})
	return nil
}

// Remove deletes the line matching (itemID, size). It returns
// ErrLineNotFound and leaves the cart unchanged when no line matches.
func (c *Cart) Remove(itemID int64, size catalog.Size) error {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID && c.lines[i].Size == size {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Lines returns a copy of the current cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines in the cart.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total recomputes the sum of price × quantity over all lines. It is never
// cached; every call walks the current lines.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Clear empties the cart. Called after a successful order submission.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}
