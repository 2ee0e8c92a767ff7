package billing

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Cart holds the line items being assembled for a bill. Unknown item
// ids passed to UpdateQuantity or RemoveItem are ignored.
type Cart struct {
	items []LineItem
}

// AddItem appends a line item. The unit price arrives as free text from
// the billing form and must parse to a non-negative number.
func (c *Cart) AddItem(name, unitPrice string, quantity int) (LineItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return LineItem{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(unitPrice), 64)
	if err != nil {
		return LineItem{}, &ValidationError{Field: "unit_price", Reason: "must be a number"}
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return LineItem{}, &ValidationError{Field: "unit_price", Reason: "must be a non-negative number"}
	}
	if quantity < 1 {
		quantity = 1
	}

	item := LineItem{
		ID:        uuid.NewString(),
		Name:      name,
		UnitPrice: round2(price),
		Quantity:  quantity,
	}
	item.Total = round2(item.UnitPrice * float64(item.Quantity))
	c.items = append(c.items, item)
	return item, nil
}

// UpdateQuantity adjusts an item's quantity by delta, clamping the
// result to a minimum of one; removal goes through RemoveItem, never
// through this path. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(id string, delta int) {
	for i := range c.items {
		if c.items[i].ID == id {
			q := c.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.items[i].Quantity = q
			c.items[i].Total = round2(c.items[i].UnitPrice * float64(q))
			return
		}
	}
}

// RemoveItem deletes an item. Unknown ids are a no-op.
func (c *Cart) RemoveItem(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the cart contents.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

// Total is the sum of all line item totals.
func (c *Cart) Total() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Total
	}
	return round2(sum)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
