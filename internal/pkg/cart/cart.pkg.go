// Package cart holds the in-memory cart of a terminal session.
//
// Lines are keyed by item name: adding an item whose name is already in the
// cart bumps that line's quantity instead of creating a second line. Removal
// and quantity updates address lines by item id.
package cart

import (
	"github.com/samber/lo"
)

// TaxRate is applied to the subtotal of every order.
const TaxRate = 0.05

// Item is what the catalog hands to the cart.
type Item struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
}

type Line struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Amount is Price * Quantity.
func (l Line) Amount() float64 {
	return l.Price * float64(l.Quantity)
}

type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grandTotal"`
}

// ComputeTotals derives tax and grand total from a subtotal.
func ComputeTotals(subtotal float64) Totals {
	tax := subtotal * TaxRate
	return Totals{
		Subtotal:   subtotal,
		Tax:        tax,
		GrandTotal: subtotal + tax,
	}
}

// Cart is not safe for concurrent use; callers serialize access per session.
type Cart struct {
	Items []Line `json:"items"`
}

func New() *Cart {
	return &Cart{Items: []Line{}}
}

// Add inserts item with quantity 1 or increments the line with the same name.
func (c *Cart) Add(item Item) {
	_, idx, found := lo.FindIndexOf(c.Items, func(l Line) bool {
		return l.Name == item.Name
	})
	if found {
		c.Items[idx].Quantity++
		return
	}
	c.Items = append(c.Items, Line{
		ItemID:   item.ItemID,
		Name:     item.Name,
		Price:    item.Price,
		Quantity: 1,
	})
}

// Remove drops every line with the given item id. Absent ids are a no-op.
func (c *Cart) Remove(itemID string) {
	c.Items = lo.Reject(c.Items, func(l Line, _ int) bool {
		return l.ItemID == itemID
	})
}

// SetQuantity overwrites the quantity of the matching line. n is not checked.
func (c *Cart) SetQuantity(itemID string, n int) {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items[i].Quantity = n
		}
	}
}

func (c *Cart) Clear() {
	c.Items = []Line{}
}

// Lines returns a copy of the cart lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.Items))
	copy(out, c.Items)
	return out
}

func (c *Cart) Len() int {
	return len(c.Items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Subtotal() float64 {
	return lo.SumBy(c.Items, func(l Line) float64 {
		return l.Amount()
	})
}

func (c *Cart) Totals() Totals {
	return ComputeTotals(c.Subtotal())
}

// View is the cart as shown on the terminal: lines plus live totals.
type View struct {
	Items []Line `json:"items"`
	Totals
}

func (c *Cart) View() View {
	return View{Items: c.Lines(), Totals: c.Totals()}
}
