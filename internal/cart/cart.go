package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/models"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrUnknownVariant  = errors.New("variant is not defined on this item")
	ErrNoSuchLine      = errors.New("line index out of range")
)

// Cart builds the line items of an in-progress order for a single
// authoring session. It is private to that session and never shared
// across terminals, so it needs no locking.
type Cart struct {
	lines []models.CartLine
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// AddLine adds quantity of the given item to the cart. If a line with the
// same (item, variant) combination already exists its quantity is increased;
// otherwise a new line is appended. The unit price is resolved from the
// item's base price plus the chosen variant's modifier.
func (c *Cart) AddLine(item models.MenuItem, quantity int, variant string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	modifier, ok := item.VariantModifier(variant)
	if !ok {
		return ErrUnknownVariant
	}

	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID && c.lines[i].Variant == variant {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, models.CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		Variant:    variant,
		UnitPrice:  item.BasePrice.Add(modifier),
		Quantity:   quantity,
	})

	return nil
}

// UpdateQuantity sets the quantity of the line at index. A quantity of zero
// or less removes the line entirely; a live line never has quantity < 1.
func (c *Cart) UpdateQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrNoSuchLine
	}

	if quantity <= 0 {
		c.lines = append(c.lines[:index], c.lines[index+1:]...)
		return nil
	}

	c.lines[index].Quantity = quantity
	return nil
}

// RemoveLine removes the line at index unconditionally
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrNoSuchLine
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Subtotal recomputes the cart total from the current lines
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the current line set, ready to commit
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Committer persists a drafted line set as a new order
type Committer interface {
	Commit(lines []models.CartLine, orderType models.OrderType, tableID string) (models.Order, error)
}

// Commit hands the drafted lines to the order store. Nothing the cart did
// is visible to other terminals before this point. The draft is cleared on
// success so the session can start a new order.
func (c *Cart) Commit(store Committer, orderType models.OrderType, tableID string) (models.Order, error) {
	order, err := store.Commit(c.Lines(), orderType, tableID)
	if err != nil {
		return models.Order{}, err
	}
	c.lines = nil
	return order, nil
}
