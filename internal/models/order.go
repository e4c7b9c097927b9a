package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType represents the fulfillment mode of an order
type OrderType string

const (
	DineIn   OrderType = "dine-in"
	Takeaway OrderType = "takeaway"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether the status ends the order's lifecycle
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CartLine is one menu item plus chosen variant and quantity within an order.
// Lines sharing (MenuItemID, Variant) are merged, never duplicated.
type CartLine struct {
	MenuItemID string          `json:"menuItemId"`
	Name       string          `json:"name"`
	Variant    string          `json:"variant,omitempty"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
}

// Total returns unit price times quantity for this line
func (l CartLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is a committed customer order. Once committed its identity and
// history are owned by the order store; terminals only hold copies.
type Order struct {
	ID        string      `json:"id"`
	Number    int         `json:"orderNumber"`
	Type      OrderType   `json:"type"`
	TableID   string      `json:"tableId,omitempty"`
	Lines     []CartLine  `json:"lines"`
	Status    OrderStatus `json:"status"`
	Version   int64       `json:"version"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Subtotal recomputes the sum of line totals. It is never cached, so it
// cannot drift from the line set.
func (o Order) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range o.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Clone returns a deep copy safe to hand to callers
func (o Order) Clone() Order {
	out := o
	out.Lines = make([]CartLine, len(o.Lines))
	copy(out.Lines, o.Lines)
	return out
}
