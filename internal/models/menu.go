package models

import "github.com/shopspring/decimal"

// Category groups menu items for browsing
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Variant is a named option on a menu item with a price adjustment (e.g. size)
type Variant struct {
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

// MenuItem represents a dish offered by the catalog.
// Menu items are owned by the catalog and are read-only to the engine.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"categoryId"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Variants    []Variant       `json:"variants,omitempty"`
	Available   bool            `json:"available"`
}

// VariantModifier returns the price modifier for the named variant.
// An empty variant name is always valid and carries no modifier.
func (m MenuItem) VariantModifier(name string) (decimal.Decimal, bool) {
	if name == "" {
		return decimal.Zero, true
	}
	for _, v := range m.Variants {
		if v.Name == name {
			return v.PriceModifier, true
		}
	}
	return decimal.Zero, false
}
