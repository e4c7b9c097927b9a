package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/models"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// Catalog defines the menu collaborator the engine reads from
type Catalog interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	// ListMenuItems returns available items, optionally narrowed to a
	// category and/or a free-text query over name and description.
	ListMenuItems(ctx context.Context, categoryID, query string) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
}

// InMemoryCatalog implements Catalog with seed data
type InMemoryCatalog struct {
	categories []models.Category
	items      map[string]models.MenuItem
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// NewInMemoryCatalog creates a catalog seeded with the house menu
func NewInMemoryCatalog() *InMemoryCatalog {
	categories := []models.Category{
		{ID: "burgers", Name: "Burgers"},
		{ID: "pizza", Name: "Pizza"},
		{ID: "sides", Name: "Sides"},
		{ID: "drinks", Name: "Drinks"},
	}

	sizeVariants := []models.Variant{
		{Name: "Regular", PriceModifier: decimal.Zero},
		{Name: "Large", PriceModifier: price("2.50")},
	}

	items := map[string]models.MenuItem{
		"1": {ID: "1", Name: "Classic Burger", Description: "Beef patty, lettuce, tomato", CategoryID: "burgers", BasePrice: price("11.99"), Variants: sizeVariants, Available: true},
		"2": {ID: "2", Name: "Cheese Burger", Description: "Classic with cheddar", CategoryID: "burgers", BasePrice: price("12.99"), Variants: sizeVariants, Available: true},
		"3": {ID: "3", Name: "Veggie Burger", Description: "Grilled halloumi and greens", CategoryID: "burgers", BasePrice: price("10.99"), Variants: sizeVariants, Available: true},
		"4": {ID: "4", Name: "Margherita Pizza", Description: "Tomato, mozzarella, basil", CategoryID: "pizza", BasePrice: price("14.99"), Variants: sizeVariants, Available: true},
		"5": {ID: "5", Name: "Pepperoni Pizza", Description: "Loaded pepperoni", CategoryID: "pizza", BasePrice: price("16.99"), Variants: sizeVariants, Available: true},
		"6": {ID: "6", Name: "Fries", CategoryID: "sides", BasePrice: price("2.99"), Available: true},
		"7": {ID: "7", Name: "Onion Rings", CategoryID: "sides", BasePrice: price("3.99"), Available: true},
		"8": {ID: "8", Name: "Cola", CategoryID: "drinks", BasePrice: price("1.99"), Available: true},
		"9": {ID: "9", Name: "Lemonade", CategoryID: "drinks", BasePrice: price("2.49"), Available: false},
	}

	return &InMemoryCatalog{
		categories: categories,
		items:      items,
	}
}

// ListCategories returns all categories
func (c *InMemoryCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out, nil
}

// ListMenuItems returns available items matching the category and query
func (c *InMemoryCatalog) ListMenuItems(ctx context.Context, categoryID, query string) ([]models.MenuItem, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]models.MenuItem, 0, len(c.items))
	for _, item := range c.items {
		if !item.Available {
			continue
		}
		if categoryID != "" && item.CategoryID != categoryID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		out = append(out, item)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetMenuItem returns one item by id, available or not
func (c *InMemoryCatalog) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item, ok := c.items[id]
	if !ok {
		return nil, ErrMenuItemNotFound
	}
	return &item, nil
}
