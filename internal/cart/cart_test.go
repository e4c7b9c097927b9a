package cart

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-pos/internal/models"
)

func testBurger() models.MenuItem {
	return models.MenuItem{
		ID:         "10",
		Name:       "Classic Burger",
		CategoryID: "burgers",
		BasePrice:  decimal.RequireFromString("11.99"),
		Variants: []models.Variant{
			{Name: "Regular", PriceModifier: decimal.Zero},
			{Name: "Large", PriceModifier: decimal.RequireFromString("2.50")},
		},
		Available: true,
	}
}

func testFries() models.MenuItem {
	return models.MenuItem{
		ID:         "11",
		Name:       "Fries",
		CategoryID: "sides",
		BasePrice:  decimal.RequireFromString("2.99"),
		Available:  true,
	}
}

func TestCart_AddLineMergesSameItemAndVariant(t *testing.T) {
	c := New()

	require.NoError(t, c.AddLine(testBurger(), 1, ""))
	require.NoError(t, c.AddLine(testBurger(), 2, ""))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Lines()[0].Quantity)
}

func TestCart_AddLineKeepsVariantsDistinct(t *testing.T) {
	c := New()

	require.NoError(t, c.AddLine(testBurger(), 1, "Large"))
	require.NoError(t, c.AddLine(testBurger(), 1, "Regular"))

	require.Equal(t, 2, c.Len())

	lines := c.Lines()
	assert.Equal(t, "Large", lines[0].Variant)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("14.49")),
		"Large burger should cost base plus modifier, got %s", lines[0].UnitPrice)
	assert.Equal(t, "Regular", lines[1].Variant)
	assert.True(t, lines[1].UnitPrice.Equal(decimal.RequireFromString("11.99")))
}

func TestCart_AddLineValidation(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		variant  string
		wantErr  error
	}{
		{name: "zero quantity", quantity: 0, wantErr: ErrInvalidQuantity},
		{name: "negative quantity", quantity: -3, wantErr: ErrInvalidQuantity},
		{name: "unknown variant", quantity: 1, variant: "Mega", wantErr: ErrUnknownVariant},
		{name: "empty variant is always valid", quantity: 1, variant: "", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			err := c.AddLine(testBurger(), tt.quantity, tt.variant)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, c.Len(), "failed add must not touch the cart")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCart_UpdateQuantityRemovesAtZeroOrBelow(t *testing.T) {
	for _, qty := range []int{0, -1} {
		c := New()
		require.NoError(t, c.AddLine(testBurger(), 2, ""))
		require.NoError(t, c.AddLine(testFries(), 1, ""))

		require.NoError(t, c.UpdateQuantity(0, qty))

		require.Equal(t, 1, c.Len())
		assert.Equal(t, "11", c.Lines()[0].MenuItemID)
	}
}

func TestCart_UpdateQuantitySets(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(testBurger(), 2, ""))

	require.NoError(t, c.UpdateQuantity(0, 5))

	assert.Equal(t, 5, c.Lines()[0].Quantity)
}

func TestCart_UpdateQuantityOutOfRange(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(testBurger(), 1, ""))

	assert.ErrorIs(t, c.UpdateQuantity(1, 2), ErrNoSuchLine)
	assert.ErrorIs(t, c.UpdateQuantity(-1, 2), ErrNoSuchLine)
}

func TestCart_RemoveLine(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(testBurger(), 1, ""))
	require.NoError(t, c.AddLine(testFries(), 1, ""))

	require.NoError(t, c.RemoveLine(0))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Fries", c.Lines()[0].Name)

	assert.ErrorIs(t, c.RemoveLine(5), ErrNoSuchLine)
}

func TestCart_Subtotal(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(testBurger(), 1, ""))
	require.NoError(t, c.AddLine(testFries(), 1, ""))

	assert.True(t, c.Subtotal().Equal(decimal.RequireFromString("14.98")),
		"subtotal = %s, want 14.98", c.Subtotal())
}

func TestCart_SubtotalEmpty(t *testing.T) {
	c := New()
	assert.True(t, c.Subtotal().IsZero())
}

type fakeCommitter struct {
	lines   []models.CartLine
	typ     models.OrderType
	tableID string
	err     error
}

func (f *fakeCommitter) Commit(lines []models.CartLine, orderType models.OrderType, tableID string) (models.Order, error) {
	f.lines = lines
	f.typ = orderType
	f.tableID = tableID
	if f.err != nil {
		return models.Order{}, f.err
	}
	return models.Order{ID: "o1", Lines: lines, Type: orderType, TableID: tableID}, nil
}

func TestCart_Commit(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(testBurger(), 2, ""))

	committer := &fakeCommitter{}
	order, err := c.Commit(committer, models.DineIn, "t1")
	require.NoError(t, err)

	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, models.DineIn, committer.typ)
	assert.Equal(t, "t1", committer.tableID)
	require.Len(t, committer.lines, 1)
	assert.Equal(t, 0, c.Len(), "successful commit clears the draft")
}

func TestCart_CommitFailureKeepsDraft(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(testBurger(), 2, ""))

	committer := &fakeCommitter{err: errors.New("table is not available")}
	_, err := c.Commit(committer, models.DineIn, "t1")
	require.Error(t, err)

	assert.Equal(t, 1, c.Len(), "failed commit must leave the draft intact for retry")
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.AddLine(testBurger(), 1, ""))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}
