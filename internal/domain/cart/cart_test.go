package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlucafe/pos/internal/domain/catalog"
)

func newTestItem(id int64, name string, price int64, class catalog.TempClass) catalog.MenuItem {
	return catalog.MenuItem{
		ID:        id,
		Name:      name,
		Price:     decimal.NewFromInt(price),
		Size:      catalog.SizeMedium,
		TempClass: class,
		Available: true,
	}
}

func TestAdd_MergesDuplicateLines(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	c := New()

	require.NoError(t, c.Add(latte, catalog.SizeMedium, 2))
	require.NoError(t, c.Add(latte, catalog.SizeMedium, 3))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 5, c.Lines()[0].Quantity)
}

func TestAdd_DifferentSizesAreSeparateLines(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	c := New()

	require.NoError(t, c.Add(latte, catalog.SizeMedium, 1))
	require.NoError(t, c.Add(latte, catalog.SizeLarge, 1))

	assert.Equal(t, 2, c.Len())
}

func TestAdd_SnapshotsItemAttributes(t *testing.T) {
	mocha := newTestItem(2, "Mocha", 55000, catalog.ClassBoth)
	c := New()
	require.NoError(t, c.Add(mocha, catalog.SizeLarge, 1))

	line := c.Lines()[0]
	assert.Equal(t, "Mocha", line.Name)
	assert.True(t, decimal.NewFromInt(55000).Equal(line.Price))
	assert.Equal(t, catalog.ClassBoth, line.TempClass)
}

func TestAdd_RejectsInvalidQuantity(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	c := New()

	err := c.Add(latte, catalog.SizeMedium, 0)
	var qtyErr *InvalidQuantityError
	require.ErrorAs(t, err, &qtyErr)
	assert.Equal(t, int64(1), qtyErr.ItemID)
	assert.Equal(t, 0, c.Len())
}

func TestAdd_RejectsUnavailableItem(t *testing.T) {
	soldOut := newTestItem(3, "Seasonal Special", 60000, catalog.ClassCold)
	soldOut.Available = false
	c := New()

	err := c.Add(soldOut, catalog.SizeSmall, 1)
	var unavailErr *ItemUnavailableError
	require.ErrorAs(t, err, &unavailErr)
	assert.Equal(t, "Seasonal Special", unavailErr.Name)
}

func TestAdd_RejectsInvalidSize(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	c := New()

	err := c.Add(latte, catalog.Size("XL"), 1)
	var sizeErr *catalog.InvalidSizeError
	require.ErrorAs(t, err, &sizeErr)
}

func TestRemove_MissingLineLeavesCartUnchanged(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	c := New()
	require.NoError(t, c.Add(latte, catalog.SizeMedium, 2))

	err := c.Remove(1, catalog.SizeLarge)
	require.ErrorIs(t, err, ErrLineNotFound)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestRemove_DeletesMatchingLine(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	mocha := newTestItem(2, "Mocha", 55000, catalog.ClassBoth)
	c := New()
	require.NoError(t, c.Add(latte, catalog.SizeMedium, 2))
	require.NoError(t, c.Add(mocha, catalog.SizeLarge, 1))

	require.NoError(t, c.Remove(1, catalog.SizeMedium))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, int64(2), c.Lines()[0].ItemID)
}

func TestTotal_RecomputedAfterEveryMutation(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	mocha := newTestItem(2, "Mocha", 55000, catalog.ClassBoth)
	c := New()

	assert.True(t, decimal.Zero.Equal(c.Total()))

	require.NoError(t, c.Add(latte, catalog.SizeMedium, 2))
	require.NoError(t, c.Add(mocha, catalog.SizeLarge, 1))
	assert.True(t, decimal.NewFromInt(145000).Equal(c.Total()))

	require.NoError(t, c.Remove(2, catalog.SizeLarge))
	assert.True(t, decimal.NewFromInt(90000).Equal(c.Total()))
}

func TestClear(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	c := New()
	require.NoError(t, c.Add(latte, catalog.SizeMedium, 2))

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.True(t, decimal.Zero.Equal(c.Total()))
}

func TestStore_PerSessionCarts(t *testing.T) {
	latte := newTestItem(1, "Latte", 45000, catalog.ClassHot)
	store := NewStore()

	a := store.Get("session-a")
	require.NoError(t, a.Add(latte, catalog.SizeMedium, 1))

	b := store.Get("session-b")
	assert.Equal(t, 0, b.Len())
	assert.Same(t, a, store.Get("session-a"))

	store.Drop("session-a")
	assert.Equal(t, 0, store.Get("session-a").Len())
}
