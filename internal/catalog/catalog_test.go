package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalog_AddAssignsMonotonicIDs(t *testing.T) {
	c := New(zap.NewNop())

	id1, err := c.Add("a", "x", decimal.NewFromInt(10), decimal.NewFromFloat(0.5), "")
	require.NoError(t, err)
	id2, err := c.Add("b", "y", decimal.NewFromInt(20), decimal.Zero, "")
	require.NoError(t, err)

	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)

	require.NoError(t, c.Delete(id2))
	id3, err := c.Add("c", "z", decimal.NewFromInt(1), decimal.Zero, "")
	require.NoError(t, err)
	assert.Equal(t, 3, id3, "deleted ids must not be reused")
}

func TestCatalog_AddRejectsNegativeAmounts(t *testing.T) {
	c := New(zap.NewNop())

	_, err := c.Add("a", "x", decimal.NewFromInt(-1), decimal.Zero, "")
	assert.ErrorIs(t, err, ErrInvalidProduct)

	_, err = c.Add("a", "x", decimal.Zero, decimal.NewFromInt(-1), "")
	assert.ErrorIs(t, err, ErrInvalidProduct)

	assert.Empty(t, c.List())
}

func TestCatalog_FindByIDMissing(t *testing.T) {
	c := New(zap.NewNop())

	_, err := c.FindByID(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_Edit(t *testing.T) {
	c := New(zap.NewNop())
	id, err := c.Add("phone", "Smartphones", decimal.NewFromInt(100), decimal.NewFromFloat(0.2), "old")
	require.NoError(t, err)

	name := "phone pro"
	price := decimal.NewFromInt(150)
	p, err := c.Edit(id, ProductUpdate{Name: &name, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, id, p.ID)
	assert.Equal(t, "phone pro", p.Name)
	assert.True(t, p.Price.Equal(price))
	assert.Equal(t, "Smartphones", p.Category)
	assert.Equal(t, "old", p.Description)

	stored, err := c.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestCatalog_EditInvalidLeavesProductUnchanged(t *testing.T) {
	c := New(zap.NewNop())
	id, err := c.Add("phone", "Smartphones", decimal.NewFromInt(100), decimal.Zero, "")
	require.NoError(t, err)

	name := "renamed"
	negative := decimal.NewFromInt(-5)
	_, err = c.Edit(id, ProductUpdate{Name: &name, Weight: &negative})
	require.ErrorIs(t, err, ErrInvalidProduct)

	p, err := c.FindByID(id)
	require.NoError(t, err)
	assert.Equal(t, "phone", p.Name)
}

func TestCatalog_EditAndDeleteMissing(t *testing.T) {
	c := New(zap.NewNop())

	_, err := c.Edit(7, ProductUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, c.Delete(7), ErrNotFound)
}

func TestCatalog_LastKnownSurvivesDelete(t *testing.T) {
	c := New(zap.NewNop())
	id, err := c.Add("a", "x", decimal.NewFromInt(10), decimal.Zero, "")
	require.NoError(t, err)

	price := decimal.NewFromInt(12)
	_, err = c.Edit(id, ProductUpdate{Price: &price})
	require.NoError(t, err)
	require.NoError(t, c.Delete(id))

	_, err = c.FindByID(id)
	assert.ErrorIs(t, err, ErrNotFound)

	p, ok := c.LastKnown(id)
	require.True(t, ok)
	assert.True(t, p.Price.Equal(price))

	_, ok = c.LastKnown(99)
	assert.False(t, ok)
}

func TestSeed(t *testing.T) {
	c := New(zap.NewNop())
	require.NoError(t, Seed(c))

	products := c.List()
	require.Len(t, products, 3)
	for i, p := range products {
		assert.Equal(t, i+1, p.ID)
	}
	assert.Equal(t, "Samsung Galaxy S21", products[0].Name)
	assert.True(t, products[1].Weight.Equal(decimal.RequireFromString("1.8")))
}
