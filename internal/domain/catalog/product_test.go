package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("Oak Dining Table", "Seats six", 45000, "Furniture", "Tables", 12)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Oak Dining Table", product.Name)
		assert.Equal(t, int64(45000), product.Price)
		assert.Equal(t, "Furniture", product.Category)
		assert.Equal(t, "Tables", product.Type)
		assert.Equal(t, int64(12), product.QuantityInStock)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("", "desc", 100, "Furniture", "Tables", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with non-positive price", func(t *testing.T) {
		_, err := NewProduct("Table", "desc", 0, "Furniture", "Tables", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "greater than zero")
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct("Table", "desc", 100, "Furniture", "Tables", -1)
		require.Error(t, err)
	})

	t.Run("fails with unknown category", func(t *testing.T) {
		_, err := NewProduct("Table", "desc", 100, "Garden", "Tables", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown product category")
	})

	t.Run("fails when type does not match category", func(t *testing.T) {
		_, err := NewProduct("Table", "desc", 100, "Audio", "Tables", 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong")
	})
}

func TestProductStock(t *testing.T) {
	newProduct := func(stock int64) *Product {
		p, err := NewProduct("Synth", "Analog polysynth", 89900, "Audio", "Synthesizers", stock)
		require.NoError(t, err)
		return p
	}

	t.Run("decrement clamps at zero", func(t *testing.T) {
		p := newProduct(3)
		p.DecrementStock(5)
		assert.Equal(t, int64(0), p.QuantityInStock)
	})

	t.Run("decrement reduces stock", func(t *testing.T) {
		p := newProduct(10)
		p.DecrementStock(4)
		assert.Equal(t, int64(6), p.QuantityInStock)
	})

	t.Run("restore adds stock back", func(t *testing.T) {
		p := newProduct(2)
		require.NoError(t, p.RestoreStock(3))
		assert.Equal(t, int64(5), p.QuantityInStock)
	})

	t.Run("restore rejects negative quantity", func(t *testing.T) {
		p := newProduct(2)
		require.Error(t, p.RestoreStock(-1))
	})
}

func TestProductAvailableFor(t *testing.T) {
	p, err := NewProduct("Fridge", "Frost free", 129900, "Appliances", "Fridges", 8)
	require.NoError(t, err)

	t.Run("bounded by stock", func(t *testing.T) {
		assert.Equal(t, int64(5), p.AvailableFor(3, 10))
	})

	t.Run("bounded by per-item ceiling", func(t *testing.T) {
		p.QuantityInStock = 50
		assert.Equal(t, int64(4), p.AvailableFor(6, 10))
	})

	t.Run("never negative", func(t *testing.T) {
		p.QuantityInStock = 2
		assert.Equal(t, int64(0), p.AvailableFor(5, 10))
	})
}

func TestValidateTaxonomy(t *testing.T) {
	assert.NoError(t, ValidateTaxonomy("Bedroom", "Mattresses"))
	assert.Error(t, ValidateTaxonomy("Bedroom", "Sofas"))
	assert.Error(t, ValidateTaxonomy("Outdoors", "Sofas"))
	assert.NotEmpty(t, TypesForCategory("Appliances"))
	assert.Len(t, Categories(), 4)
}
