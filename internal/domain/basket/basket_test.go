package basket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lewisgroup/storefront/internal/domain/catalog"
	"github.com/lewisgroup/storefront/internal/domain/shared"
)

func newTestProduct(t *testing.T, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Velvet Sofa", "Three-seater", 79900, "Furniture", "Sofas", stock)
	require.NoError(t, err)
	return p
}

func TestNewBasket(t *testing.T) {
	t.Run("creates empty basket", func(t *testing.T) {
		b, err := NewBasket("alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", b.BuyerID)
		assert.True(t, b.IsEmpty())
	})

	t.Run("rejects empty buyer", func(t *testing.T) {
		_, err := NewBasket("")
		require.Error(t, err)
	})
}

func TestBasketAddItem(t *testing.T) {
	t.Run("full apply when stock covers the request", func(t *testing.T) {
		b, _ := NewBasket("alice")
		p := newTestProduct(t, 20)

		applied, err := b.AddItem(p, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), applied)
		assert.Equal(t, int64(3), b.Quantity(p.ID))
	})

	t.Run("partial apply clamped by stock", func(t *testing.T) {
		b, _ := NewBasket("alice")
		p := newTestProduct(t, 4)

		applied, err := b.AddItem(p, 9)
		require.NoError(t, err)
		assert.Equal(t, int64(4), applied)
		assert.Equal(t, int64(4), b.Quantity(p.ID))
	})

	t.Run("partial apply clamped by per-item ceiling", func(t *testing.T) {
		b, _ := NewBasket("alice")
		p := newTestProduct(t, 100)

		applied, err := b.AddItem(p, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), applied)

		applied, err = b.AddItem(p, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(3), applied)
		assert.Equal(t, int64(PerItemCeiling), b.Quantity(p.ID))
	})

	t.Run("no headroom yields stock error without mutation", func(t *testing.T) {
		b, _ := NewBasket("alice")
		p := newTestProduct(t, 2)

		_, err := b.AddItem(p, 2)
		require.NoError(t, err)

		_, err = b.AddItem(p, 1)
		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INSUFFICIENT_STOCK", derr.Code)
		assert.Equal(t, int64(2), b.Quantity(p.ID))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		b, _ := NewBasket("alice")
		p := newTestProduct(t, 5)
		_, err := b.AddItem(p, 0)
		require.Error(t, err)
	})

	t.Run("existing quantity counts against stock headroom", func(t *testing.T) {
		b, _ := NewBasket("alice")
		p := newTestProduct(t, 5)

		_, err := b.AddItem(p, 3)
		require.NoError(t, err)

		applied, err := b.AddItem(p, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(2), applied)
		assert.Equal(t, int64(5), b.Quantity(p.ID))
	})
}

func TestBasketRemoveItem(t *testing.T) {
	t.Run("decrements the line", func(t *testing.T) {
		b, _ := NewBasket("alice")
		p := newTestProduct(t, 10)
		_, err := b.AddItem(p, 5)
		require.NoError(t, err)

		require.NoError(t, b.RemoveItem(p.ID, 2))
		assert.Equal(t, int64(3), b.Quantity(p.ID))
	})

	t.Run("drops the line at zero or below", func(t *testing.T) {
		b, _ := NewBasket("alice")
		p := newTestProduct(t, 10)
		_, err := b.AddItem(p, 2)
		require.NoError(t, err)

		require.NoError(t, b.RemoveItem(p.ID, 5))
		assert.True(t, b.IsEmpty())
	})

	t.Run("missing line is a no-op", func(t *testing.T) {
		b, _ := NewBasket("alice")
		require.NoError(t, b.RemoveItem(uuid.New(), 1))
		assert.True(t, b.IsEmpty())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		b, _ := NewBasket("alice")
		require.Error(t, b.RemoveItem(uuid.New(), 0))
	})
}

func TestBasketRekey(t *testing.T) {
	b, _ := NewBasket("anon-token")
	require.NoError(t, b.RekeyTo("alice"))
	assert.Equal(t, "alice", b.BuyerID)
	require.Error(t, b.RekeyTo(""))
}
