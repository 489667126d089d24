package cart

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/pricing"
)

func product(price int64, dt domain.DiscountType, dv string) *domain.Product {
	return &domain.Product{
		ID:            uuid.New(),
		Name:          "p",
		Price:         price,
		DiscountType:  dt,
		DiscountValue: decimal.RequireFromString(dv),
		Images:        []string{"a.jpg", "b.jpg"},
		Stock:         50,
		Available:     true,
	}
}

func TestAdd_SameProductMergesQuantities(t *testing.T) {
	var c Cart
	p := product(1000, domain.DiscountNone, "0")
	require.NoError(t, c.Add(p, 2))
	require.NoError(t, c.Add(p, 3))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
	assert.Equal(t, "a.jpg", c.Items[0].Image)
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	var c Cart
	p := product(1000, domain.DiscountNone, "0")
	assert.ErrorIs(t, c.Add(p, 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(p, -2), domain.ErrInvalidQuantity)
	assert.True(t, c.Empty())
}

func TestAdd_SnapshotIgnoresLaterCatalogChanges(t *testing.T) {
	var c Cart
	p := product(1000, domain.DiscountPercentage, "10")
	require.NoError(t, c.Add(p, 1))

	p.Price = 5000
	p.DiscountType = domain.DiscountNone
	require.NoError(t, c.Add(p, 1))

	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(1800)))
}

func TestRemove_UnknownIsNoop(t *testing.T) {
	var c Cart
	p := product(1000, domain.DiscountNone, "0")
	require.NoError(t, c.Add(p, 1))
	before := c.clone()

	c.Remove(uuid.New())
	assert.Equal(t, before, c)
}

func TestUpdateQuantity(t *testing.T) {
	var c Cart
	p := product(1000, domain.DiscountNone, "0")
	require.NoError(t, c.Add(p, 1))

	c.UpdateQuantity(p.ID, 4)
	once := c.clone()
	c.UpdateQuantity(p.ID, 4)
	assert.Equal(t, once, c, "update is idempotent")
	assert.Equal(t, 4, c.Quantity(p.ID))

	c.UpdateQuantity(uuid.New(), 3)
	assert.Equal(t, once, c, "unknown id is ignored")

	c.UpdateQuantity(p.ID, 0)
	assert.True(t, c.Empty())
}

func TestTotals(t *testing.T) {
	var c Cart
	a := product(100000, domain.DiscountPercentage, "15")
	b := product(25000, domain.DiscountFixed, "5000")
	require.NoError(t, c.Add(a, 2))
	require.NoError(t, c.Add(b, 1))

	assert.Equal(t, 3, c.TotalItems())
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(190000)), "got %s", c.TotalPrice())

	c.Clear()
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}

// Random operation sequences must keep TotalPrice equal to the per-line formula.
func TestTotalPriceInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	catalog := []*domain.Product{
		product(100000, domain.DiscountPercentage, "15"),
		product(999, domain.DiscountPercentage, "33.5"),
		product(2500, domain.DiscountFixed, "300"),
		product(400, domain.DiscountFixed, "900"),
		product(12000, domain.DiscountNone, "0"),
	}
	var c Cart
	for step := 0; step < 500; step++ {
		p := catalog[rng.Intn(len(catalog))]
		switch rng.Intn(4) {
		case 0, 1:
			require.NoError(t, c.Add(p, 1+rng.Intn(3)))
		case 2:
			c.UpdateQuantity(p.ID, rng.Intn(5)-1)
		case 3:
			c.Remove(p.ID)
		}

		want := decimal.Zero
		seen := map[uuid.UUID]bool{}
		for _, it := range c.Items {
			require.False(t, seen[it.ProductID], "duplicate line for %s", it.ProductID)
			seen[it.ProductID] = true
			require.GreaterOrEqual(t, it.Quantity, 1)
			want = want.Add(pricing.EffectivePrice(it.Price, it.DiscountType, it.DiscountValue).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		require.True(t, c.TotalPrice().Equal(want), "step %d: %s != %s", step, c.TotalPrice(), want)
	}
}
