package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/codstore/internal/domain"
)

func TestAddProduct_StockGate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, 2000, domain.DiscountNone, "0", 3)
	c := f.cart(t)

	require.NoError(t, f.cartUC.AddProduct(ctx, c, p.ID, 2))
	assert.ErrorIs(t, f.cartUC.AddProduct(ctx, c, p.ID, 2), domain.ErrOutOfStock)
	require.NoError(t, f.cartUC.AddProduct(ctx, c, p.ID, 1))
	assert.Equal(t, 3, c.Quantity(p.ID))

	assert.ErrorIs(t, f.cartUC.AddProduct(ctx, c, p.ID, 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, f.cartUC.AddProduct(ctx, c, uuid.New(), 1), domain.ErrNotFound)
}

func TestAddProduct_Unavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, 2000, domain.DiscountNone, "0", 3)
	p.Available = false
	require.NoError(t, f.products.Save(ctx, p))

	c := f.cart(t)
	assert.ErrorIs(t, f.cartUC.AddProduct(ctx, c, p.ID, 1), domain.ErrOutOfStock)
	assert.True(t, c.Empty())
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, 2000, domain.DiscountNone, "0", 4)
	c := f.cart(t)
	require.NoError(t, f.cartUC.AddProduct(ctx, c, p.ID, 1))

	require.NoError(t, f.cartUC.SetQuantity(ctx, c, p.ID, 4))
	assert.Equal(t, 4, c.Quantity(p.ID))
	assert.ErrorIs(t, f.cartUC.SetQuantity(ctx, c, p.ID, 5), domain.ErrOutOfStock)
	assert.Equal(t, 4, c.Quantity(p.ID))

	require.NoError(t, f.cartUC.SetQuantity(ctx, c, p.ID, 0))
	assert.True(t, c.Empty())
}

func TestCartSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, 2000, domain.DiscountNone, "0", 4)
	sid := uuid.NewString()

	c, err := f.cartUC.Open(ctx, sid)
	require.NoError(t, err)
	require.NoError(t, f.cartUC.AddProduct(ctx, c, p.ID, 2))

	again, err := f.cartUC.Open(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 2, again.TotalItems())

	require.NoError(t, f.cartUC.Clear(ctx, again))
	again, err = f.cartUC.Open(ctx, sid)
	require.NoError(t, err)
	assert.True(t, again.Empty())
}
