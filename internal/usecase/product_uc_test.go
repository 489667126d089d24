package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/codstore/internal/adapters/repo/memory"
	"github.com/phenrril/codstore/internal/domain"
)

func newProductUC() *ProductUC {
	return &ProductUC{Products: memory.NewProductRepo(), Categories: memory.NewCategoryRepo()}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hand Bags":        "hand-bags",
		"  Shoes & Boots ": "shoes-boots",
		"حقائب يد":         "حقائب-يد",
		"!!!":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestCategorySlugsStayUnique(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()

	a, err := uc.CreateCategory(ctx, "Watches")
	require.NoError(t, err)
	b, err := uc.CreateCategory(ctx, "watches")
	require.NoError(t, err)
	assert.Equal(t, "watches", a.Slug)
	assert.Equal(t, "watches-2", b.Slug)

	renamed, err := uc.RenameCategory(ctx, a.ID, "Watches")
	require.NoError(t, err)
	assert.Equal(t, "watches", renamed.Slug)

	_, err = uc.CreateCategory(ctx, "  ")
	var verrs domain.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestProductCreateValidates(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()

	err := uc.Create(ctx, &domain.Product{Name: "Lamp", Price: -1, Stock: -2})
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("price"))
	assert.True(t, verrs.Has("stock"))

	missing := uuid.New()
	err = uc.Create(ctx, &domain.Product{Name: "Lamp", Price: 10, CategoryID: &missing})
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("category_id"))

	p := &domain.Product{Name: "Lamp", Price: 10, Stock: 2, Available: true}
	require.NoError(t, uc.Create(ctx, p))
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, domain.DiscountNone, p.DiscountType)
	assert.NotNil(t, p.Images)
}

func TestProductUpdateAndStock(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()
	p := &domain.Product{Name: "Lamp", Price: 10, Stock: 2, Available: true}
	require.NoError(t, uc.Create(ctx, p))

	upd, err := uc.Update(ctx, p.ID, &domain.Product{Name: "Desk lamp", Price: 12, Stock: 2, Available: true})
	require.NoError(t, err)
	assert.Equal(t, p.ID, upd.ID)
	assert.Equal(t, p.CreatedAt, upd.CreatedAt)

	require.NoError(t, uc.SetStock(ctx, p.ID, 7))
	got, err := uc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)
	assert.Equal(t, "Desk lamp", got.Name)

	assert.Error(t, uc.SetStock(ctx, p.ID, -1))
	assert.ErrorIs(t, uc.SetStock(ctx, uuid.New(), 1), domain.ErrNotFound)
	_, err = uc.Update(ctx, uuid.New(), &domain.Product{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	uc := newProductUC()
	c, err := uc.CreateCategory(ctx, "Bags")
	require.NoError(t, err)
	p := &domain.Product{Name: "Tote", Price: 10, CategoryID: &c.ID}
	require.NoError(t, uc.Create(ctx, p))

	require.NoError(t, uc.DeleteCategory(ctx, c.ID))
	cats, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
	assert.ErrorIs(t, uc.DeleteCategory(ctx, c.ID), domain.ErrNotFound)
}
