package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/phenrril/codstore/internal/cart"
	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/kv"
	"github.com/phenrril/codstore/internal/metrics"
)

// CartUC opens session carts and guards additions against live stock.
type CartUC struct {
	KV       kv.Store
	Products domain.ProductRepo
	Metrics  *metrics.Registry
}

func (uc *CartUC) Open(ctx context.Context, sessionID string) (*cart.Store, error) {
	return cart.Open(ctx, uc.KV, sessionID)
}

// AddProduct checks the live product before adding: it must be available and
// hold enough stock for what is already in the cart plus qty.
func (uc *CartUC) AddProduct(ctx context.Context, c *cart.Store, productID uuid.UUID, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !p.InStock(c.Quantity(productID) + qty) {
		return domain.ErrOutOfStock
	}
	if err := c.Add(ctx, p, qty); err != nil {
		return err
	}
	uc.Metrics.CartMutated("add")
	return nil
}

// SetQuantity re-checks stock when the quantity grows; qty <= 0 removes the line.
func (uc *CartUC) SetQuantity(ctx context.Context, c *cart.Store, productID uuid.UUID, qty int) error {
	if qty > c.Quantity(productID) && c.Quantity(productID) > 0 {
		p, err := uc.Products.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		if !p.InStock(qty) {
			return domain.ErrOutOfStock
		}
	}
	if err := c.UpdateQuantity(ctx, productID, qty); err != nil {
		return err
	}
	uc.Metrics.CartMutated("update")
	return nil
}

func (uc *CartUC) Remove(ctx context.Context, c *cart.Store, productID uuid.UUID) error {
	if err := c.Remove(ctx, productID); err != nil {
		return err
	}
	uc.Metrics.CartMutated("remove")
	return nil
}

func (uc *CartUC) Clear(ctx context.Context, c *cart.Store) error {
	if err := c.Clear(ctx); err != nil {
		return err
	}
	uc.Metrics.CartMutated("clear")
	return nil
}
