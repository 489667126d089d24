// Package cart holds the per-session shopping cart. Cart is pure state; Store
// binds a Cart to durable storage for one session.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/pricing"
)

// LineItem snapshots the product at add time; later catalog changes do not reach it.
type LineItem struct {
	ProductID     uuid.UUID           `json:"productId"`
	Name          string              `json:"name"`
	Price         int64               `json:"price"`
	DiscountType  domain.DiscountType `json:"discountType"`
	DiscountValue decimal.Decimal     `json:"discountValue"`
	Image         string              `json:"image"`
	Quantity      int                 `json:"quantity"`
}

func (li LineItem) UnitPrice() decimal.Decimal {
	return pricing.EffectivePrice(li.Price, li.DiscountType, li.DiscountValue)
}

func (li LineItem) Total() decimal.Decimal {
	return pricing.LineTotal(li.UnitPrice(), li.Quantity)
}

type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) index(id uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == id {
			return i
		}
	}
	return -1
}

// Add increments the line for p or appends a fresh snapshot.
func (c *Cart) Add(p *domain.Product, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}
	if i := c.index(p.ID); i >= 0 {
		c.Items[i].Quantity += qty
		return nil
	}
	dt := p.DiscountType
	if dt == "" {
		dt = domain.DiscountNone
	}
	c.Items = append(c.Items, LineItem{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		DiscountType:  dt,
		DiscountValue: p.DiscountValue,
		Image:         p.FirstImage(),
		Quantity:      qty,
	})
	return nil
}

// Remove is a no-op for unknown ids.
func (c *Cart) Remove(id uuid.UUID) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}

// UpdateQuantity sets qty exactly; qty <= 0 removes the line.
func (c *Cart) UpdateQuantity(id uuid.UUID, qty int) {
	if qty <= 0 {
		c.Remove(id)
		return
	}
	if i := c.index(id); i >= 0 {
		c.Items[i].Quantity = qty
	}
}

func (c *Cart) Clear() { c.Items = nil }

func (c *Cart) Quantity(id uuid.UUID) int {
	if i := c.index(id); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.Total())
	}
	return sum
}

func (c *Cart) Empty() bool { return len(c.Items) == 0 }

func (c *Cart) clone() Cart {
	return Cart{Items: append([]LineItem(nil), c.Items...)}
}
