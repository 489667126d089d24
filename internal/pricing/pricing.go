// Package pricing holds the single effective-price formula shared by the cart,
// order assembly and invoices.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/phenrril/codstore/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice applies a discount to base. Percentages are clamped to [0,100],
// the result is rounded to two places and never drops below zero.
func EffectivePrice(base int64, t domain.DiscountType, value decimal.Decimal) decimal.Decimal {
	p := decimal.NewFromInt(base)
	switch t {
	case domain.DiscountPercentage:
		pct := clamp(value, decimal.Zero, hundred)
		p = p.Mul(hundred.Sub(pct)).Div(hundred)
	case domain.DiscountFixed:
		p = p.Sub(value)
	}
	p = p.Round(2)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// ForProduct prices a live catalog product.
func ForProduct(p *domain.Product) decimal.Decimal {
	return EffectivePrice(p.Price, p.DiscountType, p.DiscountValue)
}

// LineTotal is unit * qty.
func LineTotal(unit decimal.Decimal, qty int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
