package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/phenrril/codstore/internal/domain"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestEffectivePrice(t *testing.T) {
	cases := []struct {
		name  string
		base  int64
		typ   domain.DiscountType
		value decimal.Decimal
		want  string
	}{
		{"none", 100000, domain.DiscountNone, d("15"), "100000"},
		{"empty type", 100000, "", d("15"), "100000"},
		{"percentage", 100000, domain.DiscountPercentage, d("15"), "85000"},
		{"percentage zero", 5000, domain.DiscountPercentage, d("0"), "5000"},
		{"percentage full", 5000, domain.DiscountPercentage, d("100"), "0"},
		{"percentage fractional rounds", 100, domain.DiscountPercentage, d("33.333"), "66.67"},
		{"percentage above range clamps", 5000, domain.DiscountPercentage, d("150"), "0"},
		{"percentage below range clamps", 5000, domain.DiscountPercentage, d("-20"), "5000"},
		{"fixed", 25000, domain.DiscountFixed, d("5000"), "20000"},
		{"fixed larger than price floors at zero", 1000, domain.DiscountFixed, d("2500"), "0"},
		{"unknown type", 700, domain.DiscountType("bogus"), d("10"), "700"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectivePrice(tc.base, tc.typ, tc.value)
			assert.True(t, got.Equal(d(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestEffectivePrice_PercentageMonotonic(t *testing.T) {
	for _, base := range []int64{0, 1, 999, 100000, 7_500_000} {
		prev := EffectivePrice(base, domain.DiscountPercentage, decimal.Zero)
		for pct := int64(1); pct <= 100; pct++ {
			cur := EffectivePrice(base, domain.DiscountPercentage, decimal.NewFromInt(pct))
			assert.False(t, cur.GreaterThan(prev), "base %d pct %d: %s > %s", base, pct, cur, prev)
			prev = cur
		}
	}
}

func TestEffectivePrice_FixedMatchesSubtraction(t *testing.T) {
	for _, base := range []int64{500, 10000, 123456} {
		for _, v := range []int64{0, 1, 250, 500} {
			got := EffectivePrice(base, domain.DiscountFixed, decimal.NewFromInt(v))
			assert.True(t, got.Equal(decimal.NewFromInt(base-v)))
		}
	}
}

func TestForProductAndLineTotal(t *testing.T) {
	p := &domain.Product{Price: 100000, DiscountType: domain.DiscountPercentage, DiscountValue: d("15")}
	unit := ForProduct(p)
	assert.True(t, unit.Equal(d("85000")))
	assert.True(t, LineTotal(unit, 2).Equal(d("170000")))
	assert.True(t, LineTotal(unit, 0).IsZero())
}
