package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/codstore/internal/adapters/repo/memory"
	"github.com/phenrril/codstore/internal/cart"
	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/kv"
	"github.com/phenrril/codstore/internal/metrics"
)

type recordingNotifier struct {
	mu      sync.Mutex
	created []string
	changed []string
}

func (n *recordingNotifier) OrderCreated(_ context.Context, o *domain.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, o.OrderNumber)
	return nil
}

func (n *recordingNotifier) OrderStatusChanged(_ context.Context, o *domain.Order, prev domain.OrderStatus) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, string(prev)+"->"+string(o.Status))
	return nil
}

type fixture struct {
	kv       *kv.Memory
	products *memory.ProductRepo
	orders   *memory.OrderRepo
	notifier *recordingNotifier
	metrics  *metrics.Registry
	cartUC   *CartUC
	orderUC  *OrderUC
}

func newFixture() *fixture {
	f := &fixture{
		kv:       kv.NewMemory(),
		products: memory.NewProductRepo(),
		orders:   memory.NewOrderRepo(),
		notifier: &recordingNotifier{},
		metrics:  metrics.NewRegistry(),
	}
	f.cartUC = &CartUC{KV: f.kv, Products: f.products, Metrics: f.metrics}
	f.orderUC = &OrderUC{
		Orders:    f.orders,
		Products:  f.products,
		Settings:  memory.NewSettingsRepo(),
		Notifiers: []domain.OrderNotifier{f.notifier},
		Metrics:   f.metrics,
	}
	return f
}

func (f *fixture) product(t *testing.T, price int64, dt domain.DiscountType, dv string, stock int) *domain.Product {
	t.Helper()
	p := &domain.Product{
		ID:            uuid.New(),
		Name:          "منتج " + uuid.NewString()[:4],
		Price:         price,
		DiscountType:  dt,
		DiscountValue: decimal.RequireFromString(dv),
		Images:        []string{"/img/a.jpg"},
		Stock:         stock,
		Available:     true,
	}
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func (f *fixture) cart(t *testing.T) *cart.Store {
	t.Helper()
	c, err := f.cartUC.Open(context.Background(), uuid.NewString())
	require.NoError(t, err)
	return c
}

func validForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		CustomerName:  "أحمد علي",
		CustomerPhone: "07701234567",
		Province:      "بغداد",
		Address:       "الكرادة، شارع 62",
	}
}
