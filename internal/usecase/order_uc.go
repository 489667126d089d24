package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/phenrril/codstore/internal/cart"
	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/metrics"
)

// orderNumberAttempts bounds regeneration when a generated number is taken.
const orderNumberAttempts = 3

// DefaultNotifyTimeout bounds one round of alerts for an order event.
const DefaultNotifyTimeout = 30 * time.Second

type OrderUC struct {
	Orders    domain.OrderRepo
	Products  domain.ProductRepo
	Settings  domain.SettingsRepo
	Notifiers []domain.OrderNotifier
	Metrics   *metrics.Registry

	// NotifyTimeout defaults to DefaultNotifyTimeout.
	NotifyTimeout time.Duration

	// NewNumber and Now default to NewOrderNumber and time.Now.
	NewNumber func(time.Time) (string, error)
	Now       func() time.Time

	pending sync.WaitGroup
}

func (uc *OrderUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *OrderUC) number(t time.Time) (string, error) {
	if uc.NewNumber != nil {
		return uc.NewNumber(t)
	}
	return NewOrderNumber(t)
}

// Checkout turns the session cart into a persisted order. Nothing is written and
// the cart is kept when validation or persistence fails; on success the cart is
// cleared once.
func (uc *OrderUC) Checkout(ctx context.Context, c *cart.Store, form domain.CheckoutForm) (*domain.Order, error) {
	if err := form.Validate(); err != nil {
		uc.Metrics.CheckoutFailed("validation")
		return nil, err
	}
	form.Normalize()
	if c.Empty() {
		uc.Metrics.CheckoutFailed("empty_cart")
		return nil, domain.ErrEmptyCart
	}

	lines := c.Items()
	items := make([]domain.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, li := range lines {
		it := domain.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			UnitPrice: li.UnitPrice(),
			Quantity:  li.Quantity,
			Total:     li.Total(),
		}
		total = total.Add(it.Total)
		items = append(items, it)
	}
	if !total.Equal(c.TotalPrice()) {
		return nil, fmt.Errorf("checkout: order total %s differs from cart total %s", total, c.TotalPrice())
	}

	o := &domain.Order{
		ID:            uuid.New(),
		CustomerName:  form.CustomerName,
		CustomerPhone: form.CustomerPhone,
		Province:      form.Province,
		Address:       form.Address,
		Note:          form.Note,
		Items:         items,
		Total:         total,
		Status:        domain.OrderStatusProcessing,
	}
	if err := uc.create(ctx, o); err != nil {
		uc.Metrics.CheckoutFailed("storage")
		return nil, err
	}

	if err := c.Clear(ctx); err != nil {
		log.Warn().Err(err).Str("order", o.OrderNumber).Msg("checkout: clear cart")
	}
	uc.Metrics.OrderCreated(total.InexactFloat64())
	uc.notify(ctx, o, "order created", func(ctx context.Context, n domain.OrderNotifier, o *domain.Order) error {
		return n.OrderCreated(ctx, o)
	})
	log.Info().Str("order", o.OrderNumber).Str("total", total.String()).Int("items", len(items)).Msg("order created")
	return o, nil
}

// notify hands the event to every notifier in the background, detached from the
// caller's cancellation and bounded by NotifyTimeout.
func (uc *OrderUC) notify(ctx context.Context, o *domain.Order, event string, send func(context.Context, domain.OrderNotifier, *domain.Order) error) {
	if len(uc.Notifiers) == 0 {
		return
	}
	snap := *o
	snap.Items = append([]domain.OrderItem(nil), o.Items...)
	timeout := uc.NotifyTimeout
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	ctx = context.WithoutCancel(ctx)
	uc.pending.Add(1)
	go func() {
		defer uc.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		for _, n := range uc.Notifiers {
			if err := send(ctx, n, &snap); err != nil {
				log.Warn().Err(err).Str("order", snap.OrderNumber).Str("event", event).Msg("order alert failed")
			}
		}
	}()
}

// Wait blocks until background alerts already handed out have finished.
func (uc *OrderUC) Wait() { uc.pending.Wait() }

func (uc *OrderUC) create(ctx context.Context, o *domain.Order) error {
	var err error
	for attempt := 1; attempt <= orderNumberAttempts; attempt++ {
		if o.OrderNumber, err = uc.number(uc.now()); err != nil {
			return err
		}
		err = uc.Orders.Create(ctx, o)
		if !errors.Is(err, domain.ErrDuplicateOrderNumber) {
			break
		}
		log.Warn().Str("order", o.OrderNumber).Int("attempt", attempt).Msg("order number taken, regenerating")
	}
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (uc *OrderUC) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return uc.Orders.FindByID(ctx, id)
}

// List returns orders newest first, optionally restricted to one status.
func (uc *OrderUC) List(ctx context.Context, status string) ([]domain.Order, error) {
	var f domain.OrderFilter
	if status != "" {
		st := domain.OrderStatus(status)
		if !st.Valid() {
			return nil, domain.ValidationErrors{{Field: "status", Message: "unknown order status"}}
		}
		f.Status = &st
	}
	return uc.Orders.List(ctx, f)
}

// Update applies an admin status change and note edit in one write. Items and
// total are never touched.
func (uc *OrderUC) Update(ctx context.Context, id uuid.UUID, u domain.OrderUpdate) (*domain.Order, error) {
	cur, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status != nil && !cur.Status.CanTransition(*u.Status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, cur.Status, *u.Status)
	}
	if u.Status == nil && u.AdminNote == nil {
		return cur, nil
	}
	o, err := uc.Orders.Update(ctx, id, u)
	if err != nil {
		return nil, err
	}
	if o.Status != cur.Status {
		uc.Metrics.StatusUpdated(string(o.Status))
		prev := cur.Status
		uc.notify(ctx, o, "status changed", func(ctx context.Context, n domain.OrderNotifier, o *domain.Order) error {
			return n.OrderStatusChanged(ctx, o, prev)
		})
		log.Info().Str("order", o.OrderNumber).Str("from", string(cur.Status)).Str("to", string(o.Status)).Msg("order status changed")
	}
	return o, nil
}

type InvoiceLine struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// Invoice is the printable projection of an order.
type Invoice struct {
	Order    *domain.Order    `json:"order"`
	Store    *domain.Settings `json:"store"`
	Lines    []InvoiceLine    `json:"lines"`
	Total    decimal.Decimal  `json:"total"`
	IssuedAt time.Time        `json:"issued_at"`
}

func (uc *OrderUC) Invoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	o, err := uc.Orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	content := ContentUC{Settings: uc.Settings}
	s, err := content.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	inv := &Invoice{Order: o, Store: s, Total: o.Total, IssuedAt: uc.now()}
	for _, it := range o.Items {
		inv.Lines = append(inv.Lines, InvoiceLine{Name: it.Name, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Total: it.Total})
	}
	return inv, nil
}

type Dashboard struct {
	OrdersByStatus map[domain.OrderStatus]int64 `json:"orders_by_status"`
	PendingOrders  int64                        `json:"pending_orders"`
	TotalProducts  int                          `json:"total_products"`
	LowStock       []domain.Product             `json:"low_stock"`
	RecentOrders   []domain.Order               `json:"recent_orders"`
	ReadyValue     decimal.Decimal              `json:"ready_value"`
}

const recentOrders = 5

func (uc *OrderUC) Dashboard(ctx context.Context) (*Dashboard, error) {
	counts, err := uc.Orders.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.Products.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}
	low, err := uc.Products.List(ctx, domain.ProductFilter{LowStock: LowStockThreshold})
	if err != nil {
		return nil, err
	}
	orders, err := uc.Orders.List(ctx, domain.OrderFilter{})
	if err != nil {
		return nil, err
	}
	d := &Dashboard{
		OrdersByStatus: counts,
		PendingOrders:  counts[domain.OrderStatusProcessing],
		TotalProducts:  len(products),
		LowStock:       low,
		ReadyValue:     decimal.Zero,
	}
	for i, o := range orders {
		if i < recentOrders {
			d.RecentOrders = append(d.RecentOrders, o)
		}
		if o.Status == domain.OrderStatusReady {
			d.ReadyValue = d.ReadyValue.Add(o.Total)
		}
	}
	return d, nil
}
