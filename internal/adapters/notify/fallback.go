package notify

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/codstore/internal/domain"
)

// Fallback delivers through Secondary only when Primary fails.
type Fallback struct {
	Primary   domain.OrderNotifier
	Secondary domain.OrderNotifier
}

func (f *Fallback) OrderCreated(ctx context.Context, o *domain.Order) error {
	err := f.Primary.OrderCreated(ctx, o)
	if err == nil {
		return nil
	}
	log.Warn().Err(err).Str("order", o.OrderNumber).Msg("primary alert failed, falling back")
	return f.Secondary.OrderCreated(ctx, o)
}

func (f *Fallback) OrderStatusChanged(ctx context.Context, o *domain.Order, prev domain.OrderStatus) error {
	err := f.Primary.OrderStatusChanged(ctx, o, prev)
	if err == nil {
		return nil
	}
	log.Warn().Err(err).Str("order", o.OrderNumber).Msg("primary alert failed, falling back")
	return f.Secondary.OrderStatusChanged(ctx, o, prev)
}
