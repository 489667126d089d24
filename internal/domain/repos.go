package domain

import (
	"context"

	"github.com/google/uuid"
)

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
}

type CategoryRepo interface {
	Save(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string, except uuid.UUID) (bool, error)
}

type FAQRepo interface {
	Save(ctx context.Context, f *FAQ) error
	FindByID(ctx context.Context, id uuid.UUID) (*FAQ, error)
	List(ctx context.Context, visibleOnly bool) ([]FAQ, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingsRepo interface {
	// Get returns ErrNotFound when no row exists.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}

type OrderRepo interface {
	// Create inserts the order and its items. A taken order number yields ErrDuplicateOrderNumber.
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, error)
	// Update writes status and admin note together and touches nothing else.
	Update(ctx context.Context, id uuid.UUID, u OrderUpdate) (*Order, error)
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)
}

type AdminRepo interface {
	FindByEmail(ctx context.Context, email string) (*AdminUser, error)
	Save(ctx context.Context, u *AdminUser) error
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	Grant(ctx context.Context, userID uuid.UUID) error
}

// OrderNotifier is told about order lifecycle events after they are persisted.
type OrderNotifier interface {
	OrderCreated(ctx context.Context, o *Order) error
	OrderStatusChanged(ctx context.Context, o *Order, prev OrderStatus) error
}
