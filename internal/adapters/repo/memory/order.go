package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/codstore/internal/domain"
)

type OrderRepo struct {
	mu       sync.RWMutex
	rows     map[uuid.UUID]domain.Order
	numbers  map[string]uuid.UUID
	now      func() time.Time
	creating func(*domain.Order) error
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{rows: map[uuid.UUID]domain.Order{}, numbers: map[string]uuid.UUID{}, now: time.Now}
}

// FailCreate makes subsequent Create calls consult fn first; a non-nil error
// aborts the insert. Tests use it to simulate storage failures.
func (r *OrderRepo) FailCreate(fn func(*domain.Order) error) {
	r.mu.Lock()
	r.creating = fn
	r.mu.Unlock()
}

func cloneOrder(o domain.Order) domain.Order {
	o.Items = append([]domain.OrderItem(nil), o.Items...)
	return o
}

func (r *OrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.creating != nil {
		if err := r.creating(o); err != nil {
			return err
		}
	}
	if _, taken := r.numbers[o.OrderNumber]; taken {
		return domain.ErrDuplicateOrderNumber
	}
	now := r.now()
	o.CreatedAt, o.UpdatedAt = now, now
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
		o.Items[i].Position = i
	}
	r.rows[o.ID] = cloneOrder(*o)
	r.numbers[o.OrderNumber] = o.ID
	return nil
}

func (r *OrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) List(_ context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := []domain.Order{}
	for _, o := range r.rows {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !o.CreatedAt.Before(f.To) {
			continue
		}
		list = append(list, cloneOrder(o))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *OrderRepo) Update(_ context.Context, id uuid.UUID, u domain.OrderUpdate) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.AdminNote != nil {
		o.AdminNote = *u.AdminNote
	}
	o.UpdatedAt = r.now()
	r.rows[id] = o
	o = cloneOrder(o)
	return &o, nil
}

func (r *OrderRepo) CountByStatus(_ context.Context) (map[domain.OrderStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := map[domain.OrderStatus]int64{}
	for _, o := range r.rows {
		out[o.Status]++
	}
	return out, nil
}
