package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/kv"
)

// KeyPrefix namespaces cart blobs in the kv store.
const KeyPrefix = "cart-storage:"

// TTL bounds how long an untouched cart survives.
const TTL = 30 * 24 * time.Hour

func Key(sessionID string) string { return KeyPrefix + sessionID }

// Store is the cart of one session. Every mutation is persisted before it
// returns; if persisting fails the in-memory cart is left as it was.
type Store struct {
	kv   kv.Store
	key  string
	cart Cart
}

// Open loads the session cart, starting empty when none is stored.
func Open(ctx context.Context, store kv.Store, sessionID string) (*Store, error) {
	s := &Store{kv: store, key: Key(sessionID)}
	raw, err := store.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt blob is dropped rather than blocking the session.
		return s, nil
	}
	s.cart.Items = items
	return s, nil
}

func (s *Store) mutate(ctx context.Context, fn func(c *Cart) error) error {
	next := s.cart.clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.cart = next
	return nil
}

func (s *Store) persist(ctx context.Context, c Cart) error {
	if c.Empty() {
		if err := s.kv.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("save cart: %w", err)
		}
		return nil
	}
	b, err := json.Marshal(c.Items)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, b, TTL); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *Store) Add(ctx context.Context, p *domain.Product, qty int) error {
	return s.mutate(ctx, func(c *Cart) error { return c.Add(p, qty) })
}

func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	if s.cart.index(id) < 0 {
		return nil
	}
	return s.mutate(ctx, func(c *Cart) error { c.Remove(id); return nil })
}

func (s *Store) UpdateQuantity(ctx context.Context, id uuid.UUID, qty int) error {
	return s.mutate(ctx, func(c *Cart) error { c.UpdateQuantity(id, qty); return nil })
}

func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func(c *Cart) error { c.Clear(); return nil })
}

// Items returns a copy of the line items.
func (s *Store) Items() []LineItem { return append([]LineItem(nil), s.cart.Items...) }

func (s *Store) Quantity(id uuid.UUID) int { return s.cart.Quantity(id) }

func (s *Store) TotalItems() int { return s.cart.TotalItems() }

func (s *Store) TotalPrice() decimal.Decimal { return s.cart.TotalPrice() }

func (s *Store) Empty() bool { return s.cart.Empty() }
