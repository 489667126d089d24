// Package memory implements the domain repositories in process memory. It backs
// STORE_BACKEND=memory and doubles as the fake used by package tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/phenrril/codstore/internal/domain"
)

type ProductRepo struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]domain.Product
}

func NewProductRepo() *ProductRepo { return &ProductRepo{rows: map[uuid.UUID]domain.Product{}} }

func (r *ProductRepo) Save(_ context.Context, p *domain.Product) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.mu.Lock()
	r.rows[p.ID] = *p
	r.mu.Unlock()
	return nil
}

func (r *ProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepo) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := []domain.Product{}
	for _, p := range r.rows {
		if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
			continue
		}
		if f.Featured && !p.IsFeatured {
			continue
		}
		if f.IsNew && !p.IsNew {
			continue
		}
		if f.LowStock > 0 && p.Stock >= f.LowStock {
			continue
		}
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (r *ProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	r.rows[id] = p
	return nil
}

type CategoryRepo struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]domain.Category
}

func NewCategoryRepo() *CategoryRepo { return &CategoryRepo{rows: map[uuid.UUID]domain.Category{}} }

func (r *CategoryRepo) Save(_ context.Context, c *domain.Category) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.mu.Lock()
	r.rows[c.ID] = *c
	r.mu.Unlock()
	return nil
}

func (r *CategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Category, 0, len(r.rows))
	for _, c := range r.rows {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *CategoryRepo) SlugExists(_ context.Context, slug string, except uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, c := range r.rows {
		if id != except && c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

type FAQRepo struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]domain.FAQ
}

func NewFAQRepo() *FAQRepo { return &FAQRepo{rows: map[uuid.UUID]domain.FAQ{}} }

func (r *FAQRepo) Save(_ context.Context, f *domain.FAQ) error {
	now := time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	f.UpdatedAt = now
	r.mu.Lock()
	r.rows[f.ID] = *f
	r.mu.Unlock()
	return nil
}

func (r *FAQRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

func (r *FAQRepo) List(_ context.Context, visibleOnly bool) ([]domain.FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := []domain.FAQ{}
	for _, f := range r.rows {
		if visibleOnly && !f.Visible {
			continue
		}
		list = append(list, f)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].SortOrder == list[j].SortOrder {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].SortOrder < list[j].SortOrder
	})
	return list, nil
}

func (r *FAQRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type SettingsRepo struct {
	mu  sync.RWMutex
	row *domain.Settings
}

func NewSettingsRepo() *SettingsRepo { return &SettingsRepo{} }

func (r *SettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.row == nil {
		return nil, domain.ErrNotFound
	}
	s := *r.row
	return &s, nil
}

func (r *SettingsRepo) Save(_ context.Context, s *domain.Settings) error {
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	cp := *s
	r.mu.Lock()
	r.row = &cp
	r.mu.Unlock()
	return nil
}

type AdminRepo struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]domain.AdminUser
	grants map[uuid.UUID]bool
}

func NewAdminRepo() *AdminRepo {
	return &AdminRepo{users: map[uuid.UUID]domain.AdminUser{}, grants: map[uuid.UUID]bool{}}
}

func (r *AdminRepo) FindByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == e {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *AdminRepo) Save(_ context.Context, u *domain.AdminUser) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	r.mu.Lock()
	r.users[u.ID] = *u
	r.mu.Unlock()
	return nil
}

func (r *AdminRepo) IsAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.grants[userID], nil
}

func (r *AdminRepo) Grant(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	r.grants[userID] = true
	r.mu.Unlock()
	return nil
}
