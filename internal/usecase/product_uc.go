package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/phenrril/codstore/internal/domain"
)

// LowStockThreshold marks products shown as low stock on the dashboard.
const LowStockThreshold = 10

type ProductUC struct {
	Products   domain.ProductRepo
	Categories domain.CategoryRepo
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	return uc.Products.List(ctx, f)
}

func (uc *ProductUC) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, domain.ErrNotFound
	}
	return uc.Products.FindByID(ctx, id)
}

func (uc *ProductUC) checkCategory(ctx context.Context, p *domain.Product) error {
	if p.CategoryID == nil || *p.CategoryID == uuid.Nil {
		p.CategoryID = nil
		return nil
	}
	if _, err := uc.Categories.FindByID(ctx, *p.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ValidationErrors{{Field: "category_id", Message: "unknown category"}}
		}
		return err
	}
	return nil
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := uc.checkCategory(ctx, p); err != nil {
		return err
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return uc.Products.Save(ctx, p)
}

// Update replaces the editable fields of an existing product.
func (uc *ProductUC) Update(ctx context.Context, id uuid.UUID, p *domain.Product) (*domain.Product, error) {
	cur, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, p); err != nil {
		return nil, err
	}
	p.ID = cur.ID
	p.CreatedAt = cur.CreatedAt
	if p.Images == nil {
		p.Images = []string{}
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProductUC) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.Products.Delete(ctx, id)
}

// SetStock is the manual inventory edit; there is no reservation.
func (uc *ProductUC) SetStock(ctx context.Context, id uuid.UUID, stock int) error {
	if stock < 0 {
		return domain.ValidationErrors{{Field: "stock", Message: "stock must not be negative"}}
	}
	return uc.Products.UpdateStock(ctx, id, stock)
}

func (uc *ProductUC) LowStock(ctx context.Context) ([]domain.Product, error) {
	return uc.Products.List(ctx, domain.ProductFilter{LowStock: LowStockThreshold})
}

// --- Categories ---

func (uc *ProductUC) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return uc.Categories.List(ctx)
}

func (uc *ProductUC) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	c := &domain.Category{ID: uuid.New(), Name: name}
	slug, err := uc.uniqueSlug(ctx, name, c.ID)
	if err != nil {
		return nil, err
	}
	c.Slug = slug
	if err := uc.Categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *ProductUC) RenameCategory(ctx context.Context, id uuid.UUID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	c, err := uc.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	if c.Slug, err = uc.uniqueSlug(ctx, name, c.ID); err != nil {
		return nil, err
	}
	if err := uc.Categories.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes the category; products keep existing uncategorised.
func (uc *ProductUC) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return uc.Categories.Delete(ctx, id)
}

func (uc *ProductUC) uniqueSlug(ctx context.Context, name string, self uuid.UUID) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "category"
	}
	slug := base
	for n := 2; ; n++ {
		taken, err := uc.Categories.SlugExists(ctx, slug, self)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}

// Slugify keeps letters and digits of any script and joins words with '-'.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
