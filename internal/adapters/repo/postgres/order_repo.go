package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/codstore/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create relies on gorm.Config.TranslateError to surface unique violations.
func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
		o.Items[i].Position = i
	}
	err := r.db.WithContext(ctx).Create(o).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateOrderNumber
	}
	return err
}

func preloadItems(db *gorm.DB) *gorm.DB { return db.Order("position asc") }

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items", preloadItems).First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error) {
	list := []domain.Order{}
	q := r.db.WithContext(ctx).Model(&domain.Order{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	if err := q.Order("created_at desc").Preload("Items", preloadItems).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) Update(ctx context.Context, id uuid.UUID, u domain.OrderUpdate) (*domain.Order, error) {
	cols := map[string]any{"updated_at": time.Now()}
	if u.Status != nil {
		cols["status"] = *u.Status
	}
	if u.AdminNote != nil {
		cols["admin_note"] = *u.AdminNote
	}
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *OrderRepo) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	var rows []struct {
		Status domain.OrderStatus
		N      int64
	}
	if err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Select("status, count(*) as n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := map[domain.OrderStatus]int64{}
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
