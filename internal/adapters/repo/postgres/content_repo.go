package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/codstore/internal/domain"
)

type FAQRepo struct{ db *gorm.DB }

func NewFAQRepo(db *gorm.DB) *FAQRepo { return &FAQRepo{db: db} }

func (r *FAQRepo) Save(ctx context.Context, f *domain.FAQ) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FAQRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.FAQ, error) {
	var f domain.FAQ
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FAQRepo) List(ctx context.Context, visibleOnly bool) ([]domain.FAQ, error) {
	list := []domain.FAQ{}
	q := r.db.WithContext(ctx).Model(&domain.FAQ{})
	if visibleOnly {
		q = q.Where("visible = ?", true)
	}
	if err := q.Order("sort_order asc").Order("created_at asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *FAQRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.FAQ{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type SettingsRepo struct{ db *gorm.DB }

func NewSettingsRepo(db *gorm.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	var s domain.Settings
	if err := r.db.WithContext(ctx).Order("created_at asc").First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s *domain.Settings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
