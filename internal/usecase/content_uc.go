package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/phenrril/codstore/internal/domain"
)

type ContentUC struct {
	FAQs     domain.FAQRepo
	Settings domain.SettingsRepo
}

func (uc *ContentUC) ListFAQs(ctx context.Context, visibleOnly bool) ([]domain.FAQ, error) {
	return uc.FAQs.List(ctx, visibleOnly)
}

func validateFAQ(f *domain.FAQ) error {
	f.Question = strings.TrimSpace(f.Question)
	f.Answer = strings.TrimSpace(f.Answer)
	var errs domain.ValidationErrors
	if f.Question == "" {
		errs = append(errs, domain.FieldError{Field: "question", Message: "question is required"})
	}
	if f.Answer == "" {
		errs = append(errs, domain.FieldError{Field: "answer", Message: "answer is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (uc *ContentUC) CreateFAQ(ctx context.Context, f *domain.FAQ) error {
	if err := validateFAQ(f); err != nil {
		return err
	}
	f.ID = uuid.New()
	return uc.FAQs.Save(ctx, f)
}

func (uc *ContentUC) UpdateFAQ(ctx context.Context, id uuid.UUID, f *domain.FAQ) (*domain.FAQ, error) {
	cur, err := uc.FAQs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateFAQ(f); err != nil {
		return nil, err
	}
	f.ID = cur.ID
	f.CreatedAt = cur.CreatedAt
	if err := uc.FAQs.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (uc *ContentUC) DeleteFAQ(ctx context.Context, id uuid.UUID) error {
	return uc.FAQs.Delete(ctx, id)
}

// GetSettings falls back to the store defaults until an admin saves settings.
func (uc *ContentUC) GetSettings(ctx context.Context) (*domain.Settings, error) {
	s, err := uc.Settings.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		d := domain.DefaultSettings()
		return &d, nil
	}
	return s, err
}

func (uc *ContentUC) UpdateSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	cur, err := uc.Settings.Get(ctx)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.ID = uuid.New()
	case err != nil:
		return nil, err
	default:
		s.ID = cur.ID
		s.CreatedAt = cur.CreatedAt
	}
	if s.LogoShape != domain.LogoCircle {
		s.LogoShape = domain.LogoSquare
	}
	if s.LogoPosition.Scale <= 0 {
		s.LogoPosition.Scale = 1
	}
	if s.SocialLinks == nil {
		s.SocialLinks = map[string]string{}
	}
	if err := uc.Settings.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
