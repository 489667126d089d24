package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/codstore/internal/adapters/repo/memory"
	"github.com/phenrril/codstore/internal/domain"
)

func TestSettingsFallBackToDefaults(t *testing.T) {
	ctx := context.Background()
	uc := &ContentUC{FAQs: memory.NewFAQRepo(), Settings: memory.NewSettingsRepo()}

	s, err := uc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings().StoreName, s.StoreName)

	saved, err := uc.UpdateSettings(ctx, &domain.Settings{StoreName: "متجري", LogoShape: "hexagon"})
	require.NoError(t, err)
	assert.Equal(t, domain.LogoSquare, saved.LogoShape)
	assert.Equal(t, 1.0, saved.LogoPosition.Scale)

	again, err := uc.UpdateSettings(ctx, &domain.Settings{StoreName: "متجري 2", LogoShape: domain.LogoCircle})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)

	s, err = uc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "متجري 2", s.StoreName)
	assert.Equal(t, domain.LogoCircle, s.LogoShape)
}

func TestFAQs(t *testing.T) {
	ctx := context.Background()
	uc := &ContentUC{FAQs: memory.NewFAQRepo(), Settings: memory.NewSettingsRepo()}

	require.Error(t, uc.CreateFAQ(ctx, &domain.FAQ{Question: " "}))

	hidden := &domain.FAQ{Question: "Q2", Answer: "A2", SortOrder: 2}
	shown := &domain.FAQ{Question: "Q1", Answer: "A1", SortOrder: 1, Visible: true}
	require.NoError(t, uc.CreateFAQ(ctx, hidden))
	require.NoError(t, uc.CreateFAQ(ctx, shown))

	public, err := uc.ListFAQs(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Q1", public[0].Question)

	all, err := uc.ListFAQs(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Q1", all[0].Question)

	_, err = uc.UpdateFAQ(ctx, hidden.ID, &domain.FAQ{Question: "Q2", Answer: "A2", Visible: true, SortOrder: 2})
	require.NoError(t, err)
	public, err = uc.ListFAQs(ctx, true)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	require.NoError(t, uc.DeleteFAQ(ctx, shown.ID))
	assert.ErrorIs(t, uc.DeleteFAQ(ctx, shown.ID), domain.ErrNotFound)
}
