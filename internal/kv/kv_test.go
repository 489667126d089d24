package kv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "k", []byte("v1"), 0))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(got))

	// returned slices are copies
	got[0] = 'x'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "v1", string(again))

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, m.Delete(ctx, "k"))
}

func TestMemory_TTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "s", []byte("x"), time.Minute))
	_, err := m.Get(ctx, "s")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = m.Get(ctx, "s")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_ExpiryKeepsFreshWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	require.NoError(t, m.Set(ctx, "s", []byte("old"), time.Minute))
	now = now.Add(2 * time.Minute)

	wrote := false
	m.now = func() time.Time {
		if !wrote {
			wrote = true
			// another request saves between the expired read and the delete
			require.NoError(t, m.Set(ctx, "s", []byte("new"), time.Hour))
		}
		return now
	}
	_, err := m.Get(ctx, "s")
	require.ErrorIs(t, err, ErrNotFound)

	got, err := m.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}
