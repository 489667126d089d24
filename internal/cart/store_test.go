package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/codstore/internal/domain"
	"github.com/phenrril/codstore/internal/kv"
)

type failingKV struct{ kv.Store }

func (failingKV) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("disk full")
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	sid := uuid.NewString()
	p := product(100000, domain.DiscountPercentage, "15")

	s, err := Open(ctx, mem, sid)
	require.NoError(t, err)
	require.True(t, s.Empty())
	require.NoError(t, s.Add(ctx, p, 2))

	reopened, err := Open(ctx, mem, sid)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.TotalItems())
	assert.True(t, reopened.TotalPrice().Equal(decimal.NewFromInt(170000)))

	other, err := Open(ctx, mem, uuid.NewString())
	require.NoError(t, err)
	assert.True(t, other.Empty(), "carts are per session")
}

func TestStore_ClearDeletesBlob(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s, err := Open(ctx, mem, "s1")
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, product(10, domain.DiscountNone, "0"), 1))

	require.NoError(t, s.Clear(ctx))
	_, err = mem.Get(ctx, Key("s1"))
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestStore_FailedSaveLeavesCartUnchanged(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, failingKV{kv.NewMemory()}, "s1")
	require.NoError(t, err)

	err = s.Add(ctx, product(10, domain.DiscountNone, "0"), 1)
	require.Error(t, err)
	assert.True(t, s.Empty())
}

func TestStore_CorruptBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(ctx, Key("s1"), []byte("{not json"), 0))

	s, err := Open(ctx, mem, "s1")
	require.NoError(t, err)
	assert.True(t, s.Empty())
}

func TestStore_ItemsIsACopy(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, kv.NewMemory(), "s1")
	require.NoError(t, err)
	p := product(10, domain.DiscountNone, "0")
	require.NoError(t, s.Add(ctx, p, 1))

	items := s.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, s.Quantity(p.ID))
}
