package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/codstore/internal/kv"
)

// fakeRedis serves the three commands the store issues from a map.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
}

func newFake() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	n := int64(0)
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	fake := newFake()
	s := New(fake)

	_, err := s.Get(ctx, "cart-storage:a")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "cart-storage:a", []byte(`[1]`), time.Hour))
	got, err := s.Get(ctx, "cart-storage:a")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
	assert.Equal(t, time.Hour, fake.ttls["cart-storage:a"])

	require.NoError(t, s.Set(ctx, "k", []byte("v"), -time.Second))
	assert.Equal(t, time.Duration(0), fake.ttls["k"])

	require.NoError(t, s.Delete(ctx, "cart-storage:a"))
	_, err = s.Get(ctx, "cart-storage:a")
	assert.ErrorIs(t, err, kv.ErrNotFound)
	require.NoError(t, s.Delete(ctx, "missing"))
}

func TestConfig_BadURL(t *testing.T) {
	_, err := Config{URL: "not-a-url"}.NewClient(context.Background())
	assert.Error(t, err)
}
