package pebblestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/phenrril/codstore/internal/kv"
)

// Store is an embedded kv.Store used when no redis is configured.
type Store struct {
	db  *pebble.DB
	now func() time.Time
}

// record wraps values so expirations survive restarts.
type record struct {
	Val     []byte `json:"v"`
	Expires int64  `json:"e,omitempty"`
}

func Open(dir string) (*Store, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Store{db: d, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	v, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec record
	err = json.Unmarshal(v, &rec)
	_ = closer.Close()
	if err != nil {
		return nil, fmt.Errorf("pebble decode %q: %w", key, err)
	}
	if rec.Expires != 0 && s.now().UnixNano() > rec.Expires {
		_ = s.db.Delete([]byte(key), pebble.NoSync)
		return nil, kv.ErrNotFound
	}
	return rec.Val, nil
}

func (s *Store) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	rec := record{Val: val}
	if ttl > 0 {
		rec.Expires = s.now().Add(ttl).UnixNano()
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Set([]byte(key), b, pebble.Sync)
}

func (s *Store) Delete(_ context.Context, key string) error {
	return s.db.Delete([]byte(key), pebble.Sync)
}
