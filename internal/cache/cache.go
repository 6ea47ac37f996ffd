// Package cache implements a time-boxed key/value cache over a pluggable
// byte store. Every entry carries the time it was written; an entry older
// than the TTL is treated as absent and removed on the next read of its key.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultTTL is how long an entry stays visible after it was written.
const DefaultTTL = 24 * time.Hour

// DefaultPrefix namespaces cache keys inside a shared store.
const DefaultPrefix = "trip-planner-"

// ErrMiss is returned by Store.Get when the key does not exist.
var ErrMiss = errors.New("cache miss")

// Store is the raw persistence behind a Cache.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the bytes stored under key, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// entry is the encoded form of a cached value: {"data": ..., "timestamp": unix-ms}.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Cache stores JSON-serializable values with a per-entry write timestamp.
type Cache struct {
	store  Store
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a Cache.
type Option func(*Cache)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) { c.prefix = prefix }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New constructs a Cache backed by store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		prefix: DefaultPrefix,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores value under key stamped with the current time, overwriting any
// prior entry.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache.Set %q: encode value: %w", key, err)
	}
	raw, err := json.Marshal(entry{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		return fmt.Errorf("cache.Set %q: encode entry: %w", key, err)
	}
	if err := c.store.Set(ctx, c.prefix+key, raw); err != nil {
		return fmt.Errorf("cache.Set %q: %w", key, err)
	}
	return nil
}

// Get decodes the value stored under key into dst and reports whether it was
// found. An entry whose age has reached the TTL is deleted and reported as
// not found, as is an entry that can no longer be decoded.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	full := c.prefix + key

	raw, err := c.store.Get(ctx, full)
	if errors.Is(err, ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.Get %q: %w", key, err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return false, c.evict(ctx, full, key)
	}

	age := c.now().Sub(time.UnixMilli(e.Timestamp))
	if age >= c.ttl {
		return false, c.evict(ctx, full, key)
	}

	if err := json.Unmarshal(e.Data, dst); err != nil {
		return false, c.evict(ctx, full, key)
	}
	return true, nil
}

func (c *Cache) evict(ctx context.Context, full, key string) error {
	if err := c.store.Delete(ctx, full); err != nil {
		return fmt.Errorf("cache.Get %q: evict: %w", key, err)
	}
	return nil
}
