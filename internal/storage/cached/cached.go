// Package cached decorates a kv.Backend with a read-through LRU cache.
//
// Writes go to the inner backend first and then drop the cached entry, so the
// next read reloads whatever the backend holds.
// Reads that miss the cache are collapsed per key, so concurrent misses hit
// the inner backend once. Key listings are never cached.
package cached

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"taccuino/internal/cache"
	"taccuino/internal/kv"
)

var _ kv.Backend = (*Backend)(nil)

// entry records absence too, so repeated lookups of a missing key stay local.
type entry struct {
	value string
	ok    bool
}

type Backend struct {
	inner kv.Backend
	cache cache.Cache[entry]
	group singleflight.Group

	// mu orders cache fills against writes. gen counts writes; a load only
	// fills the cache when no write landed while it was reading.
	mu  sync.Mutex
	gen uint64
}

// New wraps inner with an LRU of at most size entries, each kept for ttl.
func New(inner kv.Backend, size int, ttl time.Duration) *Backend {
	return &Backend{
		inner: inner,
		cache: cache.NewLRUCache[entry](size, ttl),
	}
}

func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if e, hit := b.cache.Get(key); hit {
		return e.value, e.ok, nil
	}

	v, err, _ := b.group.Do(key, func() (any, error) {
		b.mu.Lock()
		gen := b.gen
		b.mu.Unlock()

		value, ok, err := b.inner.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		e := entry{value: value, ok: ok}

		b.mu.Lock()
		if b.gen == gen {
			b.cache.Set(key, e)
		}
		b.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return "", false, err
	}
	e := v.(entry)
	return e.value, e.ok, nil
}

func (b *Backend) Set(ctx context.Context, key, value string) error {
	err := b.inner.Set(ctx, key, value)
	b.invalidate(key)
	return err
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	err := b.inner.Delete(ctx, key)
	b.invalidate(key)
	return err
}

func (b *Backend) DeleteAll(ctx context.Context) error {
	err := b.inner.DeleteAll(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.cache.Clear()
	return err
}

// invalidate forgets key after a write, whether or not it succeeded.
// Concurrent writers can finish in a different order than their inner writes.
func (b *Backend) invalidate(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gen++
	b.cache.Delete(key)
}

func (b *Backend) Keys(ctx context.Context) ([]string, error) {
	return b.inner.Keys(ctx)
}

// Size reports how many keys are cached.
func (b *Backend) Size() int {
	return b.cache.Size()
}
