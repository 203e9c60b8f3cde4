package kv

import "context"

// Typed is a view of a Store that encodes and decodes values of type T.
type Typed[T any] struct {
	store *Store
}

// NewTyped returns a typed view over s.
func NewTyped[T any](s *Store) Typed[T] {
	return Typed[T]{store: s}
}

// Store returns the underlying untyped store.
func (t Typed[T]) Store() *Store {
	return t.store
}

func (t Typed[T]) Set(ctx context.Context, key string, value T) error {
	return t.store.SetItem(ctx, key, value)
}

// Get returns the zero T and false when key is absent or unreadable.
func (t Typed[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var v T
	ok, err := t.store.GetInto(ctx, key, &v)
	if !ok || err != nil {
		var zero T
		return zero, ok, err
	}
	return v, true, nil
}

func (t Typed[T]) Remove(ctx context.Context, key string) error {
	return t.store.RemoveItem(ctx, key)
}
