// Package kv is a JSON-valued key-value store over an injected Backend.
//
// Write paths (SetItem, RemoveItem, Clear) always report failures. Read paths
// degrade: a backend failure during GetItem reads as "absent" and during
// GetAllKeys as an empty list. The failure is logged, so callers that must tell
// "never written" from "read failed" cannot do so through this package.
//
// The store does no locking. It relies on the backend for per-key atomicity;
// concurrent writers to one key race and the last write wins.
package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"taccuino/internal/log"
)

// Backend is the durable medium the store writes through.
type Backend interface {
	// Get returns the raw text under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Delete succeeds when the key is absent.
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
}

const (
	opSet    = "setItem"
	opGet    = "getItem"
	opRemove = "removeItem"
	opClear  = "clear"
	opKeys   = "getAllKeys"
)

// Store serializes values as JSON under namespaced keys.
type Store struct {
	backend   Backend
	namespace string
	logger    *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace prefixes every key with ns and a colon. Clear and GetAllKeys
// only see keys in the namespace.
func WithNamespace(ns string) Option {
	return func(s *Store) {
		s.namespace = strings.TrimSpace(ns)
	}
}

// WithLogger sets the logger used for degraded reads.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store writing through backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  log.Default(log.ComponentStore),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns the key prefix, without the separator.
func (s *Store) Namespace() string {
	return s.namespace
}

// SetItem encodes value and writes it under key, replacing any previous value.
// Encoding happens before the write, so an unencodable value never touches the
// backend.
func (s *Store) SetItem(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &Error{Op: opSet, Key: key, Kind: KindSerialization, Err: err}
	}
	if err := s.backend.Set(ctx, s.fullKey(key), string(data)); err != nil {
		return &Error{Op: opSet, Key: key, Kind: KindStorageWrite, Err: err}
	}
	return nil
}

// GetItem returns the decoded value under key as produced by encoding/json
// (map[string]any, []any, float64, string, bool or nil).
//
// ok is false when the key is absent or the backend read failed.
func (s *Store) GetItem(ctx context.Context, key string) (value any, ok bool, err error) {
	ok, err = s.GetInto(ctx, key, &value)
	if !ok || err != nil {
		return nil, ok, err
	}
	return value, true, nil
}

// GetInto decodes the value under key into dst, with the same absence and
// degradation rules as GetItem. dst is untouched when the key is absent.
func (s *Store) GetInto(ctx context.Context, key string, dst any) (ok bool, err error) {
	raw, found, err := s.backend.Get(ctx, s.fullKey(key))
	if err != nil {
		s.logger.WarnContext(ctx, "Read failed, treating key as absent",
			log.NewFields().WithOperation(opGet).WithKey(key).WithError(err).ToSlice()...)
		return false, nil
	}
	if !found {
		return false, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	if err := dec.Decode(dst); err != nil {
		return false, &Error{Op: opGet, Key: key, Kind: KindDeserialization, Err: err}
	}
	if dec.More() {
		return false, &Error{Op: opGet, Key: key, Kind: KindDeserialization, Err: errors.New("trailing data after value")}
	}
	return true, nil
}

// RemoveItem deletes key. Removing an absent key succeeds.
func (s *Store) RemoveItem(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.fullKey(key)); err != nil {
		return &Error{Op: opRemove, Key: key, Kind: KindStorageWrite, Err: err}
	}
	return nil
}

// Clear deletes every key in the store's namespace, or the whole backend when
// the namespace is empty.
func (s *Store) Clear(ctx context.Context) error {
	if s.namespace == "" {
		if err := s.backend.DeleteAll(ctx); err != nil {
			return &Error{Op: opClear, Kind: KindStorageWrite, Err: err}
		}
		return nil
	}

	keys, err := s.backend.Keys(ctx)
	if err != nil {
		return &Error{Op: opClear, Kind: KindStorageWrite, Err: err}
	}
	for _, k := range keys {
		if !strings.HasPrefix(k, s.prefix()) {
			continue
		}
		if err := s.backend.Delete(ctx, k); err != nil {
			return &Error{Op: opClear, Key: strings.TrimPrefix(k, s.prefix()), Kind: KindStorageWrite, Err: err}
		}
	}
	return nil
}

// GetAllKeys returns the namespace-relative keys in backend order. A backend
// failure yields an empty list.
func (s *Store) GetAllKeys(ctx context.Context) []string {
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Key listing failed, returning no keys",
			log.NewFields().WithOperation(opKeys).WithError(err).ToSlice()...)
		return []string{}
	}

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if s.namespace == "" {
			out = append(out, k)
			continue
		}
		if rest, ok := strings.CutPrefix(k, s.prefix()); ok {
			out = append(out, rest)
		}
	}
	return out
}

func (s *Store) prefix() string {
	return s.namespace + ":"
}

func (s *Store) fullKey(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.prefix() + key
}
