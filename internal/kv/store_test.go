package kv_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"

	"taccuino/internal/kv"
	"taccuino/internal/log"
	"taccuino/internal/storage/memory"
)

func quietLogger() *log.Logger {
	return log.New(log.Config{Output: io.Discard})
}

func newStore(opts ...kv.Option) (*kv.Store, *memory.Store) {
	backend := memory.New()
	opts = append([]kv.Option{kv.WithLogger(quietLogger())}, opts...)
	return kv.New(backend, opts...), backend
}

// failingBackend fails every call with err.
type failingBackend struct {
	err error
}

func (f failingBackend) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingBackend) Set(context.Context, string, string) error         { return f.err }
func (f failingBackend) Delete(context.Context, string) error              { return f.err }
func (f failingBackend) DeleteAll(context.Context) error                   { return f.err }
func (f failingBackend) Keys(context.Context) ([]string, error)            { return nil, f.err }

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()

	cases := map[string]any{
		"string": "hello",
		"number": 12.5,
		"bool":   true,
		"null":   nil,
		"list":   []any{1.0, "two", false},
		"object": map[string]any{"a": 1.0, "b": []any{"x"}},
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			if err := store.SetItem(ctx, key, value); err != nil {
				t.Fatalf("SetItem: %v", err)
			}
			got, ok, err := store.GetItem(ctx, key)
			if err != nil || !ok {
				t.Fatalf("GetItem = %v, %v, %v", got, ok, err)
			}
			if !reflect.DeepEqual(got, value) {
				t.Fatalf("GetItem = %#v, want %#v", got, value)
			}
		})
	}
}

func TestSetItemReplaces(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()

	_ = store.SetItem(ctx, "k", "first")
	if err := store.SetItem(ctx, "k", "second"); err != nil {
		t.Fatal(err)
	}
	got, _, _ := store.GetItem(ctx, "k")
	if got != "second" {
		t.Fatalf("GetItem = %v, want second", got)
	}
}

func TestGetItemAbsent(t *testing.T) {
	store, _ := newStore()
	got, ok, err := store.GetItem(context.Background(), "never-written")
	if ok || err != nil || got != nil {
		t.Fatalf("GetItem = %v, %v, %v; want nil, false, nil", got, ok, err)
	}
}

func TestRemoveItemIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()

	_ = store.SetItem(ctx, "k", 1)
	for i := range 2 {
		if err := store.RemoveItem(ctx, "k"); err != nil {
			t.Fatalf("RemoveItem #%d: %v", i+1, err)
		}
	}
	if _, ok, _ := store.GetItem(ctx, "k"); ok {
		t.Fatal("key present after RemoveItem")
	}
}

func TestSerializationError(t *testing.T) {
	ctx := context.Background()

	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	cases := map[string]any{
		"channel": make(chan int),
		"func":    func() {},
		"nan":     math.NaN(),
		"cycle":   cyclic,
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			store, backend := newStore()
			err := store.SetItem(ctx, "k", value)
			if !errors.Is(err, kv.ErrSerialization) {
				t.Fatalf("SetItem error = %v, want serialization error", err)
			}
			if backend.Len() != 0 {
				t.Fatal("unencodable value reached the backend")
			}
		})
	}
}

func TestDeserializationError(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"{not json", "", "1 2", "undefined"} {
		backend := memory.New()
		_ = backend.Set(ctx, "k", raw)
		store := kv.New(backend, kv.WithLogger(quietLogger()))

		_, ok, err := store.GetItem(ctx, "k")
		if ok || !errors.Is(err, kv.ErrDeserialization) {
			t.Fatalf("raw %q: GetItem = %v, %v; want deserialization error", raw, ok, err)
		}
		var kerr *kv.Error
		if !errors.As(err, &kerr) || kerr.Op != "getItem" || kerr.Key != "k" {
			t.Fatalf("raw %q: unexpected error detail %#v", raw, kerr)
		}
	}
}

func TestWriteFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("quota exceeded")
	store := kv.New(failingBackend{err: cause}, kv.WithLogger(quietLogger()))

	checks := map[string]error{
		"setItem":    store.SetItem(ctx, "k", 1),
		"removeItem": store.RemoveItem(ctx, "k"),
		"clear":      store.Clear(ctx),
	}
	for op, err := range checks {
		if !errors.Is(err, kv.ErrStorageWrite) {
			t.Errorf("%s error = %v, want storage write error", op, err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("%s error does not wrap cause: %v", op, err)
		}
	}
}

func TestReadFailuresDegrade(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := log.New(log.Config{Output: &buf})
	store := kv.New(failingBackend{err: errors.New("device gone")}, kv.WithLogger(logger))

	got, ok, err := store.GetItem(ctx, "k")
	if got != nil || ok || err != nil {
		t.Fatalf("GetItem = %v, %v, %v; want absent without error", got, ok, err)
	}
	keys := store.GetAllKeys(ctx)
	if keys == nil || len(keys) != 0 {
		t.Fatalf("GetAllKeys = %#v, want empty non-nil list", keys)
	}
	if !strings.Contains(buf.String(), "device gone") {
		t.Fatalf("degraded reads were not logged: %q", buf.String())
	}
}

func TestNamespace(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	_ = backend.Set(ctx, "other:x", `"foreign"`)
	_ = backend.Set(ctx, "loose", `"foreign"`)

	store := kv.New(backend, kv.WithNamespace("app"), kv.WithLogger(quietLogger()))
	_ = store.SetItem(ctx, "a", 1)
	_ = store.SetItem(ctx, "b", 2)

	if _, ok, _ := backend.Get(ctx, "app:a"); !ok {
		t.Fatal("namespaced key not written with prefix")
	}
	if keys := store.GetAllKeys(ctx); !slices.Equal(keys, []string{"a", "b"}) {
		t.Fatalf("GetAllKeys = %v, want [a b]", keys)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if keys := store.GetAllKeys(ctx); len(keys) != 0 {
		t.Fatalf("GetAllKeys after Clear = %v", keys)
	}
	remaining, _ := backend.Keys(ctx)
	if !slices.Equal(remaining, []string{"other:x", "loose"}) {
		t.Fatalf("Clear touched foreign keys, remaining %v", remaining)
	}
}

func TestClearWithoutNamespace(t *testing.T) {
	ctx := context.Background()
	store, backend := newStore()
	_ = store.SetItem(ctx, "a", 1)
	_ = backend.Set(ctx, "foreign", "2")

	if err := store.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if backend.Len() != 0 {
		t.Fatal("Clear without namespace should empty the backend")
	}
	if keys := store.GetAllKeys(ctx); len(keys) != 0 {
		t.Fatalf("GetAllKeys = %v", keys)
	}
}

type note struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

func TestTyped(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore()
	notes := kv.NewTyped[note](store)

	want := note{Title: "groceries", Tags: []string{"food"}}
	if err := notes.Set(ctx, "n1", want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := notes.Get(ctx, "n1")
	if err != nil || !ok || !reflect.DeepEqual(got, want) {
		t.Fatalf("Get = %+v, %v, %v", got, ok, err)
	}

	_ = store.SetItem(ctx, "bad", []int{1})
	if _, ok, err := notes.Get(ctx, "bad"); ok || !errors.Is(err, kv.ErrDeserialization) {
		t.Fatalf("Get mismatched shape = %v, %v", ok, err)
	}

	if err := notes.Remove(ctx, "n1"); err != nil {
		t.Fatal(err)
	}
	if got, ok, _ := notes.Get(ctx, "n1"); ok || got.Title != "" {
		t.Fatalf("Get after Remove = %+v, %v", got, ok)
	}
}

func TestErrorMessage(t *testing.T) {
	err := &kv.Error{Op: "setItem", Key: "k", Kind: kv.KindStorageWrite, Err: errors.New("full")}
	want := `setItem: storage write error (key "k"): full`
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
	if errors.Is(err, kv.ErrSerialization) {
		t.Fatal("kinds should not cross-match")
	}
}
