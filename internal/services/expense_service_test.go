package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"taccuino/internal/core"
	"taccuino/internal/kv"
	"taccuino/internal/log"
	"taccuino/internal/period"
	"taccuino/internal/storage/memory"
)

var quiet = log.New(log.Config{Output: io.Discard})

var (
	food      = core.Category{ID: "food", Name: "Food", Icon: "restaurant", Color: "#FF6B6B"}
	transport = core.Category{ID: "transport", Name: "Transport", Icon: "car", Color: "#4ECDC4"}
)

func newTestService(t *testing.T) (*ExpenseService, *kv.Store, *memory.Store) {
	t.Helper()
	backend := memory.New()
	store := kv.New(backend, kv.WithNamespace("test"), kv.WithLogger(quiet))
	svc := NewExpenseService(store, quiet)
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id%02d", n)
	}
	svc.now = func() time.Time { return time.Date(2025, 8, 13, 10, 0, 0, 0, time.UTC) }
	return svc, store, backend
}

func draft(amount string, cat core.Category, y, m, d int) core.Expense {
	return core.Expense{
		Amount:        decimal.RequireFromString(amount),
		Category:      cat,
		Description:   cat.Name + " " + amount,
		Date:          core.NewDate(y, m, d),
		PaymentMethod: core.PaymentCard,
	}
}

func TestCreateAndGetExpense(t *testing.T) {
	ctx := context.Background()
	svc, _, backend := newTestService(t)

	saved, err := svc.CreateExpense(ctx, draft("12.50", food, 2025, 8, 12))
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if saved.ID != "id01" {
		t.Fatalf("ID = %q, want generated id01", saved.ID)
	}
	if _, ok, _ := backend.Get(ctx, "test:expense:id01"); !ok {
		t.Fatal("expense not stored under namespaced expense key")
	}

	got, err := svc.GetExpense(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetExpense: %v", err)
	}
	if !got.Amount.Equal(saved.Amount) || got.Category != food || !got.Date.Equal(saved.Date) {
		t.Fatalf("GetExpense = %+v, want %+v", got, saved)
	}

	explicit := draft("3", transport, 2025, 8, 12)
	explicit.ID = "manual"
	if saved, _ := svc.CreateExpense(ctx, explicit); saved.ID != "manual" {
		t.Fatalf("explicit ID replaced: %q", saved.ID)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, backend := newTestService(t)

	tests := []struct {
		name string
		mod  func(*core.Expense)
		want error
	}{
		{"negative amount", func(e *core.Expense) { e.Amount = decimal.NewFromInt(-1) }, core.ErrNegativeAmount},
		{"zero date", func(e *core.Expense) { e.Date = time.Time{} }, core.ErrInvalidDate},
		{"no category", func(e *core.Expense) { e.Category = core.Category{} }, core.ErrEmptyCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := draft("1", food, 2025, 8, 1)
			tt.mod(&e)
			if _, err := svc.CreateExpense(ctx, e); !errors.Is(err, tt.want) {
				t.Fatalf("CreateExpense error = %v, want %v", err, tt.want)
			}
		})
	}
	if backend.Len() != 0 {
		t.Fatal("invalid expenses reached the backend")
	}

	zero := draft("0", food, 2025, 8, 1)
	if _, err := svc.CreateExpense(ctx, zero); err != nil {
		t.Fatalf("zero amount should be valid: %v", err)
	}
}

func TestGetAndDeleteExpense(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if _, err := svc.GetExpense(ctx, "nope"); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("GetExpense missing = %v", err)
	}

	saved, _ := svc.CreateExpense(ctx, draft("5", food, 2025, 8, 1))
	for range 2 {
		if err := svc.DeleteExpense(ctx, saved.ID); err != nil {
			t.Fatalf("DeleteExpense: %v", err)
		}
	}
	if _, err := svc.GetExpense(ctx, saved.ID); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("GetExpense after delete = %v", err)
	}
}

func TestListExpensesOrderingAndSkips(t *testing.T) {
	ctx := context.Background()
	svc, store, backend := newTestService(t)

	_, _ = svc.CreateExpense(ctx, draft("1", food, 2025, 8, 13))
	_, _ = svc.CreateExpense(ctx, draft("2", food, 2025, 8, 1))
	_, _ = svc.CreateExpense(ctx, draft("3", food, 2025, 8, 13))

	// Foreign and corrupt records under the namespace.
	_ = store.SetItem(ctx, "settings", map[string]any{"theme": "dark"})
	_ = backend.Set(ctx, "test:expense:broken", "{")

	list, err := svc.ListExpenses(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, e := range list {
		ids = append(ids, e.ID)
	}
	if fmt.Sprint(ids) != "[id02 id01 id03]" {
		t.Fatalf("ListExpenses order = %v, want [id02 id01 id03]", ids)
	}
}

func TestListExpensesInPeriodAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, _ = svc.CreateExpense(ctx, draft("30", food, 2025, 8, 11))
	_, _ = svc.CreateExpense(ctx, draft("10", transport, 2025, 8, 17))
	_, _ = svc.CreateExpense(ctx, draft("60", food, 2025, 8, 10)) // previous week
	_, _ = svc.CreateExpense(ctx, draft("100", food, 2025, 7, 31))

	week, rng, err := svc.ListExpensesInPeriod(ctx, period.Week, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(week) != 2 {
		t.Fatalf("week expenses = %d, want 2", len(week))
	}
	if !rng.Start.Equal(core.NewDate(2025, 8, 11)) {
		t.Fatalf("default reference not used, range starts %v", rng.Start)
	}

	summary, err := svc.Summary(ctx, period.Month, core.NewDate(2025, 8, 20))
	if err != nil {
		t.Fatal(err)
	}
	if summary.Count != 3 || !summary.Total.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("month summary = %d expenses, total %s", summary.Count, summary.Total)
	}
	if len(summary.ByCategory) != 2 || summary.ByCategory[0].Category.ID != "food" || summary.ByCategory[0].Percentage != 90 {
		t.Fatalf("ByCategory = %+v", summary.ByCategory)
	}

	if _, err := svc.Summary(ctx, period.Period(0), time.Time{}); !errors.Is(err, period.ErrUnknownPeriod) {
		t.Fatalf("Summary unknown period = %v", err)
	}
}

func TestRelinkCategory(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, _ = svc.CreateExpense(ctx, draft("1", food, 2025, 8, 1))
	_, _ = svc.CreateExpense(ctx, draft("2", food, 2025, 8, 2))
	_, _ = svc.CreateExpense(ctx, draft("3", transport, 2025, 8, 3))

	renamed := food
	renamed.Name = "Groceries"
	n, err := svc.RelinkCategory(ctx, renamed)
	if err != nil || n != 2 {
		t.Fatalf("RelinkCategory = %d, %v; want 2", n, err)
	}
	again, _ := svc.RelinkCategory(ctx, renamed)
	if again != 0 {
		t.Fatalf("second RelinkCategory updated %d", again)
	}

	list, _ := svc.ListExpenses(ctx)
	for _, e := range list {
		if e.Category.ID == "food" && e.Category.Name != "Groceries" {
			t.Fatalf("expense %s not relinked", e.ID)
		}
		if e.Category.ID == "transport" && e.Category != transport {
			t.Fatalf("unrelated expense %s changed", e.ID)
		}
	}

	if _, err := svc.RelinkCategory(ctx, core.Category{ID: "x"}); !errors.Is(err, core.ErrEmptyCategoryName) {
		t.Fatalf("RelinkCategory invalid = %v", err)
	}
}

type failingSetBackend struct {
	*memory.Store
}

func (failingSetBackend) Set(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func TestCreateExpenseWriteFailure(t *testing.T) {
	store := kv.New(failingSetBackend{memory.New()}, kv.WithLogger(quiet))
	svc := NewExpenseService(store, quiet)

	_, err := svc.CreateExpense(context.Background(), draft("1", food, 2025, 8, 1))
	if !errors.Is(err, kv.ErrStorageWrite) {
		t.Fatalf("CreateExpense error = %v, want storage write error", err)
	}
}
