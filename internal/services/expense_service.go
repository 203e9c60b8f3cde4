package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"taccuino/internal/core"
	"taccuino/internal/idgen"
	"taccuino/internal/kv"
	"taccuino/internal/log"
	"taccuino/internal/period"
)

const expenseKeyPrefix = "expense:"

var ErrExpenseNotFound = errors.New("expense not found")

// ExpenseKey returns the store key for an expense ID.
func ExpenseKey(id string) string {
	return expenseKeyPrefix + id
}

// ExpenseService persists expenses one per key and derives period views from
// the full list.
type ExpenseService struct {
	store    *kv.Store
	expenses kv.Typed[core.Expense]
	logger   *log.Logger

	newID func() string
	now   func() time.Time
}

func NewExpenseService(store *kv.Store, logger *log.Logger) *ExpenseService {
	if logger == nil {
		logger = log.Default(log.ComponentExpense)
	}
	return &ExpenseService{
		store:    store,
		expenses: kv.NewTyped[core.Expense](store),
		logger:   logger,
		newID:    idgen.GenerateID,
		now:      time.Now,
	}
}

// CreateExpense assigns an ID when the draft has none, validates and saves it.
// Saving an expense whose ID already exists replaces it.
func (s *ExpenseService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	if e.ID == "" {
		if err := e.AssignID(s.newID()); err != nil {
			return core.Expense{}, fmt.Errorf("assign expense id: %w", err)
		}
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, fmt.Errorf("validate expense: %w", err)
	}

	if err := s.expenses.Set(ctx, ExpenseKey(e.ID), e); err != nil {
		s.logger.LogError(ctx, "Failed to save expense", err, log.OpCreate, expenseFields(e))
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense saved", expenseFields(e).WithOperation(log.OpCreate).ToSlice()...)
	return e, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	e, ok, err := s.expenses.Get(ctx, ExpenseKey(id))
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %s: %w", id, err)
	}
	if !ok {
		return core.Expense{}, fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}
	return e, nil
}

// DeleteExpense removes an expense. Deleting an unknown ID succeeds.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.expenses.Remove(ctx, ExpenseKey(id)); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Expense deleted",
		log.NewFields().WithOperation(log.OpDelete).WithKey(ExpenseKey(id)).ToSlice()...)
	return nil
}

// ListExpenses returns every stored expense ordered by date, then ID. Records
// that fail to decode are logged and skipped.
func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	var out []core.Expense
	for _, key := range s.store.GetAllKeys(ctx) {
		if !strings.HasPrefix(key, expenseKeyPrefix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e, ok, err := s.expenses.Get(ctx, key)
		if err != nil {
			s.logger.WarnContext(ctx, "Skipping unreadable expense",
				log.NewFields().WithOperation(log.OpList).WithKey(key).WithError(err).ToSlice()...)
			continue
		}
		if ok {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListExpensesInPeriod returns the expenses inside the period containing ref,
// with the range used.
func (s *ExpenseService) ListExpensesInPeriod(ctx context.Context, p period.Period, ref time.Time) ([]core.Expense, period.DateRange, error) {
	rng, err := s.rangeFor(p, ref)
	if err != nil {
		return nil, period.DateRange{}, err
	}
	all, err := s.ListExpenses(ctx)
	if err != nil {
		return nil, period.DateRange{}, err
	}

	var out []core.Expense
	for _, e := range all {
		if rng.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out, rng, nil
}

// Summary totals the period containing ref by category.
func (s *ExpenseService) Summary(ctx context.Context, p period.Period, ref time.Time) (core.PeriodSummary, error) {
	expenses, rng, err := s.ListExpensesInPeriod(ctx, p, ref)
	if err != nil {
		return core.PeriodSummary{}, err
	}

	summary := core.Summarize(p, rng, expenses)
	s.logger.DebugContext(ctx, "Summary computed",
		log.NewFields().
			WithOperation(log.OpSummary).
			WithRange(p.String(), rng.Start.Format(time.RFC3339), rng.End.Format(time.RFC3339)).
			ToSlice()...)
	return summary, nil
}

// RelinkCategory rewrites the embedded copy of c in every expense that
// references c.ID and reports how many were updated. Expenses are rewritten
// one at a time; a failure leaves earlier rewrites in place.
func (s *ExpenseService) RelinkCategory(ctx context.Context, c core.Category) (int, error) {
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("validate category: %w", err)
	}
	all, err := s.ListExpenses(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, e := range all {
		if e.Category.ID != c.ID || e.Category == c {
			continue
		}
		e.Category = c
		if err := s.expenses.Set(ctx, ExpenseKey(e.ID), e); err != nil {
			return updated, fmt.Errorf("relink expense %s: %w", e.ID, err)
		}
		updated++
	}

	s.logger.InfoContext(ctx, "Category relinked",
		log.FieldOperation, log.OpUpdate,
		log.FieldCategoryID, c.ID,
		log.FieldCount, updated)
	return updated, nil
}

func (s *ExpenseService) rangeFor(p period.Period, ref time.Time) (period.DateRange, error) {
	if ref.IsZero() {
		ref = s.now()
	}
	return period.Range(p, ref)
}

func expenseFields(e core.Expense) log.LogFields {
	return log.NewFields().
		WithKey(ExpenseKey(e.ID)).
		WithExpense(e.ID, e.Description, e.Amount.StringFixed(2), e.Category.ID, e.PaymentMethod.String())
}
