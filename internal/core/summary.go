package core

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"taccuino/internal/period"
)

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category   Category
	Amount     decimal.Decimal
	Count      int
	Percentage int // share of the summary total, 0-100
}

// PeriodSummary is a compact summary of the expenses inside a date range.
type PeriodSummary struct {
	Period     period.Period
	Range      period.DateRange
	Total      decimal.Decimal
	Count      int
	ByCategory []CategoryAmount
}

// CalculatePercentage returns round(100*part/total), rounding half away from
// zero. A zero total or a non-finite quotient yields 0; results beyond the
// int range are clamped.
func CalculatePercentage(part, total float64) int {
	if total == 0 {
		return 0
	}
	q := math.Round(100 * part / total)
	switch {
	case math.IsNaN(q) || math.IsInf(q, 0):
		return 0
	case q >= math.MaxInt:
		return math.MaxInt
	case q <= math.MinInt:
		return math.MinInt
	}
	return int(q)
}

// PercentageOf is CalculatePercentage for decimal amounts.
func PercentageOf(part, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	return int(part.Mul(decimal.NewFromInt(100)).Div(total).Round(0).IntPart())
}

// Summarize totals the expenses dated inside rng, grouped by category ID.
// Groups are ordered by amount descending, then by category name.
func Summarize(p period.Period, rng period.DateRange, expenses []Expense) PeriodSummary {
	summary := PeriodSummary{Period: p, Range: rng, Total: decimal.Zero}

	index := make(map[string]int)
	for _, e := range expenses {
		if !rng.Contains(e.Date) {
			continue
		}
		summary.Total = summary.Total.Add(e.Amount)
		summary.Count++

		i, ok := index[e.Category.ID]
		if !ok {
			i = len(summary.ByCategory)
			index[e.Category.ID] = i
			summary.ByCategory = append(summary.ByCategory, CategoryAmount{
				Category: e.Category,
				Amount:   decimal.Zero,
			})
		}
		summary.ByCategory[i].Amount = summary.ByCategory[i].Amount.Add(e.Amount)
		summary.ByCategory[i].Count++
	}

	for i := range summary.ByCategory {
		summary.ByCategory[i].Percentage = PercentageOf(summary.ByCategory[i].Amount, summary.Total)
	}

	sort.SliceStable(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c > 0
		}
		return a.Category.Name < b.Category.Name
	})

	return summary
}
