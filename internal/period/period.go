// Package period computes calendar boundaries used to bucket expenses.
//
// Each granularity has its own RangeCalculator. Unknown granularities are
// rejected with ErrUnknownPeriod instead of falling back to a default.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Period is a calendar granularity.
type Period int

const (
	Week Period = iota + 1
	Month
	Year
)

var ErrUnknownPeriod = errors.New("unknown period")

// DateRange is an inclusive [Start, End] interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the range, both ends included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// RangeCalculator returns the range of one granularity around a reference date.
type RangeCalculator interface {
	Range(ref time.Time) DateRange
	// Shift moves ref by n periods.
	Shift(ref time.Time, n int) time.Time
}

// WeekCalculator uses ISO weeks, Monday through Sunday.
type WeekCalculator struct{}

func (WeekCalculator) Range(ref time.Time) DateRange {
	day := startOfDay(ref)
	// time.Sunday == 0; shift so Monday is offset 0.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return DateRange{Start: start, End: lastInstant(start.AddDate(0, 0, 7))}
}

func (WeekCalculator) Shift(ref time.Time, n int) time.Time {
	return ref.AddDate(0, 0, 7*n)
}

// MonthCalculator spans a calendar month.
type MonthCalculator struct{}

func (MonthCalculator) Range(ref time.Time) DateRange {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return DateRange{Start: start, End: lastInstant(start.AddDate(0, 1, 0))}
}

func (MonthCalculator) Shift(ref time.Time, n int) time.Time {
	// Anchor on the first so Jan 31 + 1 month lands in February.
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return first.AddDate(0, n, 0)
}

// YearCalculator spans January 1 through December 31.
type YearCalculator struct{}

func (YearCalculator) Range(ref time.Time) DateRange {
	start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	return DateRange{Start: start, End: lastInstant(start.AddDate(1, 0, 0))}
}

func (YearCalculator) Shift(ref time.Time, n int) time.Time {
	first := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	return first.AddDate(n, 0, 0)
}

var calculators = map[Period]RangeCalculator{
	Week:  WeekCalculator{},
	Month: MonthCalculator{},
	Year:  YearCalculator{},
}

// String implements fmt.Stringer
func (p Period) String() string {
	switch p {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// IsValid returns true if p is a known granularity
func (p Period) IsValid() bool {
	_, ok := calculators[p]
	return ok
}

// Parse converts "week", "month" or "year" (any case) to a Period.
func Parse(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "week":
		return Week, nil
	case "month":
		return Month, nil
	case "year":
		return Year, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPeriod, s)
}

// Calculator returns the RangeCalculator for p.
func Calculator(p Period) (RangeCalculator, error) {
	c, ok := calculators[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPeriod, p)
	}
	return c, nil
}

// Range returns the boundaries of the period containing ref, in ref's location.
func Range(p Period, ref time.Time) (DateRange, error) {
	c, err := Calculator(p)
	if err != nil {
		return DateRange{}, err
	}
	return c.Range(ref), nil
}

// Current returns the range of the period containing the present moment.
func Current(p Period) (DateRange, error) {
	return Range(p, time.Now())
}

// Previous returns the range immediately before the one containing ref.
func Previous(p Period, ref time.Time) (DateRange, error) {
	return shifted(p, ref, -1)
}

// Next returns the range immediately after the one containing ref.
func Next(p Period, ref time.Time) (DateRange, error) {
	return shifted(p, ref, 1)
}

func shifted(p Period, ref time.Time, n int) (DateRange, error) {
	c, err := Calculator(p)
	if err != nil {
		return DateRange{}, err
	}
	return c.Range(c.Shift(ref, n)), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// lastInstant is the nanosecond before the next period starts.
func lastInstant(nextStart time.Time) time.Time {
	return nextStart.Add(-time.Nanosecond)
}
