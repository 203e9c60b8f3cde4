package main

import (
	"fmt"
	"strings"
	"time"

	"taccuino/internal/cli"
	"taccuino/internal/core"
)

// parseDay reads YYYY-MM-DD as a UTC day. An empty string means today.
func parseDay(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.NewDate(now.Year(), int(now.Month()), now.Day()), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

func formatExpenseAmount(app *cli.App, e core.Expense, currency string) string {
	if currency == "" {
		currency = app.Config.DefaultCurrency
	}
	s, err := app.Formatter.FormatAmount(e.Amount, currency)
	if err != nil {
		return e.Amount.StringFixed(2)
	}
	return s
}

func formatExpenseDate(app *cli.App, t time.Time) string {
	s, err := app.Formatter.FormatDate(t, app.Config.DatePattern)
	if err != nil {
		return t.Format(time.DateOnly)
	}
	return s
}
