package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"taccuino/internal/cli"
	"taccuino/internal/core"
	"taccuino/internal/period"
)

func summaryCmd() *cobra.Command {
	var periodName, ref, currency string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total a period by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				p, err := period.Parse(periodName)
				if err != nil {
					return err
				}
				refDay, err := summaryRef(p, ref)
				if err != nil {
					return err
				}
				if currency == "" {
					currency = app.Config.DefaultCurrency
				}

				s, err := app.Expenses.Summary(ctx, p, refDay)
				if err != nil {
					return err
				}
				return printSummary(cmd, app, s, currency)
			})
		},
	}
	cmd.Flags().StringVar(&periodName, "period", "month", "week, month or year")
	cmd.Flags().StringVar(&ref, "ref", "", "reference date inside the period, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code (default from config)")
	return cmd
}

// summaryRef resolves --ref, using the current period when it is empty.
func summaryRef(p period.Period, ref string) (time.Time, error) {
	if strings.TrimSpace(ref) == "" {
		rng, err := period.Current(p)
		if err != nil {
			return time.Time{}, err
		}
		return core.NewDate(rng.Start.Year(), int(rng.Start.Month()), rng.Start.Day()), nil
	}
	return parseDay(ref, time.Now())
}

func printSummary(cmd *cobra.Command, app *cli.App, s core.PeriodSummary, currency string) error {
	out := cmd.OutOrStdout()
	total, err := app.Formatter.FormatAmount(s.Total, currency)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s %s - %s: %s across %d expenses\n",
		s.Period, formatExpenseDate(app, s.Range.Start), formatExpenseDate(app, s.Range.End), total, s.Count)
	if s.Count == 0 {
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "Category\tAmount\tShare\tCount")
	for _, c := range s.ByCategory {
		amount, err := app.Formatter.FormatAmount(c.Amount, currency)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%d\n", c.Category.Name, amount, c.Percentage, c.Count)
	}
	return nil
}
