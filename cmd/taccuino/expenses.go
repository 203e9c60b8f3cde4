package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"taccuino/internal/cli"
	"taccuino/internal/core"
	"taccuino/internal/period"
)

func addCmd() *cobra.Command {
	var (
		amount, categoryID, desc, date, method string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				amt, err := core.ParseAmount(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				day, err := parseDay(date, time.Now())
				if err != nil {
					return err
				}
				cat, err := app.Categories.Find(ctx, categoryID)
				if err != nil {
					return err
				}

				saved, err := app.Expenses.CreateExpense(ctx, core.Expense{
					Amount:        amt,
					Category:      cat,
					Description:   desc,
					Date:          day,
					PaymentMethod: core.PaymentMethod(method),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s: %s %s\n",
					saved.ID, formatExpenseAmount(app, saved, ""), saved.Category.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 12.50 or 12,50")
	cmd.Flags().StringVar(&categoryID, "category", "other", "category id")
	cmd.Flags().StringVar(&desc, "desc", "", "description")
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&method, "method", string(core.PaymentCard), "payment method")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func listCmd() *cobra.Command {
	var periodName, ref, currency string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, optionally limited to a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				var expenses []core.Expense
				if periodName == "" {
					all, err := app.Expenses.ListExpenses(ctx)
					if err != nil {
						return err
					}
					expenses = all
				} else {
					p, err := period.Parse(periodName)
					if err != nil {
						return err
					}
					refDay, err := parseDay(ref, time.Now())
					if err != nil {
						return err
					}
					expenses, _, err = app.Expenses.ListExpensesInPeriod(ctx, p, refDay)
					if err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				if len(expenses) == 0 {
					fmt.Fprintln(out, "No expenses found.")
					return nil
				}
				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				defer w.Flush()
				fmt.Fprintln(w, "ID\tDate\tAmount\tCategory\tMethod\tDescription")
				for _, e := range expenses {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						e.ID, formatExpenseDate(app, e.Date), formatExpenseAmount(app, e, currency),
						e.Category.Name, e.PaymentMethod, e.Description)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&periodName, "period", "", "week, month or year")
	cmd.Flags().StringVar(&ref, "ref", "", "reference date inside the period, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code (default from config)")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one expense as stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				e, err := app.Expenses.GetExpense(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:          %s\n", e.ID)
				fmt.Fprintf(out, "Date:        %s\n", formatExpenseDate(app, e.Date))
				fmt.Fprintf(out, "Amount:      %s\n", formatExpenseAmount(app, e, ""))
				fmt.Fprintf(out, "Category:    %s (%s)\n", e.Category.Name, e.Category.ID)
				fmt.Fprintf(out, "Method:      %s\n", e.PaymentMethod)
				fmt.Fprintf(out, "Description: %s\n", e.Description)
				return nil
			})
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				if err := app.Expenses.DeleteExpense(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
