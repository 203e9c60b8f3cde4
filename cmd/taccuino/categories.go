package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"taccuino/internal/cli"
	"taccuino/internal/core"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List or edit expense categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				cats, err := app.Categories.List(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				defer w.Flush()
				fmt.Fprintln(w, "ID\tName\tIcon\tColor")
				for _, c := range cats {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Icon, c.Color)
				}
				return nil
			})
		},
	}
	cmd.AddCommand(saveCategoryCmd())
	return cmd
}

func saveCategoryCmd() *cobra.Command {
	var (
		c      core.Category
		relink bool
	)
	cmd := &cobra.Command{
		Use:   "save <id>",
		Short: "Add or update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *cli.App) error {
				c.ID = args[0]
				if err := app.Categories.Save(ctx, c); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Saved category %s\n", c.ID)
				if !relink {
					return nil
				}
				n, err := app.Expenses.RelinkCategory(ctx, c)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Relinked %d expenses\n", n)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "display name")
	cmd.Flags().StringVar(&c.Icon, "icon", "", "icon name")
	cmd.Flags().StringVar(&c.Color, "color", "", "color, e.g. #FF6B6B")
	cmd.Flags().BoolVar(&relink, "relink", false, "rewrite the category in existing expenses")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
