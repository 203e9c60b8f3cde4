package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taccuino/internal/cli"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taccuino",
		Short:         "Personal expense notebook",
		Long:          `taccuino records expenses in a local key-value store and summarizes them by week, month or year.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(addCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(showCmd())
	cmd.AddCommand(removeCmd())
	cmd.AddCommand(summaryCmd())
	cmd.AddCommand(categoriesCmd())
	cmd.AddCommand(keysCmd())
	cmd.AddCommand(clearCmd())

	return cmd
}

func main() {
	ctx, cancel := cli.SignalContext(context.Background())
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withApp bootstraps the data layer for one command run.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *cli.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := cli.Bootstrap(ctx)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(ctx, app)
}
