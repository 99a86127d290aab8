package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "monelog",
		Short:         "Expense totals and backend wiring for monelog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "path to a monelog.yaml config file")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(newServeCmd(), newTotalCmd())
	return root
}
