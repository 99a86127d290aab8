package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/example/monelog/internal/expense"
	"github.com/example/monelog/internal/logging"
	"github.com/spf13/cobra"
)

func newTotalCmd() *cobra.Command {
	var (
		exact    bool
		currency string
	)
	cmd := &cobra.Command{
		Use:   "total [values...]",
		Short: "Sum expense values; reads a JSON array from stdin when no values are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := readValues(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if !expense.KnownCurrency(currency) {
				return fmt.Errorf("unknown currency %q", currency)
			}
			sum := expense.Summarize(values)
			out := cmd.OutOrStdout()
			if exact {
				fmt.Fprintln(out, sum.Exact.String())
			} else {
				fmt.Fprintln(out, formatFloat(sum.Total))
			}
			fmt.Fprintln(out, expense.Format(sum.Exact, currency))
			if sum.Ignored > 0 {
				log := logging.NewConsole(cmd.ErrOrStderr(), cmd.Flag("log-level").Value.String())
				log.Warn().
					Int("count", sum.Count).
					Int("ignored", sum.Ignored).
					Msgf("%d of %d values were not numeric and counted as zero", sum.Ignored, sum.Count)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "print the decimal total instead of the float sum")
	cmd.Flags().StringVar(&currency, "currency", expense.DefaultCurrency, "ISO 4217 currency for the formatted total")
	return cmd
}

// readValues returns args as-is, or decodes a JSON array from r when args
// is empty.
func readValues(args []string, r io.Reader) ([]any, error) {
	if len(args) > 0 {
		values := make([]any, len(args))
		for i, a := range args {
			values[i] = a
		}
		return values, nil
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var values []any
	if err := dec.Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode stdin: %w", err)
	}
	return values, nil
}
