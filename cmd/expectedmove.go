package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/internal/analytics"
	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// expectedMoveOptions holds dependencies for the expected-move command.
type expectedMoveOptions struct {
	newClient func() (*tradier.Client, error)
}

// newExpectedMoveCmd creates the expected-move command with the given options.
func newExpectedMoveCmd(opts expectedMoveOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expected-move SYMBOL [EXPIRATION]",
		Short: "Estimate the expected price move from implied volatility",
		Long: `Estimate the one-standard-deviation expected move for an underlying.

With no expiration the nearest expiration's ATM implied volatility is
scaled to a single day; with an expiration it is scaled to the days
remaining.

Examples:
  optcal expected-move SPY
  optcal expected-move SPY 2026-09-18`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var expiration *time.Time
			if len(args) == 2 {
				exp, err := time.Parse(tradier.DateFormat, args[1])
				if err != nil {
					return fmt.Errorf("invalid expiration %q (want YYYY-MM-DD)", args[1])
				}
				expiration = &exp
			}
			return runExpectedMove(cmd, opts, args[0], expiration)
		},
	}
	cmd.SilenceUsage = true

	return cmd
}

func runExpectedMove(cmd *cobra.Command, opts expectedMoveOptions, symbol string, expiration *time.Time) error {
	client, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	estimator := &analytics.Estimator{Data: client}
	move, err := estimator.ExpectedMove(ctx, symbol, expiration)
	if err != nil {
		return err
	}

	if GetJSONMode() {
		return newFormatter(cmd).Print(move)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s expected move (%d DTE)\n", move.Symbol, move.DTE)
	output.DefinitionList(out, [][2]string{
		{"Last", output.Currency(move.Last)},
		{"Move", fmt.Sprintf("±%s (±%s)", output.Currency(move.Dollars), output.Percent(move.Percent, 2))},
		{"Range", fmt.Sprintf("%s - %s", output.Currency(move.RangeLow), output.Currency(move.RangeHigh))},
	})
	return nil
}

func init() {
	rootCmd.AddCommand(newExpectedMoveCmd(expectedMoveOptions{newClient: newTradierClient}))
}
