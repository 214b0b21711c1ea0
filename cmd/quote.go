package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// quoteOptions holds dependencies for the quote command.
type quoteOptions struct {
	newClient func() (*tradier.Client, error)
}

// newQuoteCmd creates the quote command with the given options.
func newQuoteCmd(opts quoteOptions) *cobra.Command {
	var (
		flagRefresh  bool
		flagInterval time.Duration
		flagGreeks   bool
	)

	cmd := &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Get a quote for an equity or option symbol",
		Long: `Get a market quote for an equity or an OCC option symbol.

Examples:
  optcal quote AAPL
  optcal quote AAPL240119C00190000 --greeks
  optcal quote SPY --refresh --interval 5s`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, opts, args[0], flagRefresh, flagInterval, flagGreeks)
		},
	}

	cmd.Flags().BoolVarP(&flagRefresh, "refresh", "r", false, "Keep refreshing until interrupted")
	cmd.Flags().DurationVar(&flagInterval, "interval", 10*time.Second, "Refresh interval")
	cmd.Flags().BoolVar(&flagGreeks, "greeks", false, "Include greeks (option symbols only)")
	cmd.SilenceUsage = true

	return cmd
}

func runQuote(cmd *cobra.Command, opts quoteOptions, symbol string, refresh bool, interval time.Duration, greeks bool) error {
	client, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := showQuote(ctx, cmd, client, symbol, greeks); err != nil {
		return err
	}
	if !refresh {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			if err := showQuote(ctx, cmd, client, symbol, greeks); err != nil {
				return err
			}
		}
	}
}

func showQuote(ctx context.Context, cmd *cobra.Command, client *tradier.Client, symbol string, greeks bool) error {
	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	quote, err := client.GetQuote(fetchCtx, symbol, greeks)
	if err != nil {
		return fmt.Errorf("failed to fetch quote: %w", err)
	}

	if GetJSONMode() {
		return newFormatter(cmd).Print(quote)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s (%s)\n", quote.Description, quote.Symbol)
	pairs := [][2]string{
		{"Last", output.Currency(quote.Last)},
		{"Change", output.Change(quote.Change, quote.ChangePercentage)},
		{"Bid", output.Currency(quote.Bid)},
		{"Ask", output.Currency(quote.Ask)},
		{"Volume", output.Number(float64(quote.Volume), 0)},
	}
	if quote.IsOption() {
		pairs = append(pairs,
			[2]string{"Open Interest", output.Number(float64(quote.OpenInterest), 0)},
			[2]string{"Strike", output.Currency(quote.Strike)},
			[2]string{"Expiration", quote.ExpirationDate},
		)
	} else {
		pairs = append(pairs,
			[2]string{"Open", output.Currency(quote.Open)},
			[2]string{"High", output.Currency(quote.High)},
			[2]string{"Low", output.Currency(quote.Low)},
			[2]string{"52w Range", fmt.Sprintf("%s - %s", output.Currency(quote.Week52Low), output.Currency(quote.Week52High))},
		)
	}
	output.DefinitionList(out, pairs)

	if quote.Greeks != nil {
		_, _ = fmt.Fprintln(out, "Greeks")
		output.DefinitionList(out, [][2]string{
			{"Delta", fmt.Sprintf("%g", quote.Greeks.Delta)},
			{"Gamma", fmt.Sprintf("%g", quote.Greeks.Gamma)},
			{"Theta", fmt.Sprintf("%g", quote.Greeks.Theta)},
			{"Vega", fmt.Sprintf("%g", quote.Greeks.Vega)},
			{"IV", output.Percent(quote.Greeks.SmvVol, 2)},
		})
	}
	return nil
}

func init() {
	rootCmd.AddCommand(newQuoteCmd(quoteOptions{newClient: newTradierClient}))
}
