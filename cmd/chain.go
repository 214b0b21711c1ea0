package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/internal/chain"
	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// chainOptions holds dependencies for the chain command.
type chainOptions struct {
	newClient func() (*tradier.Client, error)
}

// newChainCmd creates the chain command with the given options.
func newChainCmd(opts chainOptions) *cobra.Command {
	var (
		flagStrikes int
		flagCalls   bool
		flagPuts    bool
	)

	cmd := &cobra.Command{
		Use:   "chain SYMBOL [EXPIRATION]",
		Short: "Show the option chain around the current price",
		Long: `Show the option chain for an expiration, windowed to the strikes
nearest the underlying's last price. When no expiration is given the
nearest one is used.

Examples:
  optcal chain AAPL
  optcal chain AAPL 2026-09-18 --strikes 10
  optcal chain AAPL 2026-09-18 --calls`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagCalls && flagPuts {
				return fmt.Errorf("--calls and --puts are mutually exclusive")
			}
			var expiration *time.Time
			if len(args) == 2 {
				parsed, err := time.Parse(tradier.DateFormat, args[1])
				if err != nil {
					return fmt.Errorf("invalid expiration %q (want YYYY-MM-DD)", args[1])
				}
				expiration = &parsed
			}
			return runChain(cmd, opts, args[0], expiration, flagStrikes, flagCalls, flagPuts)
		},
	}

	cmd.Flags().IntVarP(&flagStrikes, "strikes", "n", 8, "Strikes to show on each side of the price")
	cmd.Flags().BoolVar(&flagCalls, "calls", false, "Show calls only")
	cmd.Flags().BoolVar(&flagPuts, "puts", false, "Show puts only")
	cmd.SilenceUsage = true

	return cmd
}

func runChain(cmd *cobra.Command, opts chainOptions, symbol string, expiration *time.Time, strikes int, callsOnly, putsOnly bool) error {
	client, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	quote, err := client.GetQuote(ctx, symbol, false)
	if err != nil {
		return fmt.Errorf("failed to fetch quote: %w", err)
	}

	if expiration == nil {
		expirations, err := client.GetOptionExpirations(ctx, symbol, false)
		if err != nil {
			return fmt.Errorf("failed to fetch expirations: %w", err)
		}
		expiration = &expirations[0]
	}

	entries, err := client.GetOptionChains(ctx, symbol, *expiration, true)
	if err != nil {
		return fmt.Errorf("failed to fetch chain: %w", err)
	}

	pairs, err := chain.Window(entries, quote.Last, strikes, chain.Filter{
		ExcludeCalls: putsOnly,
		ExcludePuts:  callsOnly,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s @ %s\n", quote.Symbol,
		expiration.Format("Jan 2, 2006"), output.Currency(quote.Last))

	headers := []string{"Strike"}
	if !putsOnly {
		headers = append(headers, "Call Bid", "Call Ask", "Call IV", "Call Delta")
	}
	if !callsOnly {
		headers = append(headers, "Put Bid", "Put Ask", "Put IV", "Put Delta")
	}

	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		row := []string{output.Currency(pair.Strike)}
		if !putsOnly {
			row = append(row, sideCells(pair.Call)...)
		}
		if !callsOnly {
			row = append(row, sideCells(pair.Put)...)
		}
		rows = append(rows, row)
	}
	return newFormatter(cmd).Table(headers, rows)
}

// sideCells renders one side of a strike row, blank when the contract
// is not listed.
func sideCells(entry *tradier.ChainEntry) []string {
	if entry == nil {
		return []string{"", "", "", ""}
	}
	iv, delta := "", ""
	if entry.Greeks != nil {
		iv = output.Percent(entry.Greeks.SmvVol, 1)
		delta = fmt.Sprintf("%.4f", entry.Greeks.Delta)
	}
	return []string{
		output.Currency(entry.Bid),
		output.Currency(entry.Ask),
		iv,
		delta,
	}
}

func init() {
	rootCmd.AddCommand(newChainCmd(chainOptions{newClient: newTradierClient}))
}
