package cmd

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// positionsOptions holds dependencies for the positions command.
type positionsOptions struct {
	newClient func() (*tradier.Client, error)
}

// newPositionsCmd creates the positions command with the given options.
func newPositionsCmd(opts positionsOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "List open positions with current value and gain/loss",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPositions(cmd, opts)
		},
	}
	cmd.SilenceUsage = true

	return cmd
}

// positionGroup aggregates positions sharing an underlying and
// instrument type, so several contracts on one symbol roll up into a
// single row.
type positionGroup struct {
	symbol   string
	cost     float64
	quantity float64
	value    float64
}

func runPositions(cmd *cobra.Command, opts positionsOptions) error {
	client, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	positions, err := client.GetPositions(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch positions: %w", err)
	}
	if len(positions) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No open positions.")
		return nil
	}

	groups := map[string]*positionGroup{}
	var order []string
	for _, pos := range positions {
		quote, err := client.GetQuote(ctx, pos.Symbol, false)
		if err != nil {
			return fmt.Errorf("failed to fetch quote for %s: %w", pos.Symbol, err)
		}

		symbol, value := quote.Symbol, quote.Last*pos.Quantity
		if quote.IsOption() {
			symbol = quote.Underlying
			value = (quote.Bid + quote.Ask) / 2 * 100 * pos.Quantity
		}

		key := symbol + "-" + quote.Type
		group, ok := groups[key]
		if !ok {
			group = &positionGroup{symbol: symbol, quantity: pos.Quantity}
			groups[key] = group
			order = append(order, key)
		}
		group.cost += pos.CostBasis
		group.value += value
		if pos.Quantity < group.quantity {
			group.quantity = pos.Quantity
		}
	}

	balances, err := client.GetBalances(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch balances: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Account balance: %s\n",
		output.Currency(balances.TotalEquity))

	rows := make([][]string, 0, len(order))
	for _, key := range order {
		group := groups[key]
		gainLoss := ""
		if group.cost != 0 {
			change := group.value - group.cost
			gainLoss = output.Change(change, change/math.Abs(group.cost)*100)
		}
		rows = append(rows, []string{
			group.symbol,
			output.Currency(group.cost),
			output.Number(group.quantity, 0),
			output.Currency(group.value),
			gainLoss,
		})
	}
	return newFormatter(cmd).Table([]string{"Symbol", "Cost Basis", "Quantity", "Value", "Gain/Loss"}, rows)
}

func init() {
	rootCmd.AddCommand(newPositionsCmd(positionsOptions{newClient: newTradierClient}))
}
