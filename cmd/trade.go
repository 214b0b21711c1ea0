package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/internal/trade"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// tradeOptions holds dependencies for the trade commands.
type tradeOptions struct {
	newClient func() (*tradier.Client, error)
	prompt    trade.Prompter
}

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Build, inspect, and modify orders",
}

// newTradeNewCmd creates the interactive order construction command.
func newTradeNewCmd(opts tradeOptions) *cobra.Command {
	var flagTag string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build an order interactively",
		Long: `Build an equity, option, multi-leg, or combo order one leg at a
time, preview its cost, and optionally submit it.

Example:
  optcal trade new
  optcal trade new --tag earnings-play`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient()
			if err != nil {
				return err
			}
			prompt := opts.prompt
			if prompt == nil {
				prompt = trade.NewTerminalPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			session := &trade.Session{
				Broker: client,
				Prompt: prompt,
				Out:    cmd.OutOrStdout(),
				Tag:    flagTag,
			}
			return session.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&flagTag, "tag", "", "Order tag (defaults to a generated UUID)")
	cmd.SilenceUsage = true

	return cmd
}

// newTradeStatusCmd creates the order status command.
func newTradeStatusCmd(opts tradeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status ORDER_ID",
		Short: "Show the status of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTradeStatus(cmd, opts, args[0])
		},
	}
	cmd.SilenceUsage = true

	return cmd
}

func runTradeStatus(cmd *cobra.Command, opts tradeOptions, orderID string) error {
	client, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	order, err := client.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to fetch order: %w", err)
	}

	if GetJSONMode() {
		return newFormatter(cmd).Print(order)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Order %d (%s)\n", order.ID, order.Status)
	pairs := [][2]string{
		{"Symbol", order.Symbol},
		{"Class", order.Class},
		{"Type", order.Type},
		{"Duration", order.Duration},
		{"Created", order.CreateDate},
	}
	if order.Price > 0 {
		pairs = append(pairs, [2]string{"Price", output.Currency(order.Price)})
	}
	if order.StopPrice > 0 {
		pairs = append(pairs, [2]string{"Stop", output.Currency(order.StopPrice)})
	}
	if order.ExecQuantity > 0 {
		pairs = append(pairs, [2]string{"Filled", fmt.Sprintf("%g @ %s", order.ExecQuantity, output.Currency(order.AvgFillPrice))})
	}
	output.DefinitionList(out, pairs)

	legs := order.Legs
	if len(legs) == 0 && order.Side != "" {
		legs = []tradier.Order{*order}
	}
	if len(legs) > 0 {
		rows := make([][]string, 0, len(legs))
		for _, leg := range legs {
			symbol := leg.OptionSymbol
			if symbol == "" {
				symbol = leg.Symbol
			}
			rows = append(rows, []string{
				symbol,
				leg.Side,
				fmt.Sprintf("%g", leg.Quantity),
				leg.Status,
			})
		}
		_, _ = fmt.Fprintln(out)
		return newFormatter(cmd).Table([]string{"Leg", "Side", "Qty", "Status"}, rows)
	}
	return nil
}

// newTradeModifyCmd creates the order modification command.
func newTradeModifyCmd(opts tradeOptions) *cobra.Command {
	var (
		flagType     string
		flagDuration string
		flagPrice    float64
		flagStop     float64
	)

	cmd := &cobra.Command{
		Use:   "modify ORDER_ID",
		Short: "Modify an open order",
		Long: `Modify an open order's type, duration, limit price, or stop price.
Only the provided flags are changed.

Example:
  optcal trade modify 123456 --price 1.25
  optcal trade modify 123456 --duration gtc`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod := tradier.ModifyParams{}
			if cmd.Flags().Changed("type") {
				mod.Type = flagType
			}
			if cmd.Flags().Changed("duration") {
				mod.Duration = flagDuration
			}
			if cmd.Flags().Changed("price") {
				mod.Price = &flagPrice
			}
			if cmd.Flags().Changed("stop") {
				mod.Stop = &flagStop
			}
			return runTradeModify(cmd, opts, args[0], mod)
		},
	}

	cmd.Flags().StringVar(&flagType, "type", "", "New order type")
	cmd.Flags().StringVar(&flagDuration, "duration", "", "New duration (day, gtc, pre, post)")
	cmd.Flags().Float64Var(&flagPrice, "price", 0, "New limit price")
	cmd.Flags().Float64Var(&flagStop, "stop", 0, "New stop price")
	cmd.SilenceUsage = true

	return cmd
}

func runTradeModify(cmd *cobra.Command, opts tradeOptions, orderID string, mod tradier.ModifyParams) error {
	if mod.IsEmpty() {
		return fmt.Errorf("nothing to modify (set --type, --duration, --price, or --stop)")
	}

	client, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	confirmation, err := client.ModifyOrder(ctx, orderID, mod)
	if err != nil {
		return fmt.Errorf("failed to modify order: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Order %d modified (%s)\n", confirmation.ID, confirmation.Status)
	return nil
}

func init() {
	opts := tradeOptions{newClient: newTradierClient}
	tradeCmd.AddCommand(newTradeNewCmd(opts))
	tradeCmd.AddCommand(newTradeStatusCmd(opts))
	tradeCmd.AddCommand(newTradeModifyCmd(opts))
	rootCmd.AddCommand(tradeCmd)
}
