package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/internal/config"
	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/pkg/iex"
)

// targetOptions holds dependencies for the target command.
type targetOptions struct {
	newClient func() (*iex.Client, error)
}

// newIEXClient builds an IEX client from the saved configuration.
func newIEXClient() (*iex.Client, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.IEXToken == "" {
		return nil, fmt.Errorf("no IEX token configured; set %s or iex_token in the config file", config.EnvIEXToken)
	}
	return iex.NewClient(cfg.IEXToken), nil
}

// newTargetCmd creates the target command with the given options.
func newTargetCmd(opts targetOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target SYMBOL",
		Short: "Show analyst price targets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTarget(cmd, opts, args[0])
		},
	}
	cmd.SilenceUsage = true

	return cmd
}

func runTarget(cmd *cobra.Command, opts targetOptions, symbol string) error {
	client, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	target, err := client.GetPriceTarget(ctx, symbol)
	if err != nil {
		if errors.Is(err, iex.ErrPaymentRequired) {
			return fmt.Errorf("price targets require a paid IEX Cloud subscription")
		}
		return fmt.Errorf("failed to fetch price target: %w", err)
	}

	if GetJSONMode() {
		return newFormatter(cmd).Print(target)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s analyst price targets (%s)\n", target.Symbol, target.UpdatedDate)
	output.DefinitionList(out, [][2]string{
		{"Average", output.Currency(target.PriceTargetAverage)},
		{"High", output.Currency(target.PriceTargetHigh)},
		{"Low", output.Currency(target.PriceTargetLow)},
		{"Analysts", fmt.Sprintf("%d", target.NumberOfAnalysts)},
	})
	return nil
}

func init() {
	rootCmd.AddCommand(newTargetCmd(targetOptions{newClient: newIEXClient}))
}
