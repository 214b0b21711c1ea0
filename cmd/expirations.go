package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// expirationsOptions holds dependencies for the expirations command.
type expirationsOptions struct {
	newClient func() (*tradier.Client, error)
	now       func() time.Time
}

// newExpirationsCmd creates the expirations command with the given options.
func newExpirationsCmd(opts expirationsOptions) *cobra.Command {
	var flagAllRoots bool

	cmd := &cobra.Command{
		Use:   "expirations SYMBOL",
		Short: "List option expiration dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpirations(cmd, opts, args[0], flagAllRoots)
		},
	}

	cmd.Flags().BoolVar(&flagAllRoots, "all-roots", false, "Include non-standard option roots")
	cmd.SilenceUsage = true

	return cmd
}

func runExpirations(cmd *cobra.Command, opts expirationsOptions, symbol string, allRoots bool) error {
	client, err := opts.newClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	expirations, err := client.GetOptionExpirations(ctx, symbol, allRoots)
	if err != nil {
		return fmt.Errorf("failed to fetch expirations: %w", err)
	}

	now := time.Now()
	if opts.now != nil {
		now = opts.now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rows := make([][]string, 0, len(expirations))
	for _, exp := range expirations {
		dte := int(exp.Sub(today).Hours() / 24)
		rows = append(rows, []string{
			exp.Format(tradier.DateFormat),
			exp.Format("Mon"),
			fmt.Sprintf("%d", dte),
		})
	}
	return newFormatter(cmd).Table([]string{"Expiration", "Day", "DTE"}, rows)
}

func init() {
	rootCmd.AddCommand(newExpirationsCmd(expirationsOptions{newClient: newTradierClient}))
}
