package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/internal/config"
	"github.com/devbanana/option-calculator/internal/keyring"
	"github.com/devbanana/option-calculator/internal/logging"
	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

var Version = "dev"

// jsonOutput controls whether output is formatted as JSON
var jsonOutput bool

// debugMode enables verbose API logging
var debugMode bool

var rootCmd = &cobra.Command{
	Use:     "optcal",
	Short:   "Options trading calculator and order builder",
	Long:    `A CLI for building multi-leg option trades, browsing chains, and running option analytics against the Tradier brokerage API.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(cmd.ErrOrStderr(), debugMode)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// GetJSONMode returns whether JSON output mode is enabled.
func GetJSONMode() bool {
	return jsonOutput
}

func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newFormatter builds the output formatter for a command invocation.
func newFormatter(cmd *cobra.Command) *output.Formatter {
	return output.New(cmd.OutOrStdout(), jsonOutput)
}

// newTradierClient builds an authenticated brokerage client from the
// saved configuration and keyring.
func newTradierClient() (*tradier.Client, error) {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	store := keyring.NewEnvStore(keyring.NewSystemStore())
	token, err := store.Get(keyring.ServiceName, keyring.KeyAPIToken)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("no API token configured; run 'optcal configure' or set %s", keyring.EnvAPIToken)
		}
		return nil, fmt.Errorf("failed to retrieve API token: %w", err)
	}

	client := tradier.NewClient(token, cfg.Sandbox)
	if cfg.APIBaseURL != "" {
		client.WithBaseURL(cfg.APIBaseURL)
	}
	if cfg.AccountID != "" {
		client.WithAccount(cfg.AccountID)
	}
	return client, nil
}
