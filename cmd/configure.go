package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/devbanana/option-calculator/internal/config"
	"github.com/devbanana/option-calculator/internal/keyring"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// passwordReader abstracts terminal password input for testing.
type passwordReader interface {
	ReadPassword() (string, error)
	IsTerminal() bool
}

// terminalReader reads passwords from the terminal using golang.org/x/term.
type terminalReader struct {
	fd int
}

func newTerminalReader(fd int) *terminalReader {
	return &terminalReader{fd: fd}
}

func (r *terminalReader) ReadPassword() (string, error) {
	password, err := term.ReadPassword(r.fd)
	if err != nil {
		return "", err
	}
	return string(password), nil
}

func (r *terminalReader) IsTerminal() bool {
	return term.IsTerminal(r.fd)
}

// prompter abstracts interactive menu selection for testing.
type prompter interface {
	SelectOption(options []string) (int, error)
	ReadLine(prompt string) (string, error)
}

// terminalPrompter implements prompter using stdin.
type terminalPrompter struct {
	reader io.Reader
	writer io.Writer
}

func newTerminalPrompter(r io.Reader, w io.Writer) *terminalPrompter {
	return &terminalPrompter{reader: r, writer: w}
}

func (p *terminalPrompter) SelectOption(options []string) (int, error) {
	scanner := bufio.NewScanner(p.reader)
	for {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, fmt.Errorf("no input")
		}
		input := strings.TrimSpace(scanner.Text())
		idx, err := strconv.Atoi(input)
		if err != nil || idx < 1 || idx > len(options) {
			_, _ = fmt.Fprintf(p.writer, "Please enter a number between 1 and %d: ", len(options))
			continue
		}
		return idx - 1, nil // Convert to 0-indexed
	}
}

func (p *terminalPrompter) ReadLine(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.writer, prompt)
	scanner := bufio.NewScanner(p.reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", nil
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// configureOptions holds dependencies for the configure command.
// This allows for dependency injection in tests.
type configureOptions struct {
	configPath     string
	store          keyring.Store
	passwordReader passwordReader
	prompt         prompter

	// verify validates a token against the brokerage before saving.
	// Tests substitute a stub; production hits the quote endpoint.
	verify func(ctx context.Context, token string, sandbox bool) error
}

// newConfigureCmd creates the configure command with the given options.
func newConfigureCmd(opts configureOptions) *cobra.Command {
	var accountID string
	var sandbox bool

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Configure brokerage credentials",
		Long: `Configure the CLI with your Tradier API credentials.

You will be prompted to enter your access token securely.
Generate a token from your Tradier dashboard under API Access.

Example:
  optcal configure
  optcal configure --account YOUR_ACCOUNT_ID --sandbox`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(cmd, opts, accountID, sandbox)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Default account ID (optional)")
	cmd.Flags().BoolVar(&sandbox, "sandbox", false, "Use the paper-trading endpoint")

	// Don't show usage info on validation errors - just show the error
	cmd.SilenceUsage = true

	return cmd
}

// reconfigureMenuOptions defines the menu options when already configured.
var reconfigureMenuOptions = []string{
	"Configure new access token",
	"Change default account",
	"View current configuration",
	"Clear access token",
}

func runConfigure(cmd *cobra.Command, opts configureOptions, accountID string, sandbox bool) error {
	// Verify we're running in an interactive terminal
	if !opts.passwordReader.IsTerminal() {
		return fmt.Errorf("configure requires an interactive terminal\nRun this command directly in your terminal (not piped or in a script)")
	}

	// Check if already configured
	_, err := opts.store.Get(keyring.ServiceName, keyring.KeyAPIToken)
	alreadyConfigured := err == nil

	if alreadyConfigured && accountID == "" {
		return runReconfigureMenu(cmd, opts)
	}

	return runInitialSetup(cmd, opts, accountID, sandbox)
}

// runReconfigureMenu shows the reconfigure menu when already configured.
func runReconfigureMenu(cmd *cobra.Command, opts configureOptions) error {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "CLI is already configured. What would you like to do?")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	for i, opt := range reconfigureMenuOptions {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s\n", i+1, opt)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Select option: ")

	choice, err := opts.prompt.SelectOption(reconfigureMenuOptions)
	if err != nil {
		return fmt.Errorf("failed to read selection: %w", err)
	}

	switch choice {
	case 0:
		return runInitialSetup(cmd, opts, "", false)
	case 1:
		return runChangeAccount(cmd, opts)
	case 2:
		return runViewConfiguration(cmd, opts)
	case 3:
		return runClearToken(cmd, opts)
	default:
		return fmt.Errorf("invalid selection")
	}
}

// runInitialSetup handles the initial access token configuration.
func runInitialSetup(cmd *cobra.Command, opts configureOptions, accountID string, sandbox bool) error {
	_, _ = fmt.Fprint(cmd.OutOrStdout(), "Enter your access token: ")
	token, err := opts.passwordReader.ReadPassword()
	if err != nil {
		return fmt.Errorf("failed to read access token: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout()) // Print newline after hidden input

	if token == "" {
		return fmt.Errorf("access token cannot be empty")
	}

	// Validate the token before storing it
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := opts.verify(ctx, token, sandbox); err != nil {
		return fmt.Errorf("failed to validate access token: %w", err)
	}

	if err := opts.store.Set(keyring.ServiceName, keyring.KeyAPIToken, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		cfg = &config.Config{}
	}
	cfg.Sandbox = sandbox
	if accountID == "" {
		accountID, err = opts.prompt.ReadLine("Account ID (leave blank to skip): ")
		if err != nil {
			return fmt.Errorf("failed to read account ID: %w", err)
		}
	}
	if accountID != "" {
		cfg.AccountID = accountID
	}

	if err := config.Save(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved successfully!")
	return nil
}

// runChangeAccount updates the default account ID.
func runChangeAccount(cmd *cobra.Command, opts configureOptions) error {
	accountID, err := opts.prompt.ReadLine("Account ID: ")
	if err != nil {
		return fmt.Errorf("failed to read account ID: %w", err)
	}
	if accountID == "" {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No account entered.")
		return nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		cfg = &config.Config{}
	}
	cfg.AccountID = accountID

	if err := config.Save(opts.configPath, cfg); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default account set to: %s\n", accountID)
	return nil
}

// runViewConfiguration displays the current configuration.
func runViewConfiguration(cmd *cobra.Command, opts configureOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		cfg = &config.Config{}
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Current Configuration:")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "----------------------")

	_, err = opts.store.Get(keyring.ServiceName, keyring.KeyAPIToken)
	if err == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Access token: Configured")
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Access token: Not configured")
	}

	if cfg.AccountID != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default account: %s\n", cfg.AccountID)
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Default account: Not set")
	}

	endpoint := "live"
	if cfg.Sandbox {
		endpoint = "sandbox"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Endpoint: %s\n", endpoint)

	return nil
}

// runClearToken removes the stored access token.
func runClearToken(cmd *cobra.Command, opts configureOptions) error {
	if err := opts.store.Delete(keyring.ServiceName, keyring.KeyAPIToken); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Access token cleared successfully.")
	return nil
}

// verifyToken checks a token against the brokerage with a lightweight
// quote request.
func verifyToken(ctx context.Context, token string, sandbox bool) error {
	client := tradier.NewClient(token, sandbox)
	_, err := client.GetQuote(ctx, "SPY", false)
	return err
}

func init() {
	// Create configure command with production dependencies
	configureCmd := newConfigureCmd(configureOptions{
		configPath:     config.ConfigPath(),
		store:          keyring.NewEnvStore(keyring.NewSystemStore()),
		passwordReader: newTerminalReader(int(os.Stdin.Fd())),
		prompt:         newTerminalPrompter(os.Stdin, os.Stdout),
		verify:         verifyToken,
	})
	rootCmd.AddCommand(configureCmd)
}
