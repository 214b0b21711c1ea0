package cmd

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/devbanana/option-calculator/internal/analytics"
	"github.com/devbanana/option-calculator/internal/export"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// indicatorOptions holds dependencies for the rsi and adx commands.
type indicatorOptions struct {
	newClient func() (*tradier.Client, error)
}

// rsiRow is one day of RSI output, also used for CSV export.
type rsiRow struct {
	Date  string  `csv:"date" json:"date"`
	Close float64 `csv:"close" json:"close"`
	RSI   float64 `csv:"rsi" json:"rsi"`
}

// adxRow is one day of ADX output, also used for CSV export.
type adxRow struct {
	Date    string  `csv:"date" json:"date"`
	Close   float64 `csv:"close" json:"close"`
	ADX     float64 `csv:"adx" json:"adx"`
	PlusDI  float64 `csv:"plus_di" json:"plus_di"`
	MinusDI float64 `csv:"minus_di" json:"minus_di"`
}

// newRSICmd creates the rsi command with the given options.
func newRSICmd(opts indicatorOptions) *cobra.Command {
	var (
		flagPeriod int
		flagDays   int
		flagExport string
	)

	cmd := &cobra.Command{
		Use:   "rsi SYMBOL",
		Short: "Compute the relative strength index",
		Long: `Compute Wilder's RSI over daily closing prices.

Examples:
  optcal rsi AAPL
  optcal rsi AAPL --period 9 --days 60
  optcal rsi AAPL --export rsi.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRSI(cmd, opts, args[0], flagPeriod, flagDays, flagExport)
		},
	}

	cmd.Flags().IntVar(&flagPeriod, "period", 14, "Smoothing period")
	cmd.Flags().IntVar(&flagDays, "days", 30, "Days of output")
	cmd.Flags().StringVar(&flagExport, "export", "", "Write results to a CSV file")
	cmd.SilenceUsage = true

	return cmd
}

func runRSI(cmd *cobra.Command, opts indicatorOptions, symbol string, period, days int, exportPath string) error {
	bars, err := fetchDailyBars(cmd.Context(), opts, symbol, days+3*period)
	if err != nil {
		return err
	}

	closes := make([]float64, len(bars))
	for i, bar := range bars {
		closes[i] = bar.Close
	}
	values, err := analytics.RSI(closes, period)
	if err != nil {
		return err
	}

	rows := make([]rsiRow, 0, days)
	for i := range bars {
		if math.IsNaN(values[i]) {
			continue
		}
		rows = append(rows, rsiRow{Date: bars[i].Date, Close: bars[i].Close, RSI: values[i]})
	}
	if len(rows) > days {
		rows = rows[len(rows)-days:]
	}

	if exportPath != "" {
		if err := export.CSV(exportPath, &rows); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), exportPath)
		return nil
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{row.Date, fmt.Sprintf("%.2f", row.Close), fmt.Sprintf("%.2f", row.RSI)})
	}
	return newFormatter(cmd).Table([]string{"Date", "Close", "RSI"}, table)
}

// newADXCmd creates the adx command with the given options.
func newADXCmd(opts indicatorOptions) *cobra.Command {
	var (
		flagPeriod int
		flagDays   int
		flagExport string
	)

	cmd := &cobra.Command{
		Use:   "adx SYMBOL",
		Short: "Compute the average directional index",
		Long: `Compute Wilder's ADX trend-strength index with its +DI/-DI
components over daily bars.

Examples:
  optcal adx AAPL
  optcal adx AAPL --period 14 --days 60 --export adx.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runADX(cmd, opts, args[0], flagPeriod, flagDays, flagExport)
		},
	}

	cmd.Flags().IntVar(&flagPeriod, "period", 14, "Smoothing period")
	cmd.Flags().IntVar(&flagDays, "days", 30, "Days of output")
	cmd.Flags().StringVar(&flagExport, "export", "", "Write results to a CSV file")
	cmd.SilenceUsage = true

	return cmd
}

func runADX(cmd *cobra.Command, opts indicatorOptions, symbol string, period, days int, exportPath string) error {
	bars, err := fetchDailyBars(cmd.Context(), opts, symbol, days+5*period)
	if err != nil {
		return err
	}

	dm, err := analytics.ADX(bars, period)
	if err != nil {
		return err
	}

	rows := make([]adxRow, 0, days)
	for i := range bars {
		if math.IsNaN(dm.ADX[i]) {
			continue
		}
		rows = append(rows, adxRow{
			Date:    bars[i].Date,
			Close:   bars[i].Close,
			ADX:     dm.ADX[i],
			PlusDI:  dm.PlusDI[i],
			MinusDI: dm.MinusDI[i],
		})
	}
	if len(rows) > days {
		rows = rows[len(rows)-days:]
	}

	if exportPath != "" {
		if err := export.CSV(exportPath, &rows); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), exportPath)
		return nil
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			row.Date,
			fmt.Sprintf("%.2f", row.Close),
			fmt.Sprintf("%.2f", row.ADX),
			fmt.Sprintf("%.2f", row.PlusDI),
			fmt.Sprintf("%.2f", row.MinusDI),
		})
	}
	return newFormatter(cmd).Table([]string{"Date", "Close", "ADX", "+DI", "-DI"}, table)
}

// fetchDailyBars pulls enough daily history to cover the indicator
// warmup. Trading days run thinner than calendar days, so the start
// date backs up further than strictly needed.
func fetchDailyBars(ctx context.Context, opts indicatorOptions, symbol string, tradingDays int) ([]tradier.HistoricalDay, error) {
	client, err := opts.newClient()
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := time.Now().AddDate(0, 0, -(tradingDays*7/5 + 10))
	bars, err := client.GetHistoricalQuotes(fetchCtx, symbol, "daily", start)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return bars, nil
}

func init() {
	opts := indicatorOptions{newClient: newTradierClient}
	rootCmd.AddCommand(newRSICmd(opts))
	rootCmd.AddCommand(newADXCmd(opts))
}
