package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tradetrack/equity"
	"tradetrack/pricing"
	"tradetrack/trade"
)

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Compare portfolio equity against benchmark ETFs",
	Long: `Build a daily portfolio-value series from the full fill history,
fetch end-of-day closes for held tickers and the configured benchmarks,
and write a CSV report with every series normalized to 1.0.

The quote provider token is read from the config file or the ` + pricing.TokenEnv + `
environment variable (a .env file is honored).

Example:
  tracker equity --out reports/equity.csv`,
	Args: cobra.NoArgs,
	RunE: runEquity,
}

var equityOut string

func init() {
	rootCmd.AddCommand(equityCmd)
	equityCmd.Flags().StringVarP(&equityOut, "out", "o", "", "output CSV path (default <data>/reports/equity_vs_benchmarks.csv)")
}

func runEquity(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	fills, err := store.AllFills()
	if err != nil {
		return fmt.Errorf("read fills: %w", err)
	}

	series, err := equity.BuildDailySeries(fills, time.Now().Format(trade.DateLayout))
	if err != nil {
		return err
	}

	token := cfg.Pricing.APIToken
	if token == "" {
		token = os.Getenv(pricing.TokenEnv)
	}
	client := pricing.NewClient(cfg.Pricing.BaseURL, token)

	from := series.Days[0]
	to := series.Days[len(series.Days)-1]

	quotes := make(map[string][]pricing.Close)
	for _, ticker := range append(append([]string{}, series.Tickers...), cfg.Report.Benchmarks...) {
		if _, ok := quotes[ticker]; ok {
			continue
		}
		closes, err := client.DailyCloses(cmd.Context(), ticker, from, to)
		if err != nil {
			return err
		}
		quotes[ticker] = closes
	}

	report, err := equity.Compare(series, quotes, cfg.Report.Benchmarks)
	if err != nil {
		return err
	}

	out := equityOut
	if out == "" {
		out = filepath.Join(cfg.Data.Dir, "reports", "equity_vs_benchmarks.csv")
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := report.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Wrote equity report: %s\n", out)
	return nil
}
