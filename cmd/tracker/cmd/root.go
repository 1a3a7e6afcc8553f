package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tradetrack/config"
	"tradetrack/journal"
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Track trade recommendations, broker fills, and positions",
	Long: `Tracker records planned trade recommendations and actual broker fills
for a single account, maintains a running position ledger derived from
fills, and reconciles plans against executions with slippage reporting.

It provides commands for:
  - Logging daily recommendations and fills
  - Applying a day's fills to the position snapshot
  - Reconciling recommendations against fills for a date
  - Comparing portfolio equity against benchmark ETFs`,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "tracker.yaml", "path to config file")
}

// loadConfig reads the config file, falling back to defaults when the
// file does not exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); err != nil {
		if os.IsNotExist(err) {
			return config.Default(), nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore builds the journal store selected by the config.
func openStore(cfg *config.Config) (journal.Store, error) {
	switch cfg.Store.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Store.DBPath)
	default:
		return journal.NewCSV(cfg.Data.Dir)
	}
}
