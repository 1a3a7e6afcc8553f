package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradetrack/ledger"
	"tradetrack/trade"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"update-positions"},
	Short:   "Apply a date's fills to the position snapshot",
	Long: `Load the position snapshot, replay the date's fills through the
weighted-average-cost ledger, and save the result. Run once per date:
applying the same fills twice double-counts them.

Example:
  tracker update --date today`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

var updateDate string

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringVar(&updateDate, "date", "", "date, YYYY-MM-DD or 'today' (required)")
	updateCmd.MarkFlagRequired("date")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	date, err := trade.ParseDate(updateDate)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	fills, err := store.Fills(date)
	if err != nil {
		return fmt.Errorf("read fills: %w", err)
	}
	if len(fills) == 0 {
		fmt.Println("No fills to apply for that date.")
		return nil
	}

	snap, err := store.LoadPositions()
	if err != nil {
		return fmt.Errorf("load positions: %w", err)
	}

	if err := store.SavePositions(ledger.Apply(snap, fills)); err != nil {
		return fmt.Errorf("save positions: %w", err)
	}

	fmt.Printf("Updated positions using fills from %s.\n", date)
	return nil
}
