package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Show the current position snapshot",
	Args:  cobra.NoArgs,
	RunE:  runPositions,
}

func init() {
	rootCmd.AddCommand(positionsCmd)
}

func runPositions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	snap, err := store.LoadPositions()
	if err != nil {
		return fmt.Errorf("load positions: %w", err)
	}

	held := snap.Held()
	if len(held) == 0 {
		fmt.Println("No open positions.")
		return nil
	}

	fmt.Printf("%-8s %8s %12s\n", "TICKER", "QTY", "AVG_COST")
	for _, p := range held {
		fmt.Printf("%-8s %8d %12.4f\n", p.Ticker, p.Qty, p.AvgCost)
	}
	return nil
}
