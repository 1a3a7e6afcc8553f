package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradetrack/recon"
	"tradetrack/trade"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare a date's recommendations against its fills",
	Long: `Match recommendations to aggregated fills per (ticker, action),
classify each pair (filled, partial, missed, unplanned, no_activity),
compute slippage against the planned limit, and save the report.

Example:
  tracker reconcile --date 2024-01-02`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

var reconcileDate string

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().StringVar(&reconcileDate, "date", "", "date, YYYY-MM-DD or 'today' (required)")
	reconcileCmd.MarkFlagRequired("date")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	date, err := trade.ParseDate(reconcileDate)
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

	recs, err := store.Recommendations(date)
	if err != nil {
		return fmt.Errorf("read recommendations: %w", err)
	}
	fills, err := store.Fills(date)
	if err != nil {
		return fmt.Errorf("read fills: %w", err)
	}

	rows := recon.Reconcile(date, recs, fills)
	if err := store.SaveReport(date, rows); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	fmt.Printf("Wrote reconciliation report for %s (%d rows).\n", date, len(rows))
	return nil
}
