package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tradetrack/trade"
)

var recCmd = &cobra.Command{
	Use:     "rec TICKER,action,limit,shares[,note] ...",
	Aliases: []string{"log-rec"},
	Short:   "Log one or more trade recommendations for a date",
	Long: `Record planned actions for a date. Each item is a comma-separated
tuple; limit and shares may be left blank to log an open-ended plan.

Examples:
  tracker rec --date today MSFT,buy,50.00,100
  tracker rec --date 2024-01-02 "TSLA,sell,200,50,trim into strength"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRec,
}

var recDate string

func init() {
	rootCmd.AddCommand(recCmd)
	recCmd.Flags().StringVar(&recDate, "date", "", "date, YYYY-MM-DD or 'today' (required)")
	recCmd.MarkFlagRequired("date")
}

func runRec(cmd *cobra.Command, args []string) error {
	date, err := trade.ParseDate(recDate)
	if err != nil {
		return err
	}

	recs := make([]trade.Recommendation, 0, len(args))
	for _, item := range args {
		rec, err := parseRecItem(date, item)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
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

	if err := store.AppendRecommendations(date, recs); err != nil {
		return fmt.Errorf("append recommendations: %w", err)
	}

	fmt.Printf("Wrote %d recommendation(s) for %s\n", len(recs), date)
	return nil
}

func parseRecItem(date, item string) (trade.Recommendation, error) {
	parts := strings.Split(item, ",")
	if len(parts) < 4 {
		return trade.Recommendation{}, fmt.Errorf("recommendation %q: use TICKER,action,limit,shares[,note]", item)
	}

	note := ""
	if len(parts) > 4 {
		note = strings.TrimSpace(strings.Join(parts[4:], ","))
	}

	return trade.Recommendation{
		Date:         date,
		Ticker:       trade.NormalizeTicker(parts[0]),
		Action:       trade.NormalizeAction(parts[1]),
		LimitPrice:   trade.ParseOptionalPrice(parts[2]),
		TargetShares: trade.ParseOptionalShares(parts[3]),
		Note:         note,
	}, nil
}
