package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tradetrack/id"
	"tradetrack/trade"
)

var fillCmd = &cobra.Command{
	Use:     "fill TICKER,side,qty,avg_price[,order_id][,note] ...",
	Aliases: []string{"log-fill"},
	Short:   "Log one or more broker fills for a date",
	Long: `Record executed trades for a date. Side matches by first character,
so b/buy/BOT all count as buys. Unparseable quantities and prices are
recorded as zero rather than rejected.

Examples:
  tracker fill --date today MSFT,buy,100,51.00
  tracker fill --date 2024-01-02 --broker Fidelity "GME,b,10,30.00,ORD-1,momentum"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFill,
}

var (
	fillDate      string
	fillBroker    string
	fillTimestamp string
)

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().StringVar(&fillDate, "date", "", "date, YYYY-MM-DD or 'today' (required)")
	fillCmd.Flags().StringVar(&fillBroker, "broker", "", "broker name (default from config)")
	fillCmd.Flags().StringVar(&fillTimestamp, "timestamp", "", "RFC3339 timestamp (default now)")
	fillCmd.MarkFlagRequired("date")
}

func runFill(cmd *cobra.Command, args []string) error {
	date, err := trade.ParseDate(fillDate)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	broker := fillBroker
	if broker == "" {
		broker = cfg.Data.Broker
	}
	ts := fillTimestamp
	if ts == "" {
		ts = time.Now().Format(time.RFC3339)
	}

	fills := make([]trade.Fill, 0, len(args))
	for _, item := range args {
		f, err := parseFillItem(date, broker, ts, item)
		if err != nil {
			return err
		}
		fills = append(fills, f)
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.AppendFills(date, fills); err != nil {
		return fmt.Errorf("append fills: %w", err)
	}

	fmt.Printf("Wrote %d fill(s) for %s\n", len(fills), date)
	return nil
}

func parseFillItem(date, broker, ts, item string) (trade.Fill, error) {
	parts := strings.Split(item, ",")
	if len(parts) < 4 {
		return trade.Fill{}, fmt.Errorf("fill %q: use TICKER,side,qty,avg_price[,order_id][,note]", item)
	}

	orderID := ""
	if len(parts) >= 5 {
		orderID = strings.TrimSpace(parts[4])
	}
	note := ""
	if len(parts) >= 6 {
		note = strings.TrimSpace(strings.Join(parts[5:], ","))
	}

	return trade.Fill{
		ID:        id.New(),
		Date:      date,
		Ticker:    trade.NormalizeTicker(parts[0]),
		Side:      trade.ParseSide(parts[1]),
		Qty:       trade.ParseQuantity(parts[2]),
		AvgPrice:  trade.ParsePrice(parts[3]),
		Timestamp: ts,
		Broker:    broker,
		OrderID:   orderID,
		Note:      note,
	}, nil
}
