// Package journal persists the tracker's durable records: per-date
// recommendation and fill logs, the position snapshot, and reconciliation
// reports. Two backends implement the same Store contract, a CSV
// directory tree and a single SQLite database.
package journal

import (
	"tradetrack/ledger"
	"tradetrack/recon"
	"tradetrack/trade"
)

// Store is the persistence boundary. Fills and recommendations are
// append-only; the position snapshot is the one read-modify-write
// resource and assumes a single writer per invocation.
type Store interface {
	AppendRecommendations(date string, recs []trade.Recommendation) error
	AppendFills(date string, fills []trade.Fill) error

	// Recommendations and Fills return the records logged for one date,
	// in insertion order, and an empty slice when nothing was logged.
	Recommendations(date string) ([]trade.Recommendation, error)
	Fills(date string) ([]trade.Fill, error)

	// AllFills returns every fill ever logged, ordered by date then
	// insertion, for whole-history computations like the equity curve.
	AllFills() ([]trade.Fill, error)

	LoadPositions() (ledger.Snapshot, error)
	SavePositions(snap ledger.Snapshot) error

	SaveReport(date string, rows []recon.Row) error

	Close() error
}

// Column sets shared by the CSV files and report output.
var (
	RecHeader      = []string{"date", "ticker", "action", "limit_price", "target_shares", "note"}
	FillHeader     = []string{"date", "ticker", "side", "qty", "avg_price", "timestamp", "broker", "order_id", "note"}
	PositionHeader = []string{"ticker", "qty", "avg_price"}
	ReportHeader   = []string{"date", "ticker", "action", "limit_price", "target_shares", "filled_shares", "avg_fill_price", "slippage_abs", "slippage_pct", "status", "note"}
)
