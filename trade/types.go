// Package trade holds the shared domain records and the boundary
// normalization rules for tickers, sides, numbers, and dates.
package trade

// Side is the direction of a fill, normalized at the input boundary.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"

	// Unknown marks a side string that started with neither "b" nor "s".
	// The position ledger skips such fills; reconciliation folds them
	// into the sell bucket, matching the report's two-sided keying.
	Unknown Side = ""
)

// Fill is one executed trade as reported by the broker. Fills are
// append-only and immutable once recorded; several fills may exist for
// the same ticker on the same date.
type Fill struct {
	ID        string
	Date      string // YYYY-MM-DD
	Ticker    string // normalized uppercase symbol
	Side      Side
	Qty       int     // unparseable input coerces to 0
	AvgPrice  float64 // unparseable or absent input coerces to 0
	Timestamp string  // RFC3339
	Broker    string
	OrderID   string
	Note      string
}

// Recommendation is one planned action for a date. The action is free
// text, lower-cased but not otherwise validated; only "buy" and "sell"
// ever match a reconciliation row. Duplicate (ticker, action) entries on
// one date are allowed and resolve last-write-wins when indexed.
type Recommendation struct {
	Date         string
	Ticker       string
	Action       string
	LimitPrice   *float64 // nil when not given or unparseable
	TargetShares *int     // nil when not given or unparseable
	Note         string
}
