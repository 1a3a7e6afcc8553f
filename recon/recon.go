// Package recon matches one day's trade recommendations against the
// broker fills actually executed that day, classifying the outcome per
// (ticker, action) pair and measuring slippage against the planned limit.
package recon

import (
	"sort"

	"tradetrack/trade"
)

// Status classifies the outcome of one (ticker, action) pair.
type Status string

const (
	StatusFilled     Status = "filled"
	StatusPartial    Status = "partial"
	StatusMissed     Status = "missed"
	StatusUnplanned  Status = "unplanned"
	StatusNoActivity Status = "no_activity"
)

// Row is one line of the reconciliation report. Pointer fields are nil
// when the underlying value is undefined and render blank on output.
type Row struct {
	Date         string
	Ticker       string
	Action       string // "buy" or "sell"
	LimitPrice   *float64
	TargetShares *int
	FilledShares int
	AvgFillPrice *float64
	SlippageAbs  *float64
	SlippagePct  *float64
	Status       Status
	Note         string
}

type pairKey struct {
	ticker string
	action string
}

type fillAgg struct {
	qty      int
	notional float64
}

// Reconcile builds one report row per (ticker, action) for every ticker
// that appears in either input. Rows come out sorted by ticker, buy
// before sell, so output is deterministic for a deterministic input
// order. The engine never fails on missing optional fields; derived
// metrics degrade to nil instead.
//
// Duplicate recommendations for the same (ticker, action) resolve
// last-write-wins; the input order decides which one is reported.
func Reconcile(date string, recs []trade.Recommendation, fills []trade.Fill) []Row {
	index := make(map[pairKey]trade.Recommendation, len(recs))
	for _, r := range recs {
		index[pairKey{r.Ticker, r.Action}] = r
	}

	// Aggregate fills two-sided: anything that isn't a buy counts as a
	// sell, mirroring the report's buy/sell keying.
	agg := make(map[pairKey]fillAgg, len(fills))
	for _, f := range fills {
		k := pairKey{f.Ticker, string(trade.Sell)}
		if f.Side == trade.Buy {
			k.action = string(trade.Buy)
		}
		a := agg[k]
		a.qty += f.Qty
		a.notional += float64(f.Qty) * f.AvgPrice
		agg[k] = a
	}

	seen := make(map[string]bool)
	var tickers []string
	for k := range index {
		if !seen[k.ticker] {
			seen[k.ticker] = true
			tickers = append(tickers, k.ticker)
		}
	}
	for k := range agg {
		if !seen[k.ticker] {
			seen[k.ticker] = true
			tickers = append(tickers, k.ticker)
		}
	}
	sort.Strings(tickers)

	rows := make([]Row, 0, 2*len(tickers))
	for _, t := range tickers {
		for _, action := range []string{string(trade.Buy), string(trade.Sell)} {
			rec, hasRec := index[pairKey{t, action}]
			a := agg[pairKey{t, action}]

			row := Row{
				Date:         date,
				Ticker:       t,
				Action:       action,
				FilledShares: a.qty,
			}
			if hasRec {
				row.LimitPrice = rec.LimitPrice
				row.TargetShares = rec.TargetShares
				row.Note = rec.Note
			}
			if a.qty > 0 {
				avg := a.notional / float64(a.qty)
				row.AvgFillPrice = &avg
				if row.LimitPrice != nil {
					abs := avg - *row.LimitPrice
					row.SlippageAbs = &abs
					if *row.LimitPrice != 0 {
						pct := abs / *row.LimitPrice * 100
						row.SlippagePct = &pct
					}
				}
			}
			row.Status = classify(hasRec, a.qty, row.TargetShares)

			rows = append(rows, row)
		}
	}
	return rows
}

// classify picks the single status for a pair. The five cases are
// mutually exclusive and exhaustive. A filled recommendation without a
// target share count counts as filled, not partial.
func classify(hasRec bool, filled int, target *int) Status {
	switch {
	case hasRec && filled > 0:
		if target == nil || filled >= *target {
			return StatusFilled
		}
		return StatusPartial
	case hasRec:
		return StatusMissed
	case filled > 0:
		return StatusUnplanned
	}
	return StatusNoActivity
}
