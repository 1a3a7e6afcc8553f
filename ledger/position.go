package ledger

import (
	"sort"

	"tradetrack/trade"
)

// Position is the current holding in one ticker: share count and the
// blended weighted-average cost paid for it. AvgCost is meaningful only
// while Qty > 0; after a sell takes the quantity to zero the last average
// is left in place until the next buy overwrites it.
type Position struct {
	Ticker  string
	Qty     int
	AvgCost float64
}

// Snapshot maps ticker to its current position. A nil map is a valid
// empty snapshot.
type Snapshot map[string]Position

// Apply replays one date's fills, in order, on top of prev and returns
// the updated snapshot. prev is never mutated.
//
// Buys fold into the weighted-average cost basis. Sells reduce the
// quantity, clamped at zero (never short), and do not touch the average
// cost. Fills whose side could not be normalized are skipped. Applying
// the same fills twice double-counts; invoking once per date is the
// caller's responsibility.
func Apply(prev Snapshot, fills []trade.Fill) Snapshot {
	next := make(Snapshot, len(prev)+len(fills))
	for t, p := range prev {
		next[t] = p
	}

	for _, f := range fills {
		pos, ok := next[f.Ticker]
		if !ok {
			pos = Position{Ticker: f.Ticker}
		}

		switch f.Side {
		case trade.Buy:
			newQty := pos.Qty + f.Qty
			if newQty <= 0 {
				// Only reachable with a zero or negative fill
				// quantity; reset rather than divide by it.
				pos.Qty = 0
				pos.AvgCost = 0
			} else {
				pos.AvgCost = (pos.AvgCost*float64(pos.Qty) + f.AvgPrice*float64(f.Qty)) / float64(newQty)
				pos.Qty = newQty
			}
		case trade.Sell:
			pos.Qty -= f.Qty
			if pos.Qty < 0 {
				pos.Qty = 0
			}
		default:
			continue
		}

		next[f.Ticker] = pos
	}

	return next
}

// Held returns the entries with a nonzero quantity, sorted by ticker.
// This is the persisted view of a snapshot: flat positions drop out of
// the file but stay in history.
func (s Snapshot) Held() []Position {
	out := make([]Position, 0, len(s))
	for _, p := range s {
		if p.Qty != 0 {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}
