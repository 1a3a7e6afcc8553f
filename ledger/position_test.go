package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tradetrack/trade"
)

func buy(ticker string, qty int, price float64) trade.Fill {
	return trade.Fill{Ticker: ticker, Side: trade.Buy, Qty: qty, AvgPrice: price}
}

func sell(ticker string, qty int) trade.Fill {
	return trade.Fill{Ticker: ticker, Side: trade.Sell, Qty: qty}
}

func TestApplyFirstBuy(t *testing.T) {
	t.Parallel()

	snap := Apply(nil, []trade.Fill{buy("AAPL", 10, 100)})

	assert.Equal(t, 10, snap["AAPL"].Qty)
	assert.InDelta(t, 100.0, snap["AAPL"].AvgCost, 1e-9)
}

func TestApplyWeightedAverage(t *testing.T) {
	t.Parallel()

	snap := Apply(nil, []trade.Fill{buy("AAPL", 10, 100)})
	snap = Apply(snap, []trade.Fill{buy("AAPL", 10, 120)})

	assert.Equal(t, 20, snap["AAPL"].Qty)
	assert.InDelta(t, 110.0, snap["AAPL"].AvgCost, 1e-9)
}

func TestApplyBuyOrderIndependence(t *testing.T) {
	t.Parallel()

	a := Apply(nil, []trade.Fill{buy("AAPL", 10, 100), buy("AAPL", 10, 120)})
	b := Apply(nil, []trade.Fill{buy("AAPL", 10, 120), buy("AAPL", 10, 100)})

	assert.Equal(t, a["AAPL"].Qty, b["AAPL"].Qty)
	assert.InDelta(t, a["AAPL"].AvgCost, b["AAPL"].AvgCost, 1e-9)
	assert.InDelta(t, 110.0, a["AAPL"].AvgCost, 1e-9)
}

func TestApplySellClampsAtZero(t *testing.T) {
	t.Parallel()

	snap := Apply(nil, []trade.Fill{buy("AAPL", 20, 110)})
	snap = Apply(snap, []trade.Fill{sell("AAPL", 25)})

	assert.Equal(t, 0, snap["AAPL"].Qty)
	assert.Empty(t, snap.Held(), "flat position must drop from the persisted view")
}

func TestApplySellLeavesAvgCost(t *testing.T) {
	t.Parallel()

	snap := Apply(nil, []trade.Fill{buy("AAPL", 20, 110)})
	snap = Apply(snap, []trade.Fill{sell("AAPL", 5)})

	assert.Equal(t, 15, snap["AAPL"].Qty)
	assert.InDelta(t, 110.0, snap["AAPL"].AvgCost, 1e-9, "sells never recompute the average cost")
}

func TestApplyZeroQuantityBuyResets(t *testing.T) {
	t.Parallel()

	// A malformed fill whose quantity coerced to zero resets the entry
	// rather than dividing by it.
	snap := Apply(nil, []trade.Fill{buy("AAPL", 0, 100)})

	assert.Equal(t, 0, snap["AAPL"].Qty)
	assert.Equal(t, 0.0, snap["AAPL"].AvgCost)
}

func TestApplyUnknownSideSkipped(t *testing.T) {
	t.Parallel()

	snap := Apply(nil, []trade.Fill{
		{Ticker: "AAPL", Side: trade.Unknown, Qty: 10, AvgPrice: 100},
	})

	_, ok := snap["AAPL"]
	assert.False(t, ok)
}

func TestApplyDoesNotMutatePrev(t *testing.T) {
	t.Parallel()

	prev := Snapshot{"AAPL": {Ticker: "AAPL", Qty: 10, AvgCost: 100}}
	_ = Apply(prev, []trade.Fill{buy("AAPL", 10, 120), sell("MSFT", 5)})

	assert.Equal(t, 10, prev["AAPL"].Qty)
	assert.InDelta(t, 100.0, prev["AAPL"].AvgCost, 1e-9)
	_, ok := prev["MSFT"]
	assert.False(t, ok)
}

func TestApplyMergesUntouchedTickers(t *testing.T) {
	t.Parallel()

	prev := Snapshot{
		"AAPL": {Ticker: "AAPL", Qty: 10, AvgCost: 100},
		"MSFT": {Ticker: "MSFT", Qty: 5, AvgCost: 300},
	}
	next := Apply(prev, []trade.Fill{buy("AAPL", 10, 120)})

	assert.Equal(t, 20, next["AAPL"].Qty)
	assert.Equal(t, 5, next["MSFT"].Qty)
	assert.InDelta(t, 300.0, next["MSFT"].AvgCost, 1e-9)
}

func TestQuantityNeverNegative(t *testing.T) {
	t.Parallel()

	snap := Snapshot{}
	fills := []trade.Fill{
		buy("A", 5, 10),
		sell("A", 50),
		sell("B", 3),
		buy("A", 2, 20),
		sell("A", 1),
	}
	for _, f := range fills {
		snap = Apply(snap, []trade.Fill{f})
		for _, p := range snap {
			assert.GreaterOrEqual(t, p.Qty, 0)
		}
	}
}

func TestHeldSortedNonzero(t *testing.T) {
	t.Parallel()

	snap := Snapshot{
		"MSFT": {Ticker: "MSFT", Qty: 5, AvgCost: 300},
		"AAPL": {Ticker: "AAPL", Qty: 10, AvgCost: 100},
		"GME":  {Ticker: "GME", Qty: 0, AvgCost: 30},
	}

	held := snap.Held()
	assert.Len(t, held, 2)
	assert.Equal(t, "AAPL", held[0].Ticker)
	assert.Equal(t, "MSFT", held[1].Ticker)
}
