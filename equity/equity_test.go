package equity

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"tradetrack/pricing"
	"tradetrack/trade"
)

func mkFill(date, ticker string, side trade.Side, qty int) trade.Fill {
	return trade.Fill{Date: date, Ticker: ticker, Side: side, Qty: qty}
}

// 2024-01-01 is a Monday, so 01-02..01-05 are Tue..Fri.

func TestBuildDailySeries(t *testing.T) {
	t.Parallel()

	fills := []trade.Fill{
		mkFill("2024-01-02", "AAPL", trade.Buy, 10),
		mkFill("2024-01-03", "AAPL", trade.Sell, 5),
	}

	s, err := BuildDailySeries(fills, "2024-01-05")
	assert.NoError(t, err)

	assert.Equal(t, []string{"2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}, s.Days)
	assert.Equal(t, []string{"AAPL"}, s.Tickers)
	assert.Equal(t, []int{10, 5, 5, 5}, s.Qty["AAPL"])
}

func TestBuildDailySeriesSkipsWeekends(t *testing.T) {
	t.Parallel()

	// 2024-01-05 is a Friday; the following Monday is 01-08.
	fills := []trade.Fill{mkFill("2024-01-05", "AAPL", trade.Buy, 10)}

	s, err := BuildDailySeries(fills, "2024-01-08")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-01-05", "2024-01-08"}, s.Days)
	assert.Equal(t, []int{10, 10}, s.Qty["AAPL"])
}

func TestBuildDailySeriesNoFills(t *testing.T) {
	t.Parallel()

	_, err := BuildDailySeries(nil, "2024-01-05")
	assert.Error(t, err)
}

func TestBuildDailySeriesDropsFlatTickers(t *testing.T) {
	t.Parallel()

	fills := []trade.Fill{
		mkFill("2024-01-02", "GME", trade.Buy, 10),
		mkFill("2024-01-02", "GME", trade.Sell, 10),
	}

	_, err := BuildDailySeries(fills, "2024-01-03")
	assert.Error(t, err, "a portfolio that never holds anything has nothing to chart")
}

func TestCompareNormalizes(t *testing.T) {
	t.Parallel()

	s := &Series{
		Days:    []string{"2024-01-02", "2024-01-03"},
		Tickers: []string{"AAPL"},
		Qty:     map[string][]int{"AAPL": {10, 10}},
	}
	quotes := map[string][]pricing.Close{
		"AAPL": {
			{Date: "2024-01-02", Close: 100},
			{Date: "2024-01-03", Close: 110},
		},
		"SPY": {
			{Date: "2024-01-02", Close: 400},
			{Date: "2024-01-03", Close: 440},
		},
	}

	r, err := Compare(s, quotes, []string{"SPY"})
	assert.NoError(t, err)

	assert.InDelta(t, 1.0, r.Portfolio[0], 1e-9)
	assert.InDelta(t, 1.1, r.Portfolio[1], 1e-9)
	assert.InDelta(t, 1.0, r.Bench["SPY"][0], 1e-9)
	assert.InDelta(t, 1.1, r.Bench["SPY"][1], 1e-9)
}

func TestCompareForwardFillsPrices(t *testing.T) {
	t.Parallel()

	s := &Series{
		Days:    []string{"2024-01-02", "2024-01-03", "2024-01-04"},
		Tickers: []string{"AAPL"},
		Qty:     map[string][]int{"AAPL": {10, 10, 10}},
	}
	quotes := map[string][]pricing.Close{
		"AAPL": {
			{Date: "2024-01-02", Close: 100},
			// no quote on 01-03
			{Date: "2024-01-04", Close: 120},
		},
	}

	r, err := Compare(s, quotes, nil)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, r.Portfolio[1], 1e-9, "gap day carries the prior close")
	assert.InDelta(t, 1.2, r.Portfolio[2], 1e-9)
}

func TestCompareNoPrices(t *testing.T) {
	t.Parallel()

	s := &Series{
		Days:    []string{"2024-01-02"},
		Tickers: []string{"AAPL"},
		Qty:     map[string][]int{"AAPL": {10}},
	}

	_, err := Compare(s, map[string][]pricing.Close{}, nil)
	assert.Error(t, err)
}

func TestCompareDaysBeforeFirstQuoteAreBlank(t *testing.T) {
	t.Parallel()

	s := &Series{
		Days:    []string{"2024-01-02", "2024-01-03"},
		Tickers: []string{"AAPL"},
		Qty:     map[string][]int{"AAPL": {10, 10}},
	}
	quotes := map[string][]pricing.Close{
		"AAPL": {{Date: "2024-01-03", Close: 100}},
	}

	r, err := Compare(s, quotes, nil)
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(r.Portfolio[0]))
	assert.InDelta(t, 1.0, r.Portfolio[1], 1e-9)
}

func TestReportWriteCSV(t *testing.T) {
	t.Parallel()

	r := &Report{
		Days:       []string{"2024-01-02", "2024-01-03"},
		Portfolio:  []float64{1, 1.1},
		Benchmarks: []string{"SPY"},
		Bench:      map[string][]float64{"SPY": {math.NaN(), 1.05}},
	}

	var buf bytes.Buffer
	assert.NoError(t, r.WriteCSV(&buf))

	assert.Equal(t,
		"date,portfolio,SPY\n"+
			"2024-01-02,1.0000,\n"+
			"2024-01-03,1.1000,1.0500\n",
		buf.String())
}
