// Package equity builds a daily portfolio-value series from the full fill
// history and compares its growth against benchmark ETFs.
package equity

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"time"

	"tradetrack/pricing"
	"tradetrack/trade"
)

// Series holds per-ticker share counts for each business day covered by
// the fill history.
type Series struct {
	Days    []string         // business days, ascending YYYY-MM-DD
	Tickers []string         // tickers with at least one nonzero day, sorted
	Qty     map[string][]int // ticker -> share count per day
}

// BuildDailySeries derives daily share counts from every recorded fill:
// buys add shares, sells subtract, cumulative from the fill's date
// forward. The series spans business days from the first fill date
// through today (fills landing on a weekend take effect the next
// business day). Tickers that never hold a nonzero count are dropped.
func BuildDailySeries(fills []trade.Fill, today string) (*Series, error) {
	if len(fills) == 0 {
		return nil, errors.New("no fills recorded")
	}

	start, end, err := span(fills, today)
	if err != nil {
		return nil, err
	}

	days := businessDays(start, end)
	if len(days) == 0 {
		return nil, errors.New("no business days in fill range")
	}

	deltas := make(map[string][]int)
	for _, f := range fills {
		idx := sort.SearchStrings(days, f.Date)
		if idx == len(days) {
			continue
		}
		d, ok := deltas[f.Ticker]
		if !ok {
			d = make([]int, len(days))
			deltas[f.Ticker] = d
		}
		if f.Side == trade.Buy {
			d[idx] += f.Qty
		} else {
			d[idx] -= f.Qty
		}
	}

	s := &Series{Days: days, Qty: make(map[string][]int, len(deltas))}
	for ticker, d := range deltas {
		counts := make([]int, len(days))
		running := 0
		nonzero := false
		for i, delta := range d {
			running += delta
			counts[i] = running
			if running != 0 {
				nonzero = true
			}
		}
		if nonzero {
			s.Qty[ticker] = counts
			s.Tickers = append(s.Tickers, ticker)
		}
	}
	sort.Strings(s.Tickers)

	if len(s.Tickers) == 0 {
		return nil, errors.New("no positions to chart")
	}
	return s, nil
}

func span(fills []trade.Fill, today string) (time.Time, time.Time, error) {
	min := fills[0].Date
	max := fills[0].Date
	for _, f := range fills[1:] {
		if f.Date < min {
			min = f.Date
		}
		if f.Date > max {
			max = f.Date
		}
	}
	start, err := time.Parse(trade.DateLayout, min)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad fill date %q: %w", min, err)
	}
	end, err := time.Parse(trade.DateLayout, today)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad date %q: %w", today, err)
	}
	if last, perr := time.Parse(trade.DateLayout, max); perr == nil && last.After(end) {
		end = last
	}
	if end.Before(start) {
		end = start
	}
	return start, end, nil
}

func businessDays(start, end time.Time) []string {
	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			out = append(out, d.Format(trade.DateLayout))
		}
	}
	return out
}

// Report is the equity-vs-benchmarks comparison, every series normalized
// to 1.0 at its first priced day. NaN marks days with no usable value.
type Report struct {
	Days       []string
	Portfolio  []float64
	Benchmarks []string // column order
	Bench      map[string][]float64
}

// Compare values the share-count series with daily closes and normalizes
// the portfolio and each benchmark to their first priced day. Prices are
// forward-filled across days the provider has no quote for.
func Compare(s *Series, quotes map[string][]pricing.Close, benchmarks []string) (*Report, error) {
	value := make([]float64, len(s.Days))
	for _, ticker := range s.Tickers {
		prices := fill(s.Days, quotes[ticker])
		counts := s.Qty[ticker]
		for i := range s.Days {
			if counts[i] == 0 {
				continue
			}
			if math.IsNaN(prices[i]) {
				value[i] = math.NaN()
				continue
			}
			value[i] += float64(counts[i]) * prices[i]
		}
	}

	report := &Report{
		Days:      s.Days,
		Portfolio: normalize(value),
		Bench:     make(map[string][]float64, len(benchmarks)),
	}
	for _, b := range benchmarks {
		closes, ok := quotes[b]
		if !ok || len(closes) == 0 {
			continue
		}
		report.Benchmarks = append(report.Benchmarks, b)
		report.Bench[b] = normalize(fill(s.Days, closes))
	}

	allNaN := true
	for _, v := range report.Portfolio {
		if !math.IsNaN(v) {
			allNaN = false
			break
		}
	}
	if allNaN {
		return nil, errors.New("no prices available for held tickers")
	}
	return report, nil
}

// fill maps closes onto the day grid, carrying the last seen price
// forward. Days before the first quote are NaN.
func fill(days []string, closes []pricing.Close) []float64 {
	byDay := make(map[string]float64, len(closes))
	for _, c := range closes {
		byDay[c.Date] = c.Price()
	}
	out := make([]float64, len(days))
	last := math.NaN()
	for i, d := range days {
		if p, ok := byDay[d]; ok {
			last = p
		}
		out[i] = last
	}
	return out
}

// normalize divides a series by its first finite nonzero value.
func normalize(values []float64) []float64 {
	base := math.NaN()
	for _, v := range values {
		if !math.IsNaN(v) && v != 0 {
			base = v
			break
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsNaN(base) {
			out[i] = math.NaN()
			continue
		}
		out[i] = v / base
	}
	return out
}

// WriteCSV emits date, portfolio, then one column per benchmark, values
// to 4 decimal places, blank where undefined.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{"date", "portfolio"}, r.Benchmarks...)
	cw.Write(header)

	for i, day := range r.Days {
		row := make([]string, 0, len(header))
		row = append(row, day, point(r.Portfolio[i]))
		for _, b := range r.Benchmarks {
			row = append(row, point(r.Bench[b][i]))
		}
		cw.Write(row)
	}

	cw.Flush()
	return cw.Error()
}

func point(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
