package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"tradetrack/ledger"
	"tradetrack/recon"
	"tradetrack/trade"
)

// CSVStore keeps everything under one data directory, one file per date:
//
//	<dir>/recs/<date>.csv
//	<dir>/fills/<date>.csv
//	<dir>/reports/recon_<date>.csv
//	<dir>/positions.csv
//
// Log files are append-only with the header written once. The position
// snapshot is replaced via a temp file and atomic rename so a concurrent
// reader never observes a partial write.
type CSVStore struct {
	dir string
}

func NewCSV(dir string) (*CSVStore, error) {
	for _, sub := range []string{"recs", "fills", "reports"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return &CSVStore{dir: dir}, nil
}

func (s *CSVStore) recPath(date string) string {
	return filepath.Join(s.dir, "recs", date+".csv")
}

func (s *CSVStore) fillPath(date string) string {
	return filepath.Join(s.dir, "fills", date+".csv")
}

func (s *CSVStore) reportPath(date string) string {
	return filepath.Join(s.dir, "reports", "recon_"+date+".csv")
}

func (s *CSVStore) positionsPath() string {
	return filepath.Join(s.dir, "positions.csv")
}

func (s *CSVStore) AppendRecommendations(date string, recs []trade.Recommendation) error {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Date,
			r.Ticker,
			r.Action,
			optFloat(r.LimitPrice),
			optInt(r.TargetShares),
			r.Note,
		})
	}
	return appendRows(s.recPath(date), RecHeader, rows)
}

func (s *CSVStore) AppendFills(date string, fills []trade.Fill) error {
	rows := make([][]string, 0, len(fills))
	for _, f := range fills {
		rows = append(rows, []string{
			f.Date,
			f.Ticker,
			string(f.Side),
			strconv.Itoa(f.Qty),
			strconv.FormatFloat(f.AvgPrice, 'f', -1, 64),
			f.Timestamp,
			f.Broker,
			f.OrderID,
			f.Note,
		})
	}
	return appendRows(s.fillPath(date), FillHeader, rows)
}

func (s *CSVStore) Recommendations(date string) ([]trade.Recommendation, error) {
	file, err := readCSV(s.recPath(date))
	if err != nil {
		return nil, err
	}
	recs := make([]trade.Recommendation, 0, len(file.rows))
	for _, row := range file.rows {
		recs = append(recs, trade.Recommendation{
			Date:         file.field(row, "date"),
			Ticker:       trade.NormalizeTicker(file.field(row, "ticker")),
			Action:       trade.NormalizeAction(file.field(row, "action")),
			LimitPrice:   trade.ParseOptionalPrice(file.field(row, "limit_price")),
			TargetShares: trade.ParseOptionalShares(file.field(row, "target_shares")),
			Note:         file.field(row, "note"),
		})
	}
	return recs, nil
}

func (s *CSVStore) Fills(date string) ([]trade.Fill, error) {
	return fillsFromFile(s.fillPath(date))
}

func (s *CSVStore) AllFills() ([]trade.Fill, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "fills", "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var all []trade.Fill
	for _, p := range paths {
		fills, err := fillsFromFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		all = append(all, fills...)
	}
	return all, nil
}

func (s *CSVStore) LoadPositions() (ledger.Snapshot, error) {
	file, err := readCSV(s.positionsPath())
	if err != nil {
		return nil, err
	}
	snap := make(ledger.Snapshot, len(file.rows))
	for _, row := range file.rows {
		ticker := trade.NormalizeTicker(file.field(row, "ticker"))
		snap[ticker] = ledger.Position{
			Ticker:  ticker,
			Qty:     trade.ParseQuantity(file.field(row, "qty")),
			AvgCost: trade.ParsePrice(file.field(row, "avg_price")),
		}
	}
	return snap, nil
}

func (s *CSVStore) SavePositions(snap ledger.Snapshot) error {
	path := s.positionsPath()
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	// Remove the temp file on any failure; after a successful rename
	// this is a no-op.
	defer os.Remove(tmp)

	w := csv.NewWriter(f)
	w.Write(PositionHeader)
	for _, p := range snap.Held() {
		w.Write([]string{
			p.Ticker,
			strconv.Itoa(p.Qty),
			strconv.FormatFloat(p.AvgCost, 'f', 4, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *CSVStore) SaveReport(date string, rows []recon.Row) error {
	f, err := os.Create(s.reportPath(date))
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Write(ReportHeader)
	for _, r := range rows {
		w.Write([]string{
			r.Date,
			r.Ticker,
			r.Action,
			recon.Price(r.LimitPrice),
			recon.Shares(r.TargetShares),
			strconv.Itoa(r.FilledShares),
			recon.Price(r.AvgFillPrice),
			recon.Price(r.SlippageAbs),
			recon.Percent(r.SlippagePct),
			string(r.Status),
			r.Note,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *CSVStore) Close() error { return nil }

// appendRows appends records to a log file, writing the header only when
// the file does not exist yet.
func appendRows(path string, header []string, rows [][]string) error {
	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if isNew {
		w.Write(header)
	}
	for _, row := range rows {
		w.Write(row)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// csvFile is a header-indexed view of one log file, so readers address
// fields by column name rather than position.
type csvFile struct {
	cols map[string]int
	rows [][]string
}

func readCSV(path string) (*csvFile, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &csvFile{}, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &csvFile{}, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	return &csvFile{cols: cols, rows: records[1:]}, nil
}

func (c *csvFile) field(row []string, name string) string {
	i, ok := c.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func fillsFromFile(path string) ([]trade.Fill, error) {
	file, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	fills := make([]trade.Fill, 0, len(file.rows))
	for _, row := range file.rows {
		fills = append(fills, trade.Fill{
			Date:      file.field(row, "date"),
			Ticker:    trade.NormalizeTicker(file.field(row, "ticker")),
			Side:      trade.ParseSide(file.field(row, "side")),
			Qty:       trade.ParseQuantity(file.field(row, "qty")),
			AvgPrice:  trade.ParsePrice(file.field(row, "avg_price")),
			Timestamp: file.field(row, "timestamp"),
			Broker:    file.field(row, "broker"),
			OrderID:   file.field(row, "order_id"),
			Note:      file.field(row, "note"),
		})
	}
	return fills, nil
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
