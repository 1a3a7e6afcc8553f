package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"tradetrack/id"
	"tradetrack/ledger"
	"tradetrack/recon"
	"tradetrack/trade"
)

// SQLiteStore keeps all records in one database file. Per-date queries
// return rows in insertion order (rowid), so last-write-wins semantics
// for duplicate recommendations carry over from the log order.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) AppendRecommendations(date string, recs []trade.Recommendation) error {
	for _, r := range recs {
		_, err := s.db.Exec(`
			INSERT INTO recommendations (date, ticker, action, limit_price, target_shares, note)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.Date, r.Ticker, r.Action, nullFloat(r.LimitPrice), nullInt(r.TargetShares), r.Note,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) AppendFills(date string, fills []trade.Fill) error {
	for _, f := range fills {
		fid := f.ID
		if fid == "" {
			fid = id.New()
		}
		_, err := s.db.Exec(`
			INSERT INTO fills (id, date, ticker, side, qty, avg_price, timestamp, broker, order_id, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			fid, f.Date, f.Ticker, string(f.Side), f.Qty, f.AvgPrice, f.Timestamp, f.Broker, f.OrderID, f.Note,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Recommendations(date string) ([]trade.Recommendation, error) {
	rows, err := s.db.Query(`
		SELECT date, ticker, action, limit_price, target_shares, note
		FROM recommendations
		WHERE date = ?
		ORDER BY rowid ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trade.Recommendation
	for rows.Next() {
		var (
			r      trade.Recommendation
			limit  sql.NullFloat64
			target sql.NullInt64
		)
		if err := rows.Scan(&r.Date, &r.Ticker, &r.Action, &limit, &target, &r.Note); err != nil {
			return nil, err
		}
		r.Ticker = trade.NormalizeTicker(r.Ticker)
		r.Action = trade.NormalizeAction(r.Action)
		if limit.Valid {
			v := limit.Float64
			r.LimitPrice = &v
		}
		if target.Valid {
			n := int(target.Int64)
			r.TargetShares = &n
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Fills(date string) ([]trade.Fill, error) {
	return s.queryFills(`
		SELECT id, date, ticker, side, qty, avg_price, timestamp, broker, order_id, note
		FROM fills
		WHERE date = ?
		ORDER BY rowid ASC`, date)
}

func (s *SQLiteStore) AllFills() ([]trade.Fill, error) {
	return s.queryFills(`
		SELECT id, date, ticker, side, qty, avg_price, timestamp, broker, order_id, note
		FROM fills
		ORDER BY date ASC, rowid ASC`)
}

func (s *SQLiteStore) queryFills(query string, args ...any) ([]trade.Fill, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trade.Fill
	for rows.Next() {
		var (
			f    trade.Fill
			side string
		)
		if err := rows.Scan(&f.ID, &f.Date, &f.Ticker, &side, &f.Qty, &f.AvgPrice, &f.Timestamp, &f.Broker, &f.OrderID, &f.Note); err != nil {
			return nil, err
		}
		f.Side = trade.ParseSide(side)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) LoadPositions() (ledger.Snapshot, error) {
	rows, err := s.db.Query(`SELECT ticker, qty, avg_price FROM positions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := make(ledger.Snapshot)
	for rows.Next() {
		var p ledger.Position
		if err := rows.Scan(&p.Ticker, &p.Qty, &p.AvgCost); err != nil {
			return nil, err
		}
		snap[p.Ticker] = p
	}
	return snap, rows.Err()
}

// SavePositions rewrites the positions table in one transaction, keeping
// only entries with a nonzero quantity.
func (s *SQLiteStore) SavePositions(snap ledger.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM positions`); err != nil {
		tx.Rollback()
		return err
	}
	for _, p := range snap.Held() {
		if _, err := tx.Exec(`
			INSERT INTO positions (ticker, qty, avg_price)
			VALUES (?, ?, ?)`, p.Ticker, p.Qty, p.AvgCost); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveReport replaces any previous reconciliation for the date, so
// re-running the engine stays idempotent at the storage level too.
func (s *SQLiteStore) SaveReport(date string, rows []recon.Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM reconciliations WHERE date = ?`, date); err != nil {
		tx.Rollback()
		return err
	}
	for _, r := range rows {
		if _, err := tx.Exec(`
			INSERT INTO reconciliations
			(date, ticker, action, limit_price, target_shares, filled_shares, avg_fill_price, slippage_abs, slippage_pct, status, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Date, r.Ticker, r.Action,
			nullFloat(r.LimitPrice), nullInt(r.TargetShares), r.FilledShares,
			nullFloat(r.AvgFillPrice), nullFloat(r.SlippageAbs), nullFloat(r.SlippagePct),
			string(r.Status), r.Note,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
