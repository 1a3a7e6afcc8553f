package journal

const Schema = `
CREATE TABLE IF NOT EXISTS fills (
	id TEXT PRIMARY KEY,
	date TEXT NOT NULL,
	ticker TEXT NOT NULL,
	side TEXT NOT NULL,
	qty INTEGER NOT NULL,
	avg_price REAL NOT NULL,
	timestamp TEXT NOT NULL,
	broker TEXT NOT NULL,
	order_id TEXT NOT NULL,
	note TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_date ON fills(date);

CREATE TABLE IF NOT EXISTS recommendations (
	date TEXT NOT NULL,
	ticker TEXT NOT NULL,
	action TEXT NOT NULL,
	limit_price REAL,
	target_shares INTEGER,
	note TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_recommendations_date ON recommendations(date);

CREATE TABLE IF NOT EXISTS positions (
	ticker TEXT PRIMARY KEY,
	qty INTEGER NOT NULL,
	avg_price REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS reconciliations (
	date TEXT NOT NULL,
	ticker TEXT NOT NULL,
	action TEXT NOT NULL,
	limit_price REAL,
	target_shares INTEGER,
	filled_shares INTEGER NOT NULL,
	avg_fill_price REAL,
	slippage_abs REAL,
	slippage_pct REAL,
	status TEXT NOT NULL,
	note TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reconciliations_date ON reconciliations(date);
`
