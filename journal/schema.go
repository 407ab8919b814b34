package journal

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	ticker TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price REAL NOT NULL,
	notional REAL NOT NULL,
	profit REAL NOT NULL,
	profit_pct REAL NOT NULL,
	time DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);
CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);

CREATE TABLE IF NOT EXISTS valuations (
	time DATETIME NOT NULL,
	cash REAL NOT NULL,
	positions_value REAL NOT NULL,
	unrealized REAL NOT NULL,
	equity REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_valuations_time ON valuations(time);
`
