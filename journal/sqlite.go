package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MaiconJonatha/trading-bot/ledger"
)

// SQLite journals into a local database file, which keeps the full
// trade history queryable across runs.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t ledger.Trade) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(id, kind, ticker, quantity, price, notional, profit, profit_pct, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Kind.String(), t.Ticker, t.Quantity,
		t.Price, t.Notional, t.Profit, t.ProfitPct, t.Time,
	)
	return err
}

func (j *SQLite) RecordValuation(v ledger.Valuation) error {
	_, err := j.db.Exec(`
		INSERT INTO valuations
		(time, cash, positions_value, unrealized, equity)
		VALUES (?, ?, ?, ?, ?)`,
		v.Time, v.Cash, v.PositionsValue, v.Unrealized, v.Equity,
	)
	return err
}

// ListTrades returns every journaled trade in execution order.
func (j *SQLite) ListTrades() ([]ledger.Trade, error) {
	rows, err := j.db.Query(`
		SELECT id, kind, ticker, quantity, price, notional, profit, profit_pct, time
		FROM trades ORDER BY time, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrades(rows)
}

// ListTradesBetween returns journaled trades executed in [from, to).
func (j *SQLite) ListTradesBetween(from, to time.Time) ([]ledger.Trade, error) {
	rows, err := j.db.Query(`
		SELECT id, kind, ticker, quantity, price, notional, profit, profit_pct, time
		FROM trades WHERE time >= ? AND time < ? ORDER BY time, id`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrades(rows)
}

func scanTrades(rows *sql.Rows) ([]ledger.Trade, error) {
	var out []ledger.Trade
	for rows.Next() {
		var (
			t    ledger.Trade
			kind string
		)
		if err := rows.Scan(&t.ID, &kind, &t.Ticker, &t.Quantity,
			&t.Price, &t.Notional, &t.Profit, &t.ProfitPct, &t.Time); err != nil {
			return nil, err
		}
		k, err := ledger.ParseTradeKind(kind)
		if err != nil {
			return nil, err
		}
		t.Kind = k
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
