package journal_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaiconJonatha/trading-bot/journal"
	"github.com/MaiconJonatha/trading-bot/ledger"
)

func sampleTrade() ledger.Trade {
	return ledger.Trade{
		ID:        "01J0000000000000000000TEST",
		Kind:      ledger.TradeBuy,
		Ticker:    "AAA",
		Quantity:  10,
		Price:     100,
		Notional:  1000,
		Time:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Profit:    0,
		ProfitPct: 0,
	}
}

func sampleValuation() ledger.Valuation {
	return ledger.Valuation{
		Time:           time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC),
		Cash:           9000,
		PositionsValue: 1100,
		Unrealized:     100,
		Equity:         10100,
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVRecordsTrades(t *testing.T) {
	dir := t.TempDir()
	tradesPath := filepath.Join(dir, "trades.csv")
	valsPath := filepath.Join(dir, "valuations.csv")

	j, err := journal.NewCSV(tradesPath, valsPath)
	require.NoError(t, err)

	require.NoError(t, j.RecordTrade(sampleTrade()))

	// Flushed per record, readable before Close.
	rows := readCSV(t, tradesPath)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "kind", "ticker", "quantity", "price", "notional", "profit", "profit_pct", "time"}, rows[0])
	assert.Equal(t, "01J0000000000000000000TEST", rows[1][0])
	assert.Equal(t, "BUY", rows[1][1])
	assert.Equal(t, "AAA", rows[1][2])
	assert.Equal(t, "10", rows[1][3])
	assert.Equal(t, "100.000000", rows[1][4])
	assert.Equal(t, "1000.000000", rows[1][5])
	assert.Equal(t, "2026-08-01T12:00:00Z", rows[1][8])

	require.NoError(t, j.Close())
}

func TestCSVRecordsValuations(t *testing.T) {
	dir := t.TempDir()
	j, err := journal.NewCSV(filepath.Join(dir, "t.csv"), filepath.Join(dir, "v.csv"))
	require.NoError(t, err)

	require.NoError(t, j.RecordValuation(sampleValuation()))
	require.NoError(t, j.Close())

	rows := readCSV(t, filepath.Join(dir, "v.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"time", "cash", "positions_value", "unrealized", "equity"}, rows[0])
	assert.Equal(t, "2026-08-01T13:00:00Z", rows[1][0])
	assert.Equal(t, "9000.000000", rows[1][1])
	assert.Equal(t, "10100.000000", rows[1][4])
}

func TestNewCSVBadPath(t *testing.T) {
	dir := t.TempDir()
	_, err := journal.NewCSV(filepath.Join(dir, "nope", "t.csv"), filepath.Join(dir, "v.csv"))
	assert.Error(t, err)
	_, err = journal.NewCSV(filepath.Join(dir, "t.csv"), filepath.Join(dir, "nope", "v.csv"))
	assert.Error(t, err)
}

func TestNopJournalDiscards(t *testing.T) {
	j := journal.Nop{}
	assert.NoError(t, j.RecordTrade(sampleTrade()))
	assert.NoError(t, j.RecordValuation(sampleValuation()))
	assert.NoError(t, j.Close())
}
