package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/MaiconJonatha/trading-bot/ledger"
)

// CSV writes trades and valuations to two flat files, flushing after
// every record so a killed run still leaves usable output.
type CSV struct {
	trades     *csv.Writer
	valuations *csv.Writer
	tf, vf     *os.File
}

func NewCSV(tradesPath, valuationsPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	vf, err := os.Create(valuationsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	vw := csv.NewWriter(vf)

	if err := tw.Write([]string{"id", "kind", "ticker", "quantity", "price", "notional", "profit", "profit_pct", "time"}); err != nil {
		return nil, err
	}
	if err := vw.Write([]string{"time", "cash", "positions_value", "unrealized", "equity"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	vw.Flush()
	if err := vw.Error(); err != nil {
		return nil, err
	}

	return &CSV{trades: tw, valuations: vw, tf: tf, vf: vf}, nil
}

func (j *CSV) RecordTrade(t ledger.Trade) error {
	err := j.trades.Write([]string{
		t.ID,
		t.Kind.String(),
		t.Ticker,
		strconv.FormatInt(t.Quantity, 10),
		f(t.Price),
		f(t.Notional),
		f(t.Profit),
		f(t.ProfitPct),
		t.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordValuation(v ledger.Valuation) error {
	err := j.valuations.Write([]string{
		v.Time.Format(time.RFC3339),
		f(v.Cash),
		f(v.PositionsValue),
		f(v.Unrealized),
		f(v.Equity),
	})
	if err != nil {
		return err
	}
	j.valuations.Flush()
	return j.valuations.Error()
}

func (j *CSV) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.valuations.Flush()
	if err := j.valuations.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.vf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
