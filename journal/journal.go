// Package journal persists executed trades and valuation snapshots so
// a run can be inspected after the process exits. The ledger itself is
// in-memory only; the journal is a write-only audit trail.
package journal

import "github.com/MaiconJonatha/trading-bot/ledger"

type Journal interface {
	RecordTrade(ledger.Trade) error
	RecordValuation(ledger.Valuation) error
	Close() error
}

// Nop discards everything. Used when journaling is disabled.
type Nop struct{}

func (Nop) RecordTrade(ledger.Trade) error         { return nil }
func (Nop) RecordValuation(ledger.Valuation) error { return nil }
func (Nop) Close() error                           { return nil }
