package bot

import (
	"fmt"
	"io"

	"github.com/MaiconJonatha/trading-bot/ledger"
)

const rule = "======================================================================"

// WriteValuation renders the open-positions report.
func WriteValuation(w io.Writer, v ledger.Valuation) {
	if len(v.Holdings) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No open positions.")
	} else {
		fmt.Fprintln(w)
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, " OPEN POSITIONS")
		fmt.Fprintln(w, rule)

		for _, h := range v.Holdings {
			fmt.Fprintf(w, "\n %s:\n", h.Ticker)
			fmt.Fprintf(w, "   Quantity:       %d\n", h.Quantity)
			fmt.Fprintf(w, "   Average Cost:   %.2f\n", h.AvgCost)
			fmt.Fprintf(w, "   Current Price:  %.2f\n", h.Price)
			fmt.Fprintf(w, "   Invested:       %.2f\n", h.Invested)
			fmt.Fprintf(w, "   Market Value:   %.2f\n", h.MarketValue)
			fmt.Fprintf(w, "   Unrealized P&L: %.2f (%+.2f%%)\n", h.Unrealized, h.UnrealizedPct)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, " Available Cash:  %.2f\n", v.Cash)
	fmt.Fprintf(w, " Positions Value: %.2f\n", v.PositionsValue)
	fmt.Fprintf(w, " Unrealized P&L:  %.2f\n", v.Unrealized)
	fmt.Fprintf(w, " Total Equity:    %.2f\n", v.Equity)
	fmt.Fprintln(w, rule)
}

// WriteHistory renders the trade history report.
func WriteHistory(w io.Writer, trades []ledger.Trade) {
	if len(trades) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "No trades executed yet.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, " TRADE HISTORY")
	fmt.Fprintln(w, rule)

	for i, t := range trades {
		fmt.Fprintf(w, "\nTrade #%d:\n", i+1)
		fmt.Fprintf(w, "  Kind:     %s\n", t.Kind)
		fmt.Fprintf(w, "  Ticker:   %s\n", t.Ticker)
		fmt.Fprintf(w, "  Quantity: %d\n", t.Quantity)
		fmt.Fprintf(w, "  Price:    %.2f\n", t.Price)
		fmt.Fprintf(w, "  Notional: %.2f\n", t.Notional)
		fmt.Fprintf(w, "  Time:     %s\n", t.Time.Format("2006-01-02 15:04:05"))
		if t.Kind == ledger.TradeSell {
			fmt.Fprintf(w, "  Profit:   %.2f (%+.2f%%)\n", t.Profit, t.ProfitPct)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
}
