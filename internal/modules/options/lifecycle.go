// Package options summarizes option trades per contract and per calendar month.
package options

import (
	"sort"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
)

// Lifecycles groups option trades by (instrument, strike, expiry) and reports
// the span between the first and last trade of each group. It does not match
// quantities; a contract is assumed held continuously over that span.
// Cash trades are ignored. Output is ordered by contract key.
func Lifecycles(trades []domain.Trade) []Holding {
	type span struct {
		key         domain.ContractKey
		entry, exit int // indexes into trades
		count       int
	}

	groups := make(map[domain.ContractKey]*span)
	for i, t := range trades {
		if !t.IsOption() {
			continue
		}
		key := t.Contract()
		g, ok := groups[key]
		if !ok {
			groups[key] = &span{key: key, entry: i, exit: i, count: 1}
			continue
		}
		if t.TradedTime.Before(trades[g.entry].TradedTime) {
			g.entry = i
		}
		if !t.TradedTime.Before(trades[g.exit].TradedTime) {
			g.exit = i
		}
		g.count++
	}

	holdings := make([]Holding, 0, len(groups))
	for _, g := range groups {
		entry, exit := trades[g.entry].TradedTime, trades[g.exit].TradedTime
		days := domain.HoldingDays(entry, exit)
		holdings = append(holdings, Holding{
			Instrument:    g.key.Instrument,
			Strike:        g.key.Strike,
			Expiry:        g.key.Expiry,
			EntryTime:     entry,
			ExitTime:      exit,
			HoldingDays:   days,
			HoldingMonths: domain.HoldingMonths(days),
			Trades:        g.count,
		})
	}

	sort.Slice(holdings, func(i, j int) bool {
		return contractOf(holdings[i]).Compare(contractOf(holdings[j])) < 0
	})

	return holdings
}

func contractOf(h Holding) domain.ContractKey {
	return domain.ContractKey{Instrument: h.Instrument, Strike: h.Strike, Expiry: h.Expiry}
}
