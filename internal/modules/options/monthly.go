package options

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
)

// MonthLayout renders the calendar month of a trade.
const MonthLayout = "2006-01"

type monthKey struct {
	month    string
	contract domain.ContractKey
}

// MonthlyRollup aggregates option cash flows into calendar months.
//
// Stage 1 groups by (month, instrument, strike, expiry) summing quantity into
// Contracts and cash flow into ProfitLoss; the group's OptionType is the label
// of its earliest trade. Stage 2 sums stage-1 ProfitLoss per month.
// Trades are expected in time order; cash trades are ignored.
func MonthlyRollup(trades []domain.Trade) Rollup {
	buckets := make(map[monthKey]*MonthlyBucket)
	for _, t := range trades {
		if !t.IsOption() {
			continue
		}

		key := monthKey{month: t.TradedTime.Format(MonthLayout), contract: t.Contract()}
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyBucket{
				Month:      key.month,
				Instrument: key.contract.Instrument,
				Strike:     key.contract.Strike,
				Expiry:     key.contract.Expiry,
				OptionType: optionType(t.Side),
				Contracts:  decimal.Zero,
				ProfitLoss: decimal.Zero,
			}
			buckets[key] = b
		}
		b.Contracts = b.Contracts.Add(t.Quantity)
		b.ProfitLoss = b.ProfitLoss.Add(t.Cashflow())
	}

	rollup := Rollup{
		Buckets: make([]MonthlyBucket, 0, len(buckets)),
		Totals:  make([]MonthlyTotal, 0),
	}
	for _, b := range buckets {
		rollup.Buckets = append(rollup.Buckets, *b)
	}
	sort.Slice(rollup.Buckets, func(i, j int) bool {
		a, b := rollup.Buckets[i], rollup.Buckets[j]
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return contractOfBucket(a).Compare(contractOfBucket(b)) < 0
	})

	// Buckets are month-ordered, so totals come out month-ordered too.
	for _, b := range rollup.Buckets {
		n := len(rollup.Totals)
		if n > 0 && rollup.Totals[n-1].Month == b.Month {
			rollup.Totals[n-1].ProfitLoss = rollup.Totals[n-1].ProfitLoss.Add(b.ProfitLoss)
			continue
		}
		rollup.Totals = append(rollup.Totals, MonthlyTotal{Month: b.Month, ProfitLoss: b.ProfitLoss})
	}

	return rollup
}

func optionType(side domain.Side) string {
	if side == domain.SideClose {
		return OptionTypeShort
	}
	return OptionTypeBuyToClose
}

func contractOfBucket(b MonthlyBucket) domain.ContractKey {
	return domain.ContractKey{Instrument: b.Instrument, Strike: b.Strike, Expiry: b.Expiry}
}
