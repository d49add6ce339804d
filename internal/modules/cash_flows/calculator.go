// Package cash_flows computes the realized cash flow of a trade history.
// Every function here is a pure reduction over an already normalized,
// time-ordered trade slice; nothing is stored between calls.
package cash_flows

import (
	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Calculate computes the per-trade cash flow and the running cumulative P&L.
//
// Cash flow follows the fixed sign convention: opening a position (side +1) is
// an outflow, closing (side -1) is an inflow. The cumulative series is built in
// the order the trades are given, which callers keep ascending by traded time.
//
// Parameters:
//   - trades: Normalized trades sorted by traded time
//
// Returns:
//   - Result: Equity curve (one point per trade) and the total realized P&L
func Calculate(trades []domain.Trade) Result {
	result := Result{
		Equity:   make([]EquityPoint, 0, len(trades)),
		TotalPnL: decimal.Zero,
	}

	cumulative := decimal.Zero
	for _, t := range trades {
		cf := t.Cashflow()
		cumulative = cumulative.Add(cf)
		result.Equity = append(result.Equity, EquityPoint{
			Time:       t.TradedTime,
			Instrument: t.Instrument,
			Cashflow:   cf,
			Cumulative: cumulative,
		})
	}
	result.TotalPnL = cumulative

	return result
}

// ReturnPercentage expresses total P&L as a percentage of the capital deployed.
// Capital of zero (or below) yields exactly zero instead of dividing by zero.
//
// Parameters:
//   - totalPnL: Realized profit/loss
//   - capital: Capital deployed, in the same currency
//
// Returns:
//   - decimal.Decimal: totalPnL / capital * 100, or 0 when capital <= 0
func ReturnPercentage(totalPnL, capital decimal.Decimal) decimal.Decimal {
	if !capital.IsPositive() {
		return decimal.Zero
	}
	return totalPnL.Mul(oneHundred).Div(capital)
}

// TradingDuration measures the span between the first and last trade.
// An empty history has a zero duration.
//
// Parameters:
//   - trades: Normalized trades sorted by traded time
//
// Returns:
//   - Duration: Start and end timestamps with whole days, months and years
func TradingDuration(trades []domain.Trade) Duration {
	if len(trades) == 0 {
		return Duration{}
	}

	// Sorted input makes the ends the extremes; scan anyway so the result does
	// not depend on the caller's ordering.
	start, end := trades[0].TradedTime, trades[0].TradedTime
	for _, t := range trades[1:] {
		if t.TradedTime.Before(start) {
			start = t.TradedTime
		}
		if t.TradedTime.After(end) {
			end = t.TradedTime
		}
	}

	days := domain.HoldingDays(start, end)
	return Duration{
		Start:  start,
		End:    end,
		Days:   days,
		Months: domain.Round2(float64(days) / domain.DaysPerMonth),
		Years:  domain.Round2(float64(days) / domain.DaysPerYear),
	}
}
