package cash_flows

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is one step of the cumulative profit/loss curve.
// There is one point per trade, in trade time order.
type EquityPoint struct {
	Time       time.Time       `json:"time"`
	Instrument string          `json:"instrument"`
	Cashflow   decimal.Decimal `json:"cashflow"`   // -side * price * quantity of this trade
	Cumulative decimal.Decimal `json:"cumulative"` // running sum up to and including this trade
}

// Result is the outcome of a cash-flow pass over a trade history.
type Result struct {
	Equity   []EquityPoint   `json:"equity"`
	TotalPnL decimal.Decimal `json:"total_pnl"` // sum of all cash flows
}

// Duration describes the span of a trade history.
type Duration struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Days   int       `json:"days"`   // whole days between the first and last trade
	Months float64   `json:"months"` // Days / 30.44, rounded to 2 decimals
	Years  float64   `json:"years"`  // Days / 365, rounded to 2 decimals
}
