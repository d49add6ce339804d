package options

import (
	"time"

	"github.com/shopspring/decimal"
)

// Option type labels. They describe the first fill of a monthly group and do
// not affect any number.
const (
	OptionTypeShort      = "short"
	OptionTypeBuyToClose = "buy-to-close"
)

// Holding summarizes the life of one option contract.
type Holding struct {
	Instrument    string    `json:"instrument"`
	Strike        string    `json:"strike"`
	Expiry        string    `json:"expiry"`
	EntryTime     time.Time `json:"entry_time"` // first trade on the contract
	ExitTime      time.Time `json:"exit_time"`  // last trade on the contract
	HoldingDays   int       `json:"holding_days"`
	HoldingMonths float64   `json:"holding_months"`
	Trades        int       `json:"trades"`
}

// MonthlyBucket is the P&L of one contract within one calendar month.
type MonthlyBucket struct {
	Month      string          `json:"month"` // YYYY-MM
	Instrument string          `json:"instrument"`
	Strike     string          `json:"strike"`
	Expiry     string          `json:"expiry"`
	OptionType string          `json:"option_type"`
	Contracts  decimal.Decimal `json:"contracts"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
}

// MonthlyTotal is the option P&L of one calendar month across all contracts.
type MonthlyTotal struct {
	Month      string          `json:"month"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
}

// Rollup is the two-stage monthly aggregation.
type Rollup struct {
	Buckets []MonthlyBucket `json:"buckets"`
	Totals  []MonthlyTotal  `json:"totals"`
}
