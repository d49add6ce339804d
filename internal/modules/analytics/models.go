// Package analytics assembles the full trade analysis report from the
// normalizer, cash-flow, position and option stages.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/cash_flows"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/options"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/positions"
)

// Summary holds the headline numbers of a run.
type Summary struct {
	Capital      decimal.Decimal     `json:"capital"`
	TotalPnL     decimal.Decimal     `json:"total_pnl"`
	ReturnPct    decimal.Decimal     `json:"return_pct"`
	Duration     cash_flows.Duration `json:"duration"`
	Trades       int                 `json:"trades"`
	OptionTrades int                 `json:"option_trades"`
	CashTrades   int                 `json:"cash_trades"`
}

// Statistics are derived from the equity curve and the monthly option totals.
type Statistics struct {
	MaxDrawdown      float64               `json:"max_drawdown"` // absolute, in currency units
	MonthlyMean      float64               `json:"monthly_mean"`
	MonthlyStdDev    float64               `json:"monthly_std_dev"`
	ProfitableMonths int                   `json:"profitable_months"`
	LosingMonths     int                   `json:"losing_months"`
	BestMonth        *options.MonthlyTotal `json:"best_month,omitempty"`
	WorstMonth       *options.MonthlyTotal `json:"worst_month,omitempty"`
}

// Report is the result of one analysis run. Every slice is non-nil so an
// empty subset encodes as [] rather than null.
type Report struct {
	RunID            string                     `json:"run_id"`
	GeneratedAt      time.Time                  `json:"generated_at"`
	Summary          Summary                    `json:"summary"`
	Equity           []cash_flows.EquityPoint   `json:"equity"`
	OptionHoldings   []options.Holding          `json:"option_holdings"`
	CashHoldings     []positions.ClosedPosition `json:"cash_holdings"`
	OpenLots         []positions.OpenLot        `json:"open_lots"`
	Unmatched        []positions.UnmatchedClose `json:"unmatched"`
	MonthlyContracts []options.MonthlyBucket    `json:"monthly_contracts"`
	MonthlyTotals    []options.MonthlyTotal     `json:"monthly_totals"`
	Statistics       Statistics                 `json:"statistics"`
}
