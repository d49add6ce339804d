package analytics

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/cash_flows"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/options"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/positions"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/modules/trading"
	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/utils"
	"github.com/joshinitinofficial/algotest-trade-visualizer/pkg/formulas"
)

// Service runs the analysis pipeline.
//
// The pipeline is one-directional: the normalizer produces an immutable,
// time-sorted trade slice and every later stage reads it independently.
// A Service holds no per-run state and is safe for concurrent use.
//
// Dependencies:
//   - trading.Normalizer: document validation and typing
//   - positions.Matcher: FIFO lot matching of cash trades
type Service struct {
	normalizer *trading.Normalizer
	matcher    *positions.Matcher
	now        func() time.Time
	log        zerolog.Logger
}

// NewService creates an analysis service. Timestamps without an offset are
// read in location.
func NewService(location *time.Location, log zerolog.Logger) *Service {
	return &Service{
		normalizer: trading.NewNormalizer(location, log),
		matcher:    positions.NewMatcher(log),
		now:        time.Now,
		log:        log.With().Str("service", "analytics").Logger(),
	}
}

// AnalyzeDocument parses a trade document and analyzes it.
// Validation failures are returned as *domain.MalformedInputError.
func (s *Service) AnalyzeDocument(ctx context.Context, r io.Reader, capital decimal.Decimal) (*Report, error) {
	trades, err := s.parse(r)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, trades, capital)
}

func (s *Service) parse(r io.Reader) ([]domain.Trade, error) {
	timer := utils.NewStageTimer("parse_document", s.log)
	defer timer.Done()

	raw, err := trading.ParseDocument(r)
	if err != nil {
		return nil, err
	}
	timer.Mark("decode")

	trades, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}
	timer.Mark("normalize")

	return trades, nil
}

// Analyze builds the report for already normalized trades.
func (s *Service) Analyze(ctx context.Context, trades []domain.Trade, capital decimal.Decimal) (*Report, error) {
	if capital.IsNegative() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCapital, capital)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	timer := utils.NewStageTimer("analysis", s.log)
	defer timer.Done()

	trades = sortedCopy(trades)
	optionTrades, cashTrades := trading.Partition(trades)

	flows := cash_flows.Calculate(trades)
	timer.Mark("cash_flows")
	matched := s.matcher.Match(cashTrades)
	timer.Mark("fifo_match")
	rollup := options.MonthlyRollup(optionTrades)
	holdings := options.Lifecycles(optionTrades)
	timer.Mark("options")

	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: s.now(),
		Summary: Summary{
			Capital:      capital,
			TotalPnL:     flows.TotalPnL,
			ReturnPct:    cash_flows.ReturnPercentage(flows.TotalPnL, capital),
			Duration:     cash_flows.TradingDuration(trades),
			Trades:       len(trades),
			OptionTrades: len(optionTrades),
			CashTrades:   len(cashTrades),
		},
		Equity:           flows.Equity,
		OptionHoldings:   holdings,
		CashHoldings:     matched.Closed,
		OpenLots:         matched.Open,
		Unmatched:        matched.Unmatched,
		MonthlyContracts: rollup.Buckets,
		MonthlyTotals:    rollup.Totals,
		Statistics:       computeStatistics(flows.Equity, rollup.Totals),
	}

	s.log.Info().
		Str("run_id", report.RunID).
		Int("trades", report.Summary.Trades).
		Int("option_trades", report.Summary.OptionTrades).
		Int("cash_trades", report.Summary.CashTrades).
		Int("unmatched", len(report.Unmatched)).
		Str("total_pnl", report.Summary.TotalPnL.String()).
		Msg("Analysis complete")

	return report, nil
}

// sortedCopy orders trades by time, falling back to document sequence.
// The caller's slice is left untouched.
func sortedCopy(trades []domain.Trade) []domain.Trade {
	out := make([]domain.Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.TradedTime.Equal(b.TradedTime) {
			return a.TradedTime.Before(b.TradedTime)
		}
		return a.Sequence < b.Sequence
	})
	return out
}

func computeStatistics(equity []cash_flows.EquityPoint, totals []options.MonthlyTotal) Statistics {
	var stats Statistics

	curve := make([]float64, len(equity))
	for i, p := range equity {
		curve[i] = p.Cumulative.InexactFloat64()
	}
	if dd := formulas.CalculateMaxDrawdown(curve); dd != nil {
		stats.MaxDrawdown = dd.MaxDrawdown
	}

	monthly := make([]float64, len(totals))
	for i, m := range totals {
		monthly[i] = m.ProfitLoss.InexactFloat64()
	}
	stats.MonthlyMean = domain.Round2(formulas.Mean(monthly))
	stats.MonthlyStdDev = domain.Round2(formulas.StdDev(monthly))
	stats.ProfitableMonths, stats.LosingMonths = formulas.CountSigns(monthly)

	if best, worst := formulas.Extremes(monthly); best >= 0 {
		b, w := totals[best], totals[worst]
		stats.BestMonth, stats.WorstMonth = &b, &w
	}

	return stats
}
