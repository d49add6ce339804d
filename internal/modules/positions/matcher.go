// Package positions reconstructs closed round-trip positions from cash and
// underlying fills using first-in-first-out lot matching.
package positions

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
)

// Matcher pairs closing fills with the oldest open lots of the same instrument.
// It holds no state between calls; every Match call starts with empty queues.
type Matcher struct {
	log zerolog.Logger
}

// NewMatcher creates a new FIFO lot matcher
func NewMatcher(log zerolog.Logger) *Matcher {
	return &Matcher{
		log: log.With().Str("service", "fifo_matcher").Logger(),
	}
}

// Match runs FIFO matching over trades, which must be sorted by traded time.
// Option trades are skipped; they are summarized by contract lifecycle instead.
//
// Each instrument has its own queue. An opening fill appends a lot; a closing
// fill consumes lots from the head, emitting one ClosedPosition per lot touched
// and splitting the last lot when it is only partly consumed. Closing quantity
// left over once the queue is empty is dropped from matching and reported in
// Result.Unmatched.
func (m *Matcher) Match(trades []domain.Trade) Result {
	result := Result{
		Closed:    make([]ClosedPosition, 0),
		Open:      make([]OpenLot, 0),
		Unmatched: make([]UnmatchedClose, 0),
	}

	queues := make(map[string]*lotQueue)
	var instruments []string // first-seen order, for a deterministic Open list

	for _, t := range trades {
		if t.IsOption() {
			continue
		}

		q, ok := queues[t.Instrument]
		if !ok {
			q = &lotQueue{}
			queues[t.Instrument] = q
			instruments = append(instruments, t.Instrument)
		}

		switch t.Side {
		case domain.SideOpen:
			q.push(OpenLot{
				EntryTime:  t.TradedTime,
				Instrument: t.Instrument,
				Remaining:  t.Quantity,
			})
		case domain.SideClose:
			if left := m.close(q, t, &result); left.IsPositive() {
				result.Unmatched = append(result.Unmatched, UnmatchedClose{
					Time:       t.TradedTime,
					Instrument: t.Instrument,
					Quantity:   left,
				})
				m.log.Debug().
					Str("instrument", t.Instrument).
					Time("traded_time", t.TradedTime).
					Str("quantity", left.String()).
					Msg("Closing quantity has no open lot, skipping remainder")
			}
		}
	}

	for _, instrument := range instruments {
		result.Open = append(result.Open, queues[instrument].open()...)
	}

	m.log.Debug().
		Int("closed", len(result.Closed)).
		Int("open", len(result.Open)).
		Int("unmatched", len(result.Unmatched)).
		Msg("FIFO matching complete")

	return result
}

// close consumes lots for one closing trade and returns the unmatched remainder.
func (m *Matcher) close(q *lotQueue, t domain.Trade, result *Result) decimal.Decimal {
	qtyToClose := t.Quantity
	for qtyToClose.IsPositive() && q.len() > 0 {
		lot := q.front()
		matched := decimal.Min(qtyToClose, lot.Remaining)

		days := domain.HoldingDays(lot.EntryTime, t.TradedTime)
		result.Closed = append(result.Closed, ClosedPosition{
			EntryTime:     lot.EntryTime,
			ExitTime:      t.TradedTime,
			Instrument:    t.Instrument,
			Quantity:      matched,
			HoldingDays:   days,
			HoldingMonths: domain.HoldingMonths(days),
		})

		qtyToClose = qtyToClose.Sub(matched)
		lot.Remaining = lot.Remaining.Sub(matched)
		if lot.Remaining.IsZero() {
			q.pop()
		}
	}
	return qtyToClose
}
