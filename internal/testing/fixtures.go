// Package testing provides shared fixtures and mocks for package tests.
package testing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
)

// IST is the exchange time zone the fixtures are expressed in.
var IST = time.FixedZone("IST", 19800)

// BaseTime is day 0 of every fixture history: a market open in January 2024.
var BaseTime = time.Date(2024, 1, 1, 9, 15, 0, 0, IST)

// Day returns BaseTime shifted by n whole days.
func Day(n int) time.Time {
	return BaseTime.AddDate(0, 0, n)
}

// CashTrade builds a normalized cash/underlying trade.
func CashTrade(instrument string, side domain.Side, quantity, price string, at time.Time) domain.Trade {
	return domain.Trade{
		Instrument: instrument,
		Side:       side,
		Price:      decimal.RequireFromString(price),
		Quantity:   decimal.RequireFromString(quantity),
		TradedTime: at,
	}
}

// OptionTrade builds a normalized option trade on (instrument, strike, expiry).
func OptionTrade(instrument, strike string, expiry time.Time, side domain.Side, quantity, price string, at time.Time) domain.Trade {
	t := CashTrade(instrument, side, quantity, price, at)
	s := decimal.RequireFromString(strike)
	t.Strike = &s
	t.Expiry = &expiry
	return t
}

// Sequence numbers trades in slice order, as the normalizer does.
func Sequence(trades []domain.Trade) []domain.Trade {
	out := make([]domain.Trade, len(trades))
	for i, t := range trades {
		t.Sequence = i
		out[i] = t
	}
	return out
}

// Entry is a raw trade entry as it appears in an uploaded document.
type Entry map[string]any

// CashEntry builds a raw cash entry with a timestamp in the document's naive format.
func CashEntry(ticker string, position int, quantity, price float64, at time.Time) Entry {
	return Entry{
		"Ticker":      ticker,
		"Position":    position,
		"TradedPrice": price,
		"Quantity":    quantity,
		"TradedTime":  at.Format("2006-01-02T15:04:05"),
		"Strike":      nil,
		"Expiry":      nil,
	}
}

// OptionEntry builds a raw option entry.
func OptionEntry(ticker string, strike float64, expiry string, position int, quantity, price float64, at time.Time) Entry {
	e := CashEntry(ticker, position, quantity, price, at)
	e["Strike"] = strike
	e["Expiry"] = expiry
	return e
}

// Document wraps entries in the data.trades envelope and encodes it.
func Document(entries ...Entry) []byte {
	if entries == nil {
		entries = []Entry{}
	}
	doc := map[string]any{
		"data": map[string]any{
			"trades": entries,
		},
	}
	b, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("encode fixture document: %v", err))
	}
	return b
}

// NewWheelDocument returns a small option wheel history: two monthly puts written
// and bought back, an assignment into the underlying and its later sale.
func NewWheelDocument() []byte {
	return Document(
		OptionEntry("NIFTY", 21500, "2024-01-25", -1, 50, 120, Day(0)),
		OptionEntry("NIFTY", 21500, "2024-01-25", 1, 50, 20, Day(10)),
		OptionEntry("NIFTY", 22000, "2024-02-29", -1, 50, 150, Day(31)),
		OptionEntry("NIFTY", 22000, "2024-02-29", 1, 50, 260, Day(45)),
		CashEntry("NIFTYBEES", 1, 100, 240, Day(46)),
		CashEntry("NIFTYBEES", -1, 60, 250, Day(60)),
		CashEntry("NIFTYBEES", -1, 40, 255, Day(75)),
	)
}
