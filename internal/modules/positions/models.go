package positions

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpenLot is the part of an opening trade still waiting to be closed.
type OpenLot struct {
	EntryTime  time.Time       `json:"entry_time"`
	Instrument string          `json:"instrument"`
	Remaining  decimal.Decimal `json:"remaining_quantity"`
}

// ClosedPosition is one round trip: closing quantity matched against one open lot.
// A close that spans several lots produces one ClosedPosition per lot.
type ClosedPosition struct {
	EntryTime     time.Time       `json:"entry_time"`
	ExitTime      time.Time       `json:"exit_time"`
	Instrument    string          `json:"instrument"`
	Quantity      decimal.Decimal `json:"quantity"`
	HoldingDays   int             `json:"holding_days"`
	HoldingMonths float64         `json:"holding_months"`
}

// UnmatchedClose is closing quantity that found no open lot, e.g. because the
// opening trade predates the uploaded history. It is informational only.
type UnmatchedClose struct {
	Time       time.Time       `json:"time"`
	Instrument string          `json:"instrument"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// Result holds everything one matching pass produced.
type Result struct {
	Closed    []ClosedPosition `json:"closed"`
	Open      []OpenLot        `json:"open"`
	Unmatched []UnmatchedClose `json:"unmatched"`
}
