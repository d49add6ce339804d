// Package domain provides the trade model shared by every analysis stage.
package domain

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerMonth is the average month length used to express holding periods
// and trading duration in months.
const DaysPerMonth = 30.44

// DaysPerYear is the year length used to express trading duration in years.
const DaysPerYear = 365

// ExpiryLayout is the canonical rendering of an option expiry date.
const ExpiryLayout = "2006-01-02"

// Side is the direction of a fill. The sign convention is fixed system-wide:
// +1 opens (buys), -1 closes (sells).
type Side int

const (
	SideOpen  Side = 1
	SideClose Side = -1
)

// ParseSide converts a raw Position value into a Side.
func ParseSide(v int64) (Side, bool) {
	switch v {
	case 1:
		return SideOpen, true
	case -1:
		return SideClose, true
	}
	return 0, false
}

// Sign returns the side as a decimal multiplier.
func (s Side) Sign() decimal.Decimal {
	return decimal.NewFromInt(int64(s))
}

func (s Side) String() string {
	switch s {
	case SideOpen:
		return "OPEN"
	case SideClose:
		return "CLOSE"
	}
	return "UNKNOWN"
}

// Trade is a validated, typed fill. Trades are never mutated after normalization.
type Trade struct {
	TradedTime time.Time        `json:"traded_time"`
	Strike     *decimal.Decimal `json:"strike,omitempty"`
	Expiry     *time.Time       `json:"expiry,omitempty"`
	Instrument string           `json:"instrument"`
	Price      decimal.Decimal  `json:"price"`
	Quantity   decimal.Decimal  `json:"quantity"`
	Side       Side             `json:"side"`
	Sequence   int              `json:"sequence"` // index in the uploaded document
}

// IsOption reports whether the trade carries option contract attributes.
// The strike alone decides the class.
func (t Trade) IsOption() bool {
	return t.Strike != nil
}

// Cashflow is the signed cash impact of the fill: -side * price * quantity.
// Opening is an outflow, closing an inflow.
func (t Trade) Cashflow() decimal.Decimal {
	return t.Side.Sign().Neg().Mul(t.Price).Mul(t.Quantity)
}

// Contract returns the option contract identity of the trade.
func (t Trade) Contract() ContractKey {
	return NewContractKey(t.Instrument, t.Strike, t.Expiry)
}

// ContractKey identifies an option contract by (instrument, strike, expiry).
// Fields are canonical strings so the key is comparable and usable as a map key.
type ContractKey struct {
	Instrument string `json:"instrument"`
	Strike     string `json:"strike"`
	Expiry     string `json:"expiry"`
}

// NewContractKey builds a key; a nil strike or expiry renders as an empty string.
func NewContractKey(instrument string, strike *decimal.Decimal, expiry *time.Time) ContractKey {
	key := ContractKey{Instrument: instrument}
	if strike != nil {
		key.Strike = strike.String()
	}
	if expiry != nil {
		key.Expiry = expiry.Format(ExpiryLayout)
	}
	return key
}

// Compare orders keys by instrument, then numeric strike, then expiry.
func (k ContractKey) Compare(o ContractKey) int {
	if c := strings.Compare(k.Instrument, o.Instrument); c != 0 {
		return c
	}
	if c := compareStrike(k.Strike, o.Strike); c != 0 {
		return c
	}
	return strings.Compare(k.Expiry, o.Expiry)
}

func compareStrike(a, b string) int {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return da.Cmp(db)
}

// HoldingDays is the number of whole days between entry and exit, floored.
func HoldingDays(entry, exit time.Time) int {
	const day = 24 * time.Hour
	d := exit.Sub(entry)
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

// HoldingMonths expresses a day count in average months, rounded to 2 decimals.
func HoldingMonths(days int) float64 {
	return Round2(float64(days) / DaysPerMonth)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
