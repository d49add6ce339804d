package trading

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
)

// timeLayouts are tried in order for TradedTime and Expiry values.
// Layouts without an offset are interpreted in the normalizer's location.
// Offsets may be written as +05:30, +0530 or +05.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02-Jan-2006",
	"02 Jan 2006",
}

// fieldError describes why a single field could not be typed.
type fieldError struct {
	message string
	cause   error
}

func (e *fieldError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func invalid(message string, cause error) error {
	return &fieldError{message: message, cause: cause}
}

var errFieldMissing = invalid("field is missing", nil)

// Normalizer validates raw trade entries and returns them typed and time ordered.
type Normalizer struct {
	location *time.Location
	log      zerolog.Logger
}

// NewNormalizer creates a normalizer. Timestamps without an explicit offset are
// read in location; a nil location means UTC.
func NewNormalizer(location *time.Location, log zerolog.Logger) *Normalizer {
	if location == nil {
		location = time.UTC
	}
	return &Normalizer{
		location: location,
		log:      log.With().Str("service", "normalizer").Logger(),
	}
}

// Normalize types every entry and sorts the result ascending by TradedTime.
// The sort is stable: entries with equal timestamps keep their document order,
// which keeps FIFO matching deterministic.
// The first invalid entry aborts normalization with a *domain.MalformedInputError.
func (n *Normalizer) Normalize(raw []RawTrade) ([]domain.Trade, error) {
	trades := make([]domain.Trade, 0, len(raw))
	for i, entry := range raw {
		trade, err := n.normalizeEntry(i, entry)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}

	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].TradedTime.Before(trades[j].TradedTime)
	})

	n.log.Debug().
		Int("trades", len(trades)).
		Msg("Normalized trade document")

	return trades, nil
}

func (n *Normalizer) normalizeEntry(index int, entry RawTrade) (domain.Trade, error) {
	fail := func(field string, err error) error {
		malformed := &domain.MalformedInputError{Index: index, Field: field, Message: err.Error()}
		var fe *fieldError
		if errors.As(err, &fe) {
			malformed.Message = fe.message
			malformed.Err = fe.cause
		}
		return malformed
	}

	trade := domain.Trade{Sequence: index}

	ticker, err := requiredString(entry, FieldTicker)
	if err != nil {
		return trade, fail(FieldTicker, err)
	}
	trade.Instrument = ticker

	position, err := requiredDecimal(entry, FieldPosition)
	if err != nil {
		return trade, fail(FieldPosition, err)
	}
	side, ok := sideOf(position)
	if !ok {
		return trade, fail(FieldPosition, invalid(fmt.Sprintf("must be 1 or -1, got %s", position), nil))
	}
	trade.Side = side

	price, err := requiredDecimal(entry, FieldTradedPrice)
	if err != nil {
		return trade, fail(FieldTradedPrice, err)
	}
	if price.IsNegative() {
		return trade, fail(FieldTradedPrice, invalid(fmt.Sprintf("must not be negative, got %s", price), nil))
	}
	trade.Price = price

	quantity, err := requiredDecimal(entry, FieldQuantity)
	if err != nil {
		return trade, fail(FieldQuantity, err)
	}
	if !quantity.IsPositive() {
		return trade, fail(FieldQuantity, invalid(fmt.Sprintf("must be positive, got %s", quantity), nil))
	}
	trade.Quantity = quantity

	tradedTime, err := n.requiredTime(entry, FieldTradedTime)
	if err != nil {
		return trade, fail(FieldTradedTime, err)
	}
	trade.TradedTime = tradedTime

	strike, err := optionalDecimal(entry, FieldStrike)
	if err != nil {
		return trade, fail(FieldStrike, err)
	}
	trade.Strike = strike

	if strike != nil {
		expiry, err := n.optionalTime(entry, FieldExpiry)
		if err != nil {
			return trade, fail(FieldExpiry, err)
		}
		trade.Expiry = expiry
	}

	return trade, nil
}

// Partition splits trades into option and cash/underlying trades, keeping order.
func Partition(trades []domain.Trade) (options, cash []domain.Trade) {
	options = make([]domain.Trade, 0)
	cash = make([]domain.Trade, 0)
	for _, t := range trades {
		if t.IsOption() {
			options = append(options, t)
		} else {
			cash = append(cash, t)
		}
	}
	return options, cash
}

// present returns the raw value of a field, treating null and "" as absent.
func present(entry RawTrade, field string) (json.RawMessage, bool) {
	raw, ok := entry[field]
	if !ok {
		return nil, false
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		return nil, false
	}
	return trimmed, true
}

func requiredString(entry RawTrade, field string) (string, error) {
	raw, ok := present(entry, field)
	if !ok {
		return "", errFieldMissing
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", invalid("must be a string", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errFieldMissing
	}
	return s, nil
}

func requiredDecimal(entry RawTrade, field string) (decimal.Decimal, error) {
	raw, ok := present(entry, field)
	if !ok {
		return decimal.Decimal{}, errFieldMissing
	}
	return parseDecimal(raw)
}

func optionalDecimal(entry RawTrade, field string) (*decimal.Decimal, error) {
	raw, ok := present(entry, field)
	if !ok {
		return nil, nil
	}
	d, err := parseDecimal(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseDecimal accepts JSON numbers and numeric strings; thousands separators are ignored.
func parseDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Decimal{}, invalid("must be a number", err)
		}
		text = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, invalid("must be a number", err)
	}
	return d, nil
}

func sideOf(position decimal.Decimal) (domain.Side, bool) {
	if !position.IsInteger() {
		return 0, false
	}
	return domain.ParseSide(position.IntPart())
}

func (n *Normalizer) requiredTime(entry RawTrade, field string) (time.Time, error) {
	raw, ok := present(entry, field)
	if !ok {
		return time.Time{}, errFieldMissing
	}
	return n.parseTime(raw)
}

func (n *Normalizer) optionalTime(entry RawTrade, field string) (*time.Time, error) {
	raw, ok := present(entry, field)
	if !ok {
		return nil, nil
	}
	t, err := n.parseTime(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (n *Normalizer) parseTime(raw json.RawMessage) (time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, invalid("must be a timestamp string", err)
	}
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, n.location); err == nil {
			// Calendar months and days are taken in the configured zone,
			// whatever offset the export wrote.
			return t.In(n.location), nil
		}
	}
	return time.Time{}, invalid(fmt.Sprintf("unrecognized timestamp %q", s), nil)
}
