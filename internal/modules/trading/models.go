package trading

import "encoding/json"

// Input field names of a trade entry in the uploaded document.
const (
	FieldTicker      = "Ticker"
	FieldPosition    = "Position"
	FieldTradedPrice = "TradedPrice"
	FieldQuantity    = "Quantity"
	FieldTradedTime  = "TradedTime"
	FieldStrike      = "Strike"
	FieldExpiry      = "Expiry"
)

// RawTrade is one loosely typed entry of data.trades, keyed by field name.
// Values are kept undecoded so the normalizer can tell a missing field from a null one.
type RawTrade map[string]json.RawMessage

// document mirrors the envelope of an AlgoTest .clktrd export.
type document struct {
	Data *struct {
		Trades *[]RawTrade `json:"trades"`
	} `json:"data"`
}
