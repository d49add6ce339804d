package trading

import (
	"encoding/json"
	"io"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/domain"
)

// ParseDocument decodes a trade document and returns the entries of data.trades
// in document order. A document without a data.trades array is malformed.
func ParseDocument(r io.Reader) ([]RawTrade, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, domain.NewDocumentError("document", "not a valid trade document", err)
	}

	if doc.Data == nil {
		return nil, domain.NewDocumentError("data", "field is missing", nil)
	}
	if doc.Data.Trades == nil {
		return nil, domain.NewDocumentError("data.trades", "field is missing", nil)
	}

	return *doc.Data.Trades, nil
}
