package models

// TimestampLayout is the minute-precision layout shared by every entry
// written in a single run.
const TimestampLayout = "2006-01-02 15:04"

// -----------------------------------------------------------------------------

// MHistoryEntry is one planned row of the target sheet. Immutable once
// written; removed only by external sheet edits.
type MHistoryEntry struct {
	Exchange     string `json:"exchange"`
	Ticker       string `json:"ticker"`
	Timestamp    string `json:"timestamp"`
	PriceFormula string `json:"price_formula"`
}

// -----------------------------------------------------------------------------

// ExistingKey identifies a history row by exchange, ticker and
// minute-precision timestamp.
func (e MHistoryEntry) ExistingKey() string {
	return BuildExistingKey(e.Exchange, e.Ticker, e.Timestamp)
}

// BuildExistingKey joins the three key columns with ":".
func BuildExistingKey(exchange, ticker, timestamp string) string {
	return exchange + ":" + ticker + ":" + timestamp
}
