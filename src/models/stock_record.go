package models

// MStockRecord is one row of the source sheet: a ticker and the exchange it
// trades on. Both are free-form strings, trimmed of surrounding whitespace at
// read time but otherwise unvalidated.
type MStockRecord struct {
	Ticker   string `json:"ticker"`
	Exchange string `json:"exchange"`
}
