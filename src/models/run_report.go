package models

// -----------------------------------------------------------------------------
// Run report pushed to the server state and broadcast to WebSocket clients.
// -----------------------------------------------------------------------------

type MRunReport struct {
	Type string `json:"type"` // "INITIAL" or "UPDATE"
	// RunTimestamp is the shared minute-precision timestamp of the run,
	// empty when no run has completed yet.
	RunTimestamp string          `json:"run_timestamp"`
	TradingDay   bool            `json:"trading_day"`
	Stats        MRunStats       `json:"stats"`
	Entries      []MHistoryEntry `json:"entries"`
	// Fatal holds the string form of the run-level error, if any.
	Fatal      string `json:"fatal,omitempty"`
	FinishedAt int64  `json:"finished_at"`
}
