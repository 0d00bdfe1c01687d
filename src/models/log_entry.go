package models

// Log entry types written to the log sheet.
const (
	LogTypeInfo  = "INFO"
	LogTypeError = "ERROR"
)

// MLogEntry is one buffered row for the log sheet ([Time, Type, Message]).
type MLogEntry struct {
	Time    string `json:"time"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Row returns the entry as a log-sheet row.
func (e MLogEntry) Row() []string {
	return []string{e.Time, e.Type, e.Message}
}
