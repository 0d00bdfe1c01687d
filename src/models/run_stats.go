package models

// MRunStats accumulates per-invocation counters. Created fresh for every run,
// never persisted, reported only through the run log and the API.
// Invariant: Total == Updated + Duplicates + Skipped + Errors.
type MRunStats struct {
	Total      int `json:"total"`
	Updated    int `json:"updated"`
	Duplicates int `json:"duplicates"`
	Skipped    int `json:"skipped"`
	Errors     int `json:"errors"`
}
