package recorder

import (
	"price-recorder/src/interfaces"
	"price-recorder/src/models"
	"price-recorder/src/runlog"
)

// -----------------------------------------------------------------------------

// ReadExisting loads prior history rows from the target sheet: a 4-column
// window starting at the exchange column (exchange, ticker, timestamp,
// priceResult). Returns an empty slice when the sheet holds only its header,
// and degrades to empty on any read failure.
func ReadExisting(store interfaces.ITableStore, cfg *models.MConfig, log *runlog.RunLogger) [][]string {
	last, err := store.LastRow(cfg.Tables.TargetSheet)
	if err != nil {
		log.Error("Failed to read target sheet size", err)
		return [][]string{}
	}
	if last <= 1 {
		return [][]string{}
	}

	rows, err := store.ReadRange(cfg.Tables.TargetSheet, 2, cfg.Tables.TargetExchangeCol, last-1, 4)
	if err != nil {
		log.Error("Failed to read existing history entries", err)
		return [][]string{}
	}
	return rows
}

// -----------------------------------------------------------------------------

// BuildExistingKeySet derives the duplicate-detection set from the first
// three columns of each existing row. The set is a pre-run snapshot: entries
// planned during the current run are never added to it.
func BuildExistingKeySet(rows [][]string) map[string]struct{} {
	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		if row[0] == "" && row[1] == "" && row[2] == "" {
			continue
		}
		set[models.BuildExistingKey(row[0], row[1], row[2])] = struct{}{}
	}
	return set
}
