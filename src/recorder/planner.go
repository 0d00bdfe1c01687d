package recorder

import (
	"fmt"

	"price-recorder/src/models"
	"price-recorder/src/runlog"
)

// -----------------------------------------------------------------------------

// Plan walks the stock records in input order and decides, per record, to
// skip (unsupported exchange), skip (duplicate of a pre-run entry at the run
// timestamp), or enqueue a new history entry sharing the run timestamp.
//
// Duplicate detection checks ONLY the pre-run snapshot: two identical records
// in the same input batch are both enqueued. Downstream consumers rely on the
// formula being re-evaluated per written row, so this is deliberate and
// covered by an explicit test.
//
// Stats.Updated is left at zero; the caller sets it to len(batch) after Plan
// returns.
func Plan(records []models.MStockRecord, existing map[string]struct{}, runTimestamp string, cfg *models.MConfig, log *runlog.RunLogger) ([]models.MHistoryEntry, models.MRunStats) {
	supported := cfg.SupportedExchanges()

	var batch []models.MHistoryEntry
	var stats models.MRunStats

	for _, rec := range records {
		stats.Total++
		planOne(rec, supported, existing, runTimestamp, cfg, log, &batch, &stats)
	}

	return batch, stats
}

// -----------------------------------------------------------------------------

// planOne isolates a single record: a failure while processing one row is
// counted and logged, never allowed to abort the rest of the batch.
func planOne(rec models.MStockRecord, supported map[string]struct{}, existing map[string]struct{}, runTimestamp string, cfg *models.MConfig, log *runlog.RunLogger, batch *[]models.MHistoryEntry, stats *models.MRunStats) {
	defer func() {
		if r := recover(); r != nil {
			stats.Errors++
			log.Error(fmt.Sprintf("Failed to process ticker %s", rec.Ticker), fmt.Errorf("%v", r))
		}
	}()

	// Case-sensitive exact match against the flattened exchange lists.
	if _, ok := supported[rec.Exchange]; !ok {
		stats.Skipped++
		log.Info(fmt.Sprintf("Skipping %s: unsupported exchange '%s'", rec.Ticker, rec.Exchange))
		return
	}

	key := models.BuildExistingKey(rec.Exchange, rec.Ticker, runTimestamp)
	if _, dup := existing[key]; dup {
		stats.Duplicates++
		return
	}

	symbol := rec.Exchange + ":" + rec.Ticker
	*batch = append(*batch, models.MHistoryEntry{
		Exchange:     rec.Exchange,
		Ticker:       rec.Ticker,
		Timestamp:    runTimestamp,
		PriceFormula: fmt.Sprintf(cfg.Tables.FormulaTemplate, symbol),
	})
}
