package recorder

import (
	"strings"

	"price-recorder/src/interfaces"
	"price-recorder/src/models"
	"price-recorder/src/runlog"
)

// -----------------------------------------------------------------------------

// ReadStockList loads ticker/exchange pairs from the source sheet, rows 2..N.
// The range read spans the minimal column window covering both configured
// columns, whichever order they appear in; each row is mapped back through
// the column offset. Any read failure is logged and degrades to an empty
// list: the caller treats "nothing to read" and "read failed" the same way.
func ReadStockList(store interfaces.ITableStore, cfg *models.MConfig, log *runlog.RunLogger) []models.MStockRecord {
	tickerCol := cfg.Tables.SourceTickerCol
	exchangeCol := cfg.Tables.SourceExchangeCol

	startCol := tickerCol
	if exchangeCol < startCol {
		startCol = exchangeCol
	}
	endCol := tickerCol
	if exchangeCol > endCol {
		endCol = exchangeCol
	}
	width := endCol - startCol + 1

	last, err := store.LastRow(cfg.Tables.SourceSheet)
	if err != nil {
		log.Error("Failed to read source sheet size", err)
		return []models.MStockRecord{}
	}
	if last <= 1 {
		// Header only.
		return []models.MStockRecord{}
	}

	rows, err := store.ReadRange(cfg.Tables.SourceSheet, 2, startCol, last-1, width)
	if err != nil {
		log.Error("Failed to read stock list", err)
		return []models.MStockRecord{}
	}

	records := make([]models.MStockRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.MStockRecord{
			Ticker:   strings.TrimSpace(row[tickerCol-startCol]),
			Exchange: strings.TrimSpace(row[exchangeCol-startCol]),
		})
	}
	return records
}
