package recorder

import (
	"price-recorder/src/helpers"
	"price-recorder/src/interfaces"
	"price-recorder/src/models"
)

// -----------------------------------------------------------------------------

// WriteBatch appends the planned entries to the target sheet starting at the
// first empty row, as exactly two bulk range writes: the formula column, then
// the 3-column exchange/ticker/timestamp block at the same start row. The two
// writes carry no transactional guarantee between them.
func WriteBatch(entries []models.MHistoryEntry, store interfaces.ITableStore, cfg *models.MConfig) error {
	if len(entries) == 0 {
		return nil
	}

	last, err := store.LastRow(cfg.Tables.TargetSheet)
	if err != nil {
		return helpers.NewDatabaseError("failed to locate first empty target row", err)
	}
	startRow := last + 1

	formulas := make([][]string, len(entries))
	block := make([][]string, len(entries))
	for i, e := range entries {
		formulas[i] = []string{e.PriceFormula}
		block[i] = []string{e.Exchange, e.Ticker, e.Timestamp}
	}

	if err := store.WriteRange(cfg.Tables.TargetSheet, startRow, cfg.Tables.TargetFormulaCol, formulas); err != nil {
		return helpers.NewDatabaseError("failed to write formula column", err)
	}
	if err := store.WriteRange(cfg.Tables.TargetSheet, startRow, cfg.Tables.TargetExchangeCol, block); err != nil {
		return helpers.NewDatabaseError("failed to write history block", err)
	}
	return nil
}
