package recorder

import (
	"errors"
	"testing"

	"price-recorder/src/models"
)

func TestWriteBatchTwoBulkWrites(t *testing.T) {
	cfg := testConfig()
	store := newFakeStore()
	store.lastRows["Dati"] = 10

	entries := []models.MHistoryEntry{
		{Exchange: "NASDAQ", Ticker: "AAPL", Timestamp: runTs, PriceFormula: `=GOOGLEFINANCE("NASDAQ:AAPL")`},
		{Exchange: "MIL", Ticker: "ENI", Timestamp: runTs, PriceFormula: `=GOOGLEFINANCE("MIL:ENI")`},
		{Exchange: "NYSE", Ticker: "KO", Timestamp: runTs, PriceFormula: `=GOOGLEFINANCE("NYSE:KO")`},
	}

	if err := WriteBatch(entries, store, cfg.MConfig); err != nil {
		t.Fatalf("WriteBatch failed: %v", err)
	}

	if len(store.writes) != 2 {
		t.Fatalf("expected exactly 2 bulk writes, got %d", len(store.writes))
	}

	formulas := store.writes[0]
	if formulas.startRow != 11 || formulas.startCol != 1 {
		t.Errorf("formula write should start at (11,1): got (%d,%d)", formulas.startRow, formulas.startCol)
	}
	if len(formulas.values) != 3 || len(formulas.values[0]) != 1 {
		t.Errorf("formula write should be a 3x1 block: %v", formulas.values)
	}
	if formulas.values[1][0] != `=GOOGLEFINANCE("MIL:ENI")` {
		t.Errorf("formula row mismatch: %v", formulas.values[1])
	}

	block := store.writes[1]
	if block.startRow != 11 || block.startCol != 3 {
		t.Errorf("history block should start at (11,3): got (%d,%d)", block.startRow, block.startCol)
	}
	if len(block.values) != 3 || len(block.values[0]) != 3 {
		t.Errorf("history block should be 3x3: %v", block.values)
	}
	want := []string{"NYSE", "KO", runTs}
	for i, v := range want {
		if block.values[2][i] != v {
			t.Errorf("block row 2 col %d: got %s, want %s", i, block.values[2][i], v)
		}
	}
}

func TestWriteBatchEmpty(t *testing.T) {
	cfg := testConfig()
	store := newFakeStore()

	if err := WriteBatch(nil, store, cfg.MConfig); err != nil {
		t.Fatalf("empty batch should be a no-op: %v", err)
	}
	if len(store.writes) != 0 {
		t.Errorf("empty batch must not touch the sheet, got %d writes", len(store.writes))
	}
}

func TestWriteBatchLastRowFailure(t *testing.T) {
	cfg := testConfig()
	store := newFakeStore()
	store.lastRowErr = errors.New("lock timeout")

	entries := []models.MHistoryEntry{{Exchange: "NYSE", Ticker: "KO", Timestamp: runTs}}

	if err := WriteBatch(entries, store, cfg.MConfig); err == nil {
		t.Fatal("expected an error when the first empty row cannot be located")
	}
}
