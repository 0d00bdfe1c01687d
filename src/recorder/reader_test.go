package recorder

import (
	"errors"
	"testing"
)

func TestReadStockListColumnWindow(t *testing.T) {
	cfg := testConfig()
	store := newFakeStore()
	store.lastRows["Recup"] = 3
	store.rows["Recup"] = [][]string{
		{"AAPL", "x", "x", "x", "x", "x", "NASDAQ"},
		{" ENI ", "x", "x", "x", "x", "x", " MIL"},
	}

	records := ReadStockList(store, cfg.MConfig, testRunLogger(cfg))

	if len(store.readCalls) != 1 {
		t.Fatalf("expected 1 range read, got %d", len(store.readCalls))
	}
	call := store.readCalls[0]
	if call.startRow != 2 || call.startCol != 3 || call.numRows != 2 || call.numCols != 7 {
		t.Errorf("range read mismatch: %+v", call)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Ticker != "AAPL" || records[0].Exchange != "NASDAQ" {
		t.Errorf("record 0 mismatch: %+v", records[0])
	}
	// Whitespace is trimmed at read time.
	if records[1].Ticker != "ENI" || records[1].Exchange != "MIL" {
		t.Errorf("record 1 should be trimmed: %+v", records[1])
	}
}

// The column window works regardless of which configured column comes first.
func TestReadStockListReversedColumns(t *testing.T) {
	cfg := testConfig()
	cfg.Tables.SourceTickerCol = 9
	cfg.Tables.SourceExchangeCol = 3

	store := newFakeStore()
	store.lastRows["Recup"] = 2
	store.rows["Recup"] = [][]string{
		{"NASDAQ", "x", "x", "x", "x", "x", "AAPL"},
	}

	records := ReadStockList(store, cfg.MConfig, testRunLogger(cfg))

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Ticker != "AAPL" || records[0].Exchange != "NASDAQ" {
		t.Errorf("record mismatch: %+v", records[0])
	}
}

func TestReadStockListHeaderOnly(t *testing.T) {
	cfg := testConfig()
	store := newFakeStore()
	store.lastRows["Recup"] = 1

	records := ReadStockList(store, cfg.MConfig, testRunLogger(cfg))

	if len(records) != 0 {
		t.Errorf("header-only sheet should yield no records, got %d", len(records))
	}
	if len(store.readCalls) != 0 {
		t.Errorf("no range read expected for a header-only sheet")
	}
}

// A failed read degrades to an empty list, never an error.
func TestReadStockListReadFailure(t *testing.T) {
	cfg := testConfig()
	store := newFakeStore()
	store.lastRows["Recup"] = 5
	store.readErr = errors.New("connection reset")

	records := ReadStockList(store, cfg.MConfig, testRunLogger(cfg))

	if records == nil || len(records) != 0 {
		t.Errorf("expected empty slice on read failure, got %v", records)
	}
}
