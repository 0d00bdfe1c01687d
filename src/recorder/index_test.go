package recorder

import (
	"testing"
)

func TestReadExistingWindow(t *testing.T) {
	cfg := testConfig()
	store := newFakeStore()
	store.lastRows["Dati"] = 3
	store.rows["Dati"] = [][]string{
		{"NASDAQ", "AAPL", "2024-10-22 09:00", "231.4"},
		{"MIL", "ENI", "2024-10-22 09:00", ""},
	}

	rows := ReadExisting(store, cfg.MConfig, testRunLogger(cfg))

	if len(store.readCalls) != 1 {
		t.Fatalf("expected 1 range read, got %d", len(store.readCalls))
	}
	call := store.readCalls[0]
	if call.sheet != "Dati" || call.startRow != 2 || call.startCol != 3 || call.numRows != 2 || call.numCols != 4 {
		t.Errorf("range read mismatch: %+v", call)
	}
	if len(rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(rows))
	}
}

func TestReadExistingHeaderOnly(t *testing.T) {
	cfg := testConfig()
	store := newFakeStore()
	store.lastRows["Dati"] = 1

	rows := ReadExisting(store, cfg.MConfig, testRunLogger(cfg))

	if len(rows) != 0 {
		t.Errorf("header-only sheet should yield no rows, got %d", len(rows))
	}
}

func TestBuildExistingKeySet(t *testing.T) {
	rows := [][]string{
		{"NASDAQ", "AAPL", "2024-10-22 09:00", "231.4"},
		{"MIL", "ENI", "2024-10-22 12:00"},
		{"", "", "", ""}, // blank filler row
		{"NASDAQ"},       // too short to key
	}

	set := BuildExistingKeySet(rows)

	if len(set) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(set))
	}
	if _, ok := set["NASDAQ:AAPL:2024-10-22 09:00"]; !ok {
		t.Error("missing key for AAPL row")
	}
	if _, ok := set["MIL:ENI:2024-10-22 12:00"]; !ok {
		t.Error("missing key for ENI row")
	}
}
