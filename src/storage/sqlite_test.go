package storage

import (
	"path/filepath"
	"testing"

	"price-recorder/src/config"
	"price-recorder/src/logger"
)

func newTestStore(t *testing.T) *SQLiteTableStore {
	t.Helper()

	cfg := config.Defaults()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteTableStore(cfg, logger.NewLogger("INFO", "test"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// -----------------------------------------------------------------------------

func TestWriteReadRangeRoundTrip(t *testing.T) {
	store := newTestStore(t)

	values := [][]string{
		{"NASDAQ", "AAPL", "2024-10-22 09:00"},
		{"MIL", "ENI", "2024-10-22 09:00"},
	}
	if err := store.WriteRange("Dati", 2, 3, values); err != nil {
		t.Fatalf("WriteRange failed: %v", err)
	}

	got, err := store.ReadRange("Dati", 2, 3, 2, 3)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}
	for i := range values {
		for j := range values[i] {
			if got[i][j] != values[i][j] {
				t.Errorf("cell (%d,%d): got %q, want %q", i, j, got[i][j], values[i][j])
			}
		}
	}
}

func TestReadRangeSparseCellsAreEmpty(t *testing.T) {
	store := newTestStore(t)

	if err := store.WriteRange("Dati", 5, 1, [][]string{{"only"}}); err != nil {
		t.Fatalf("WriteRange failed: %v", err)
	}

	got, err := store.ReadRange("Dati", 4, 1, 3, 2)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}
	if got[1][0] != "only" {
		t.Errorf("written cell lost: %q", got[1][0])
	}
	if got[0][0] != "" || got[0][1] != "" || got[2][1] != "" {
		t.Errorf("missing cells must read as empty strings: %v", got)
	}
}

func TestWriteRangeUpsert(t *testing.T) {
	store := newTestStore(t)

	if err := store.WriteRange("Dati", 2, 1, [][]string{{"old"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.WriteRange("Dati", 2, 1, [][]string{{"new"}}); err != nil {
		t.Fatal(err)
	}

	got, err := store.ReadRange("Dati", 2, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got[0][0] != "new" {
		t.Errorf("rewrite should overwrite the cell: %q", got[0][0])
	}
}

func TestLastRow(t *testing.T) {
	store := newTestStore(t)

	last, err := store.LastRow("Dati")
	if err != nil {
		t.Fatal(err)
	}
	if last != 0 {
		t.Errorf("empty sheet should have last row 0, got %d", last)
	}

	if err := store.WriteRange("Dati", 7, 2, [][]string{{"x"}, {"y"}}); err != nil {
		t.Fatal(err)
	}
	last, err = store.LastRow("Dati")
	if err != nil {
		t.Fatal(err)
	}
	if last != 8 {
		t.Errorf("expected last row 8, got %d", last)
	}
}

func TestEnsureSheetIdempotent(t *testing.T) {
	store := newTestStore(t)

	exists, err := store.HasSheet("Logs")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("fresh store should not have the sheet yet")
	}

	header := []string{"Time", "Type", "Message"}
	if err := store.EnsureSheet("Logs", header); err != nil {
		t.Fatalf("EnsureSheet failed: %v", err)
	}

	// Fill a data row, then ensure again: the sheet must be untouched.
	if err := store.WriteRange("Logs", 2, 1, [][]string{{"t", "INFO", "m"}}); err != nil {
		t.Fatal(err)
	}
	if err := store.EnsureSheet("Logs", header); err != nil {
		t.Fatalf("second EnsureSheet failed: %v", err)
	}

	last, err := store.LastRow("Logs")
	if err != nil {
		t.Fatal(err)
	}
	if last != 2 {
		t.Errorf("EnsureSheet must not touch an existing sheet, last row %d", last)
	}

	got, err := store.ReadRange("Logs", 1, 1, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range header {
		if got[0][i] != want {
			t.Errorf("header col %d: got %q, want %q", i, got[0][i], want)
		}
	}
}
