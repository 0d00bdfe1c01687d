package storage

import (
	"database/sql"
	"fmt"

	"price-recorder/src/logger"
	"price-recorder/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// SQLiteTableStore keeps every sheet as a sparse cell grid in a single
// sheet_cells table, which preserves the 1-based row/column range semantics
// of the host spreadsheet environment.
type SQLiteTableStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteTableStore(cfg *models.MConfig, log *logger.Logger) (*SQLiteTableStore, error) {
	return &SQLiteTableStore{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteTableStore) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteTableStore) createTables() error {
	// Unlike transient observer data, sheet contents are the system of
	// record, so the schema is created additively, never dropped.
	query := `
		CREATE TABLE IF NOT EXISTS sheet_cells (
			sheet TEXT NOT NULL,
			row INTEGER NOT NULL,
			col INTEGER NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (sheet, row, col)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create sheet_cells: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteTableStore) HasSheet(sheet string) (bool, error) {
	var n int
	err := d.DB.QueryRow(`SELECT COUNT(1) FROM sheet_cells WHERE sheet = ? LIMIT 1`, sheet).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteTableStore) EnsureSheet(sheet string, header []string) error {
	exists, err := d.HasSheet(sheet)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return d.WriteRange(sheet, 1, 1, [][]string{header})
}

// -----------------------------------------------------------------------------

func (d *SQLiteTableStore) ReadRange(sheet string, startRow, startCol, numRows, numCols int) ([][]string, error) {
	if numRows <= 0 || numCols <= 0 {
		return [][]string{}, nil
	}

	rows, err := d.DB.Query(`
		SELECT row, col, value FROM sheet_cells
		WHERE sheet = ? AND row BETWEEN ? AND ? AND col BETWEEN ? AND ?
	`, sheet, startRow, startRow+numRows-1, startCol, startCol+numCols-1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Missing cells stay empty strings, matching a sparse sheet range read.
	grid := make([][]string, numRows)
	for i := range grid {
		grid[i] = make([]string, numCols)
	}

	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, err
		}
		grid[r-startRow][c-startCol] = v
	}

	return grid, rows.Err()
}

// -----------------------------------------------------------------------------

// WriteRange writes the whole block in one transaction with a single
// prepared statement.
func (d *SQLiteTableStore) WriteRange(sheet string, startRow, startCol int, values [][]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO sheet_cells (sheet, row, col, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (sheet, row, col) DO UPDATE SET value = excluded.value
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rowVals := range values {
		for j, v := range rowVals {
			if _, err := stmt.Exec(sheet, startRow+i, startCol+j, v); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteTableStore) LastRow(sheet string) (int, error) {
	var last int
	err := d.DB.QueryRow(`SELECT COALESCE(MAX(row), 0) FROM sheet_cells WHERE sheet = ?`, sheet).Scan(&last)
	if err != nil {
		return 0, err
	}
	return last, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteTableStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
