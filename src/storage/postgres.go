package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"price-recorder/src/logger"
	"price-recorder/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// PostgresTableStore is the Postgres variant of the cell-grid store. Each
// deployment gets its own schema named after the executable.
type PostgresTableStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresTableStore(cfg *models.MConfig, log *logger.Logger) (*PostgresTableStore, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable name: %w", err)
	}
	name := filepath.Base(exe)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	return &PostgresTableStore{
		Config: cfg,
		Schema: name,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresTableStore) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."sheet_cells" (
			sheet TEXT NOT NULL,
			"row" INTEGER NOT NULL,
			col INTEGER NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (sheet, "row", col)
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create sheet_cells: %w", err)
	}

	d.Logger.Info("PostgresTableStore initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresTableStore) HasSheet(sheet string) (bool, error) {
	var n int
	query := fmt.Sprintf(`SELECT COUNT(1) FROM "%s"."sheet_cells" WHERE sheet = $1`, d.Schema)
	if err := d.DB.QueryRow(query, sheet).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresTableStore) EnsureSheet(sheet string, header []string) error {
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

func (d *PostgresTableStore) ReadRange(sheet string, startRow, startCol, numRows, numCols int) ([][]string, error) {
	if numRows <= 0 || numCols <= 0 {
		return [][]string{}, nil
	}

	query := fmt.Sprintf(`
		SELECT "row", col, value FROM "%s"."sheet_cells"
		WHERE sheet = $1 AND "row" BETWEEN $2 AND $3 AND col BETWEEN $4 AND $5
	`, d.Schema)
	rows, err := d.DB.Query(query, sheet, startRow, startRow+numRows-1, startCol, startCol+numCols-1)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func (d *PostgresTableStore) WriteRange(sheet string, startRow, startCol int, values [][]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO "%s"."sheet_cells" (sheet, "row", col, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sheet, "row", col) DO UPDATE SET value = EXCLUDED.value
	`, d.Schema)
	stmt, err := tx.Prepare(query)
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

func (d *PostgresTableStore) LastRow(sheet string) (int, error) {
	var last int
	query := fmt.Sprintf(`SELECT COALESCE(MAX("row"), 0) FROM "%s"."sheet_cells" WHERE sheet = $1`, d.Schema)
	if err := d.DB.QueryRow(query, sheet).Scan(&last); err != nil {
		return 0, err
	}
	return last, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresTableStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
