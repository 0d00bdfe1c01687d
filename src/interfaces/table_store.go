package interfaces

// -----------------------------------------------------------------------------
// ITableStore defines the contract for the tabular storage backend. Sheets are
// addressed like the host spreadsheet environment: 1-based rows and columns,
// row 1 is the header row.
// -----------------------------------------------------------------------------

type ITableStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the backing schema.
	Initialize() error

	// -----------------------------------------------------------------------------

	// HasSheet reports whether the named sheet exists (has any cells).
	HasSheet(sheet string) (bool, error)

	// -----------------------------------------------------------------------------

	// EnsureSheet creates the named sheet with the given header row when it
	// does not exist yet.
	EnsureSheet(sheet string, header []string) error

	// -----------------------------------------------------------------------------

	// ReadRange returns numRows x numCols cell values starting at (startRow,
	// startCol). Missing cells come back as empty strings.
	ReadRange(sheet string, startRow, startCol, numRows, numCols int) ([][]string, error)

	// -----------------------------------------------------------------------------

	// WriteRange writes the block of values starting at (startRow, startCol)
	// as one bulk operation.
	WriteRange(sheet string, startRow, startCol int, values [][]string) error

	// -----------------------------------------------------------------------------

	// LastRow returns the highest populated row number of the sheet, 0 when
	// the sheet is empty.
	LastRow(sheet string) (int, error)

	// -----------------------------------------------------------------------------

	// Close the storage connection.
	Close() error
}
