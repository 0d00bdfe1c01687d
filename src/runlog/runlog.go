package runlog

import (
	"fmt"
	"time"

	"price-recorder/src/interfaces"
	"price-recorder/src/logger"
	"price-recorder/src/models"
)

// -----------------------------------------------------------------------------

// RunLogger buffers informational entries and writes them to the log sheet in
// batches; error entries flush immediately. Every entry is also echoed to the
// console logger. None of the methods ever propagate a failure: a logger that
// fails while reporting a failure must not take the run down with it.
type RunLogger struct {
	Console *logger.Logger
	Store   interfaces.ITableStore

	sheet        string
	sheetLogging bool
	threshold    int
	buffer       []models.MLogEntry
	now          func() time.Time
}

// -----------------------------------------------------------------------------

func NewRunLogger(cfg *models.MConfig, store interfaces.ITableStore, console *logger.Logger) *RunLogger {
	return &RunLogger{
		Console:      console,
		Store:        store,
		sheet:        cfg.Tables.LogSheet,
		sheetLogging: cfg.RunLog.SheetLogging,
		threshold:    cfg.RunLog.FlushThreshold,
		now:          time.Now,
	}
}

// -----------------------------------------------------------------------------

// Info records an informational entry and flushes once the buffer reaches the
// configured threshold (sheet logging only).
func (l *RunLogger) Info(message string) {
	l.Console.Info("%s", message)
	l.buffer = append(l.buffer, models.MLogEntry{
		Time:    l.now().Format(models.TimestampLayout),
		Type:    models.LogTypeInfo,
		Message: message,
	})
	if l.sheetLogging && len(l.buffer) >= l.threshold {
		l.Flush()
	}
}

// -----------------------------------------------------------------------------

// Error records an error entry (message plus the error's string form) and
// flushes immediately, regardless of buffer size.
func (l *RunLogger) Error(message string, err error) {
	full := message
	if err != nil {
		full = fmt.Sprintf("%s: %v", message, err)
	}
	l.Console.Error("%s", full)
	l.buffer = append(l.buffer, models.MLogEntry{
		Time:    l.now().Format(models.TimestampLayout),
		Type:    models.LogTypeError,
		Message: full,
	})
	if l.sheetLogging {
		l.Flush()
	}
}

// -----------------------------------------------------------------------------

// Flush appends all buffered entries to the log sheet in one bulk write,
// lazily creating the sheet with its header row. Flush failures are absorbed
// and reported to the console only.
func (l *RunLogger) Flush() {
	if len(l.buffer) == 0 {
		return
	}
	if !l.sheetLogging {
		l.buffer = l.buffer[:0]
		return
	}

	if err := l.flushToSheet(); err != nil {
		l.Console.Error("Failed to flush %d log entries to sheet '%s': %v", len(l.buffer), l.sheet, err)
		return
	}
	l.buffer = l.buffer[:0]
}

// -----------------------------------------------------------------------------

func (l *RunLogger) flushToSheet() error {
	if err := l.Store.EnsureSheet(l.sheet, []string{"Time", "Type", "Message"}); err != nil {
		return err
	}

	last, err := l.Store.LastRow(l.sheet)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(l.buffer))
	for _, e := range l.buffer {
		rows = append(rows, e.Row())
	}
	return l.Store.WriteRange(l.sheet, last+1, 1, rows)
}

// -----------------------------------------------------------------------------

// Buffered returns the number of entries waiting to be flushed.
func (l *RunLogger) Buffered() int {
	return len(l.buffer)
}
