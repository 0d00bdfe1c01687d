package logger

import (
	"fmt"
	"log"
	"os"
)

// -----------------------------------------------------------------------------

// Logger provides named console logging. Every component gets its own
// instance so log lines carry the component name.
type Logger struct {
	name    string
	logger  *log.Logger
	debugOn bool
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance. logLevel "DEBUG" enables debug
// output; any other value suppresses it.
func NewLogger(logLevel string, name string) *Logger {
	l := &Logger{
		name:    name,
		logger:  log.New(os.Stdout, "", log.LstdFlags),
		debugOn: logLevel == "DEBUG",
	}
	return l
}

// -----------------------------------------------------------------------------

// Debug logs debug messages when the log level allows them
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debugOn {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] DEBUG: %s", l.name, msg)
}

// -----------------------------------------------------------------------------

// Warning logs warning messages
func (l *Logger) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] WARNING: %s", l.name, msg)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] INFO: %s", l.name, msg)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] ERROR: %s", l.name, msg)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] CRITICAL: %s", l.name, msg)
	os.Exit(1)
}
