package helpers

import (
	"fmt"
	"time"

	"price-recorder/src/logger"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type RecorderError struct {
	Message string
	Cause   error
}

func (e *RecorderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *RecorderError) Unwrap() error {
	return e.Cause
}

// Distinct error types for the failure taxonomy: configuration and scheduler
// failures propagate to the caller, database and notification failures stay
// inside the run.
type ConfigurationError struct{ RecorderError }
type DatabaseError struct{ RecorderError }
type SchedulerError struct{ RecorderError }
type NotifyError struct{ RecorderError }

// -----------------------------------------------------------------------------

// NewConfigurationError wraps err as a configuration failure.
func NewConfigurationError(message string, err error) *ConfigurationError {
	return &ConfigurationError{RecorderError{Message: message, Cause: err}}
}

// NewDatabaseError wraps err as a database failure.
func NewDatabaseError(message string, err error) *DatabaseError {
	return &DatabaseError{RecorderError{Message: message, Cause: err}}
}

// NewNotifyError wraps err as a notification failure.
func NewNotifyError(message string, err error) *NotifyError {
	return &NotifyError{RecorderError{Message: message, Cause: err}}
}

// NewSchedulerError wraps err as a scheduler-setup failure.
func NewSchedulerError(message string, err error) *SchedulerError {
	return &SchedulerError{RecorderError{Message: message, Cause: err}}
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts to execute the operation up to maxRetries times
// with exponential backoff.
func RetryWithBackoff(operation string, maxRetries int, baseDelay time.Duration, log *logger.Logger, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		log.Warning("Attempt %d/%d failed for %s: %v. Retrying in %v", attempt+1, maxRetries, operation, err, delay)
		time.Sleep(delay)
	}

	return &RecorderError{Message: fmt.Sprintf("%s failed after %d attempts", operation, maxRetries), Cause: lastErr}
}
