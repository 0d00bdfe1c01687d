package interfaces

// -----------------------------------------------------------------------------
// IScheduler defines the contract for registering fixed-time daily triggers.
// -----------------------------------------------------------------------------

type IScheduler interface {

	// -----------------------------------------------------------------------------

	// AddDaily registers fn to fire every day at the given "HH:MM" wall-clock
	// time in the scheduler's location.
	AddDaily(at string, fn func()) error

	// -----------------------------------------------------------------------------

	// RemoveAll deletes every registered trigger.
	RemoveAll()

	// -----------------------------------------------------------------------------

	// Count returns the number of registered triggers.
	Count() int

	// -----------------------------------------------------------------------------

	// Start begins firing triggers; Stop halts them.
	Start()
	Stop()
}
