package interfaces

// -----------------------------------------------------------------------------
// INotifier defines the contract for the outbound failure notification
// channel. Sent at most once per run, for the top-level fatal error only.
// -----------------------------------------------------------------------------

type INotifier interface {

	// -----------------------------------------------------------------------------

	// NotifyError delivers the string form of a fatal run error together with
	// the run timestamp.
	NotifyError(runTimestamp string, err error) error
}
