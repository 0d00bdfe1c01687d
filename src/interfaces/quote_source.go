package interfaces

// -----------------------------------------------------------------------------
// IQuoteSource defines the contract for the read-only quote preview used by
// operators to check what the host price formula would resolve to. It never
// writes anything back to the tables.
// -----------------------------------------------------------------------------

type IQuoteSource interface {

	// -----------------------------------------------------------------------------

	// Name returns the unique identifier of the source.
	Name() string

	// -----------------------------------------------------------------------------

	// Quote resolves a "EXCHANGE:TICKER" pair to the latest market price.
	Quote(exchange, ticker string) (float64, error)
}
