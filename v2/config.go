package v2

// Config holds v2 reader configuration.
type Config struct {
	// Debug tells if the raw replay bytes are retained on the returned
	// Replay for inspection.
	Debug bool

	_ struct{} // To prevent unkeyed literals
}
