package v3

// Config controls optional decode behavior.
type Config struct {
	// Debug retains the raw input bytes on the decoded Replay.
	Debug bool

	_ struct{}
}
