package literature

// Options are options for the game
type Options struct {
	// RestartRunningGame makes StartGame deal a new game over a running one
	// instead of returning ErrGameAlreadyRunning
	RestartRunningGame bool

	// EnforceTurn rejects asks from players who are not in turn
	EnforceTurn bool
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		RestartRunningGame: true,
		EnforceTurn:        false,
	}
}
