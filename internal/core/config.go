// Package core holds the small shared vocabulary of the simulation: runtime
// settings, player input frames and error categories. It has no external
// dependencies.
package core

// RuntimeConfig contains settings owned by the caller that drives ticks.
type RuntimeConfig struct {
	TickRate  int   // Simulation ticks per second (default 60)
	Seed      int64 // RNG seed for deterministic gameplay
	MaxFrames int   // Upper bound on frames for headless runs, 0 = unbounded
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate:  60,
		Seed:      0, // 0 means use current time in platform layer
		MaxFrames: 60 * 60 * 10,
	}
}
