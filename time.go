package depot

import "time"

// Time is the clock state the engine publishes under the "time" resource. Timestamps are
// measured from the moment the FrameClock started.
type Time struct {
	// Delta is the clamped time since the previous tick
	Delta   time.Duration
	Current time.Duration
	// FixedDelta is the simulated step of the FixedUpdate phase
	FixedDelta time.Duration
}
