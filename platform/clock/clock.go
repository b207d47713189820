// Package clock provides the process-wide wall clock behind an injectable
// seam, so time-dependent computations can be fixed in tests.
// This is part of the platform layer and contains no business logic.
package clock

import "time"

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the real-time clock.
type System struct{}

// Now returns the current instant.
func (System) Now() time.Time { return time.Now() }

// Fixed is a Clock pinned to a single instant, for deterministic tests.
type Fixed struct {
	Instant time.Time
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time { return f.Instant }
