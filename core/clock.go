package core

import "time"

// Clock supplies the current time to the Time parameter's default-value
// rule. Production code uses RealClock; tests pin a FixedClock so the
// documented "implicit default for Time" design note (spec §9) is
// deterministic rather than reading the wall clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system wall clock.
type RealClock struct{}

// Now returns time.Now().
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.At }
