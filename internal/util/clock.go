// internal/util/clock.go
// Time abstraction so "now"-relative metrics stay testable.

package util

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant. Tests inject it so the
// overdue-preventive KPI and report timestamps are deterministic.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }
