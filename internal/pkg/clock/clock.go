// Package clock abstracts time for code that stamps or schedules.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

// New returns a real clock.
func New() Clock {
	return Real{}
}

// Fixed always reports the same instant. Tests use it to make timestamps
// deterministic.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time {
	return f.T
}
