// Package clock provides the current instant to timezone lookups.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type system struct{}

func NewSystem() Clock {
	return system{}
}

// Now is always in UTC.
func (system) Now() time.Time {
	return time.Now().UTC()
}

type fixed time.Time

// NewFixed pins Now to t.
func NewFixed(t time.Time) Clock {
	return fixed(t.UTC())
}

func (f fixed) Now() time.Time {
	return time.Time(f)
}
