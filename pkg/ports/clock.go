package ports

import "time"

// Clock is the time source used for every delay and debounce.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock, which carries a monotonic reading.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}
