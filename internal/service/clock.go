package service

import "time"

// Clock supplies the current instant. Timer math reads "now" exactly once
// per operation through this interface, which also makes the lifecycle
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
