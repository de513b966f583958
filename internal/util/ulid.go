package util

import "github.com/oklog/ulid/v2"

// NewID returns a new ULID string. ulid.Make draws from a process-wide
// monotonic source, so ids sort by creation time and are safe across goroutines.
func NewID() string {
	return ulid.Make().String()
}
