package types

import (
	"time"
)

// Timestamp returns the UTC Unix timestamp in nanoseconds.
func Timestamp() int64 {
	return time.Now().UTC().UnixNano()
}
