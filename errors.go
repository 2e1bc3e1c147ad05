package rotatingbuffer

import (
	"errors"
	"fmt"
)

// Precondition violations are sizing or programmer errors, never data
// errors. Continuing past one would overwrite live content or interleave
// stale and fresh data, so every violation panics. The panic value wraps
// one of these sentinels.
var (
	// ErrCapacityExceeded means a length operation asked to mark more
	// elements valid than the storage (or the primary region) allows.
	ErrCapacityExceeded = errors.New("rotatingbuffer: capacity exceeded")

	// ErrRetentionOverflow means a consume operation asked to retain more
	// elements than the destination region can hold, or its index was
	// outside the valid content.
	ErrRetentionOverflow = errors.New("rotatingbuffer: retention overflow")
)

func fatalf(sentinel error, format string, args ...any) {
	panic(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}
