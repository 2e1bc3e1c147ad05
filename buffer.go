// Package rotatingbuffer provides fixed-capacity buffers for incremental
// stream consumption. Data arrives in chunks of arbitrary size, but logical
// records may span chunks or end partway through one; both variants keep
// the unconsumed tail of a chunk contiguous with the next chunk's data,
// without allocating, so a caller can always scan one contiguous slice for
// record boundaries.
//
// Rotating keeps a single storage array and rotates the retained tail to
// the front in place, shrinking the writable region accordingly. Overflow
// reserves a dedicated region for the retained tail so the primary write
// region keeps its full width between fills.
//
// A buffer serves exactly one stream and one goroutine. No operation
// blocks or performs I/O.
package rotatingbuffer

import "fmt"

// Buffer is the contract shared by both retention strategies.
type Buffer[T any] interface {
	// Writable returns the region newly arrived data should be written
	// into, starting at its index 0.
	Writable() []T
	// Slice returns the valid content: the retained tail of the previous
	// cycle followed by everything written since, as one contiguous run.
	Slice() []T
	// Advance reports that n elements were just written into the writable
	// region and returns the new length.
	Advance(n int) int
	// SetLength sets the valid length directly and clears the retention
	// marker. For Rotating, n is the new total length; for Overflow, n is
	// the count written into the primary region and the carried tail is
	// added to it.
	SetLength(n int)
	// ConsumeTo discards the prefix [0, index) of the valid content and
	// retains the tail so the next write lands contiguously after it.
	ConsumeTo(index int)
	// Len is the current valid length, Cap the total storage capacity.
	Len() int
	Cap() int
	IsEmpty() bool
	// Reset empties the buffer so it can serve a new stream.
	Reset()
}

// Strategy selects a retention strategy by name.
type Strategy string

const (
	StrategyRotate   Strategy = "rotate"
	StrategyOverflow Strategy = "overflow"
)

// New returns a buffer using the requested strategy. Both strategies get
// the same total footprint of primary+overflow elements; rotate folds the
// overflow headroom into its single shared region.
func New[T any](strategy Strategy, primary, overflow int) (Buffer[T], error) {
	switch strategy {
	case StrategyRotate:
		return NewRotating[T](primary + overflow), nil
	case StrategyOverflow:
		return NewOverflow[T](primary, overflow), nil
	default:
		return nil, fmt.Errorf("unknown buffer strategy %q", strategy)
	}
}

var (
	_ Buffer[byte] = (*Rotating[byte])(nil)
	_ Buffer[byte] = (*Overflow[byte])(nil)
)
