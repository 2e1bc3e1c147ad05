package rotatingbuffer

// Overflow is the reserved-region variant: storage holds a primary write
// region plus a dedicated overflow region. A consume copies the retained
// tail into the overflow region at the front of storage, so the primary
// region keeps its full width on every fill regardless of how much was
// retained. Useful when the caller wants a size-stable write target, e.g.
// to match a fixed read-call size.
type Overflow[T any] struct {
	inner    []T
	primary  int
	overflow int
	length   int
	carried  int // retained elements at the front of storage
}

// NewOverflow returns an overflow buffer with a primary write region of
// primary elements and a reserved overflow region of overflow elements.
// Total storage is the sum of the two.
func NewOverflow[T any](primary, overflow int) *Overflow[T] {
	if primary < 0 || overflow < 0 {
		fatalf(ErrCapacityExceeded, "negative region size: primary %d, overflow %d", primary, overflow)
	}
	return &Overflow[T]{
		inner:    make([]T, primary+overflow),
		primary:  primary,
		overflow: overflow,
	}
}

// Writable returns the primary write region: always exactly PrimaryCap()
// elements, offset past the tail carried over by the last OverflowAt.
func (b *Overflow[T]) Writable() []T {
	return b.inner[b.carried : b.carried+b.primary]
}

// Slice returns the valid content, carried tail first.
func (b *Overflow[T]) Slice() []T {
	return b.inner[:b.length]
}

// SetLength reports that n elements were written into the primary region.
// The new valid length is the carried tail plus n.
func (b *Overflow[T]) SetLength(n int) {
	if n < 0 || n > b.primary {
		fatalf(ErrCapacityExceeded, "length %d exceeds primary capacity %d", n, b.primary)
	}
	b.length = b.carried + n
	b.carried = 0
}

// Advance reports the full count written this fill. The writable region
// does not move between fills, so unlike Rotating this does not accumulate
// across calls within one cycle.
func (b *Overflow[T]) Advance(n int) int {
	b.SetLength(n)
	return b.length
}

// OverflowAt discards the consumed prefix [0, index) and moves the
// remaining tail into the overflow region at the front of storage. The
// tail must fit the overflow region; a larger tail means the region was
// undersized for the traffic pattern and is a fatal violation.
func (b *Overflow[T]) OverflowAt(index int) {
	if index < 0 || index > b.length {
		fatalf(ErrRetentionOverflow, "overflow index %d outside length %d", index, b.length)
	}
	k := b.length - index
	if k > b.overflow {
		fatalf(ErrRetentionOverflow, "retained tail %d exceeds overflow capacity %d", k, b.overflow)
	}
	copy(b.inner, b.inner[index:b.length])
	clear(b.inner[k:])
	b.carried = k
	b.length = k
}

// ConsumeTo implements the shared contract via OverflowAt.
func (b *Overflow[T]) ConsumeTo(index int) {
	b.OverflowAt(index)
}

func (b *Overflow[T]) Len() int {
	return b.length
}

// Cap is the total storage capacity, primary and overflow combined.
func (b *Overflow[T]) Cap() int {
	return len(b.inner)
}

func (b *Overflow[T]) PrimaryCap() int {
	return b.primary
}

func (b *Overflow[T]) OverflowCap() int {
	return b.overflow
}

func (b *Overflow[T]) IsEmpty() bool {
	return b.length == 0
}

// Retained reports how many elements the last OverflowAt carried over.
func (b *Overflow[T]) Retained() int {
	return b.carried
}

// Reset empties the buffer for reuse on a new stream.
func (b *Overflow[T]) Reset() {
	clear(b.inner)
	b.length = 0
	b.carried = 0
}
