package rotatingbuffer

// Rotating is the in-place variant: one fixed-size storage array whose
// unconsumed tail is rotated back to the front on every consume, so
// retained elements and the next chunk share the same region. The writable
// region shrinks by however much is retained.
type Rotating[T any] struct {
	inner   []T
	length  int
	rotated int // elements carried over by the last RotateAt
}

// NewRotating returns a rotating buffer with the given fixed capacity.
// The capacity never changes afterwards.
func NewRotating[T any](capacity int) *Rotating[T] {
	if capacity < 0 {
		fatalf(ErrCapacityExceeded, "negative capacity %d", capacity)
	}
	return &Rotating[T]{inner: make([]T, capacity)}
}

// Writable returns the storage past the valid content. Its length plus
// Len() always equals Cap().
func (b *Rotating[T]) Writable() []T {
	return b.inner[b.length:]
}

// Slice returns the valid content, retained tail first.
func (b *Rotating[T]) Slice() []T {
	return b.inner[:b.length]
}

// Advance reports that n elements were written into the writable region
// and returns the new total length.
func (b *Rotating[T]) Advance(n int) int {
	if n < 0 || b.length+n > len(b.inner) {
		fatalf(ErrCapacityExceeded, "advance by %d with %d of %d used", n, b.length, len(b.inner))
	}
	b.length += n
	b.rotated = 0
	return b.length
}

// SetLength sets the total valid length directly.
func (b *Rotating[T]) SetLength(n int) {
	if n < 0 || n > len(b.inner) {
		fatalf(ErrCapacityExceeded, "length %d exceeds capacity %d", n, len(b.inner))
	}
	b.length = n
	b.rotated = 0
}

// RotateAt discards the consumed prefix [0, index) and rotates the
// remaining tail to the front of storage, preserving its order. The tail
// becomes the new valid content, so the next write lands contiguously
// after it. RotateAt(Len()) empties the buffer.
func (b *Rotating[T]) RotateAt(index int) {
	if index < 0 || index > b.length {
		fatalf(ErrRetentionOverflow, "rotate index %d outside length %d", index, b.length)
	}
	k := b.length - index
	rotateRight(b.inner[:b.length], k)
	b.length = k
	b.rotated = k
}

// ConsumeTo implements the shared contract via RotateAt.
func (b *Rotating[T]) ConsumeTo(index int) {
	b.RotateAt(index)
}

func (b *Rotating[T]) Len() int {
	return b.length
}

func (b *Rotating[T]) Cap() int {
	return len(b.inner)
}

func (b *Rotating[T]) IsEmpty() bool {
	return b.length == 0
}

// Retained reports how many elements the last RotateAt carried over.
func (b *Rotating[T]) Retained() int {
	return b.rotated
}

// Reset empties the buffer for reuse on a new stream.
func (b *Rotating[T]) Reset() {
	b.length = 0
	b.rotated = 0
}

// rotateRight rotates s right by k places using three reversals: O(len(s))
// time, no extra space, correct regardless of how the retained and
// discarded regions overlap.
func rotateRight[T any](s []T, k int) {
	if len(s) == 0 || k == 0 || k == len(s) {
		return
	}
	reverse(s)
	reverse(s[:k])
	reverse(s[k:])
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
