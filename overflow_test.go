package rotatingbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverflowWalkThrough(t *testing.T) {
	buf := NewOverflow[byte](24, 8)
	require.Equal(t, 32, buf.Cap())
	require.Equal(t, 24, buf.PrimaryCap())
	require.Equal(t, 8, buf.OverflowCap())
	require.Len(t, buf.Writable(), 24)

	fillBytes(buf.Writable()[:22], 0)
	buf.SetLength(22)
	require.Equal(t, 22, buf.Len())

	buf.OverflowAt(17)
	require.Equal(t, 5, buf.Len())
	require.Equal(t, []byte{17, 18, 19, 20, 21}, buf.Slice())
	require.Equal(t, 5, buf.Retained())

	// A full-width fill is available even though 5 bytes were carried over.
	require.Len(t, buf.Writable(), 24)
	fillBytes(buf.Writable(), 22)
	buf.SetLength(24)
	require.Equal(t, 29, buf.Len())

	buf.OverflowAt(21)
	require.Equal(t, 8, buf.Len())
	require.Equal(t, []byte{38, 39, 40, 41, 42, 43, 44, 45}, buf.Slice())
	require.Len(t, buf.Writable(), 24)
}

func TestOverflowWritableAlwaysPrimaryWidth(t *testing.T) {
	buf := NewOverflow[byte](16, 4)
	for _, n := range []int{0, 16, 3} {
		buf.SetLength(n)
		require.Len(t, buf.Writable(), 16)
		buf.OverflowAt(buf.Len())
		require.Len(t, buf.Writable(), 16)
	}
}

func TestOverflowAtFullLengthEmpties(t *testing.T) {
	buf := NewOverflow[byte](16, 4)
	fillBytes(buf.Writable()[:10], 1)
	buf.SetLength(10)

	buf.OverflowAt(buf.Len())
	require.True(t, buf.IsEmpty())
	require.Equal(t, 0, buf.Retained())
}

func TestOverflowPreservesTailContent(t *testing.T) {
	for _, index := range []int{8, 10, 12} {
		buf := NewOverflow[byte](12, 4)
		fillBytes(buf.Writable(), 50)
		buf.SetLength(12)

		expected := append([]byte(nil), buf.Slice()[index:]...)
		buf.OverflowAt(index)

		assert.Equal(t, expected, buf.Slice(), "index %d", index)
	}
}

func TestOverflowSetLengthAddsCarriedTail(t *testing.T) {
	buf := NewOverflow[byte](12, 4)
	fillBytes(buf.Writable()[:10], 0)
	buf.SetLength(10)
	buf.OverflowAt(7)
	require.Equal(t, 3, buf.Len())

	fillBytes(buf.Writable()[:6], 10)
	buf.SetLength(6)
	require.Equal(t, 9, buf.Len())
	require.Equal(t, 0, buf.Retained())
	require.Equal(t, []byte{7, 8, 9, 10, 11, 12, 13, 14, 15}, buf.Slice())
}

func TestOverflowFatalViolations(t *testing.T) {
	buf := NewOverflow[byte](12, 4)
	fillBytes(buf.Writable()[:12], 0)
	buf.SetLength(12)

	// Retaining more than the overflow region holds is a sizing error.
	requireFatal(t, ErrRetentionOverflow, func() { buf.OverflowAt(7) })
	requireFatal(t, ErrRetentionOverflow, func() { buf.OverflowAt(13) })
	requireFatal(t, ErrRetentionOverflow, func() { buf.OverflowAt(-1) })
	requireFatal(t, ErrCapacityExceeded, func() { buf.SetLength(13) })
	requireFatal(t, ErrCapacityExceeded, func() { buf.SetLength(-1) })

	// A rejected operation must not have mutated anything.
	require.Equal(t, 12, buf.Len())
	require.Equal(t, 0, buf.Retained())
}

func TestOverflowReset(t *testing.T) {
	buf := NewOverflow[byte](12, 4)
	fillBytes(buf.Writable()[:8], 1)
	buf.SetLength(8)
	buf.OverflowAt(5)

	buf.Reset()
	require.True(t, buf.IsEmpty())
	require.Equal(t, 0, buf.Retained())
	require.Len(t, buf.Writable(), 12)
}
