// Package stream consumes delimiter-separated values from a byte stream
// through a fixed-capacity buffer. Records may span several reads; the
// unconsumed tail of one chunk is retained by the buffer so the next chunk
// completes it in place.
package stream

import (
	"bytes"
	"io"

	"github.com/sirupsen/logrus"

	rotatingbuffer "github.com/eaon/rotating-buffer"
)

// Handler receives one value per call. partial is true when the value was
// flushed before its closing delimiter arrived, i.e. the record is larger
// than the buffer can retain and the rest follows in later calls.
type Handler func(value []byte, partial bool)

// Ctx is the per-connection consumer state. A Ctx owns exactly one buffer
// and serves one stream at a time; Reset prepares it for reuse through a
// sync.Pool.
type Ctx struct {
	Name string

	conn    io.Reader
	buf     rotatingbuffer.Buffer[byte]
	delim   byte
	handle  Handler
	metrics *Metrics
}

// NewCtx builds a consumer around buf. metrics may be nil.
func NewCtx(name string, buf rotatingbuffer.Buffer[byte], delim byte, handle Handler, metrics *Metrics) *Ctx {
	return &Ctx{
		Name:    name,
		buf:     buf,
		delim:   delim,
		handle:  handle,
		metrics: metrics,
	}
}

// Attach points the ctx at a new stream source.
func (c *Ctx) Attach(conn io.Reader) {
	c.conn = conn
}

// Reset empties the buffer and closes the attached source if it is
// closable, so the ctx can go back into a pool.
func (c *Ctx) Reset() {
	c.buf.Reset()
	if closer, ok := c.conn.(io.Closer); ok {
		_ = closer.Close()
	}
	c.conn = nil
}

// Run consumes cycles until the stream ends. io.EOF is the normal
// termination and is not returned as an error.
func (c *Ctx) Run() error {
	for {
		if err := c.Consume(); err != nil {
			if err == io.EOF {
				c.flushRemainder()
				return nil
			}
			return err
		}
	}
}

// Consume performs one cycle: read a chunk into the writable region,
// report the count, then scan the combined content for complete values.
func (c *Ctx) Consume() error {
	n, err := c.conn.Read(c.buf.Writable())
	if err != nil {
		return err
	}
	c.buf.Advance(n)
	c.metrics.AddBytesRead(c.Name, n)
	c.scan()
	return nil
}

// scan emits every complete value and tells the buffer which prefix was
// consumed. The tail past the last delimiter is retained for the next
// chunk, unless it is too large to retain, in which case it is flushed as
// a partial value so the cycle can make progress.
func (c *Ctx) scan() {
	s := c.buf.Slice()
	i := bytes.LastIndexByte(s, c.delim)
	if i < 0 {
		if c.buf.Len() > c.maxRetain() {
			logrus.Debugf("%s: value exceeds buffer, flushing %d bytes as partial", c.Name, len(s))
			c.emit(s, true)
			c.buf.SetLength(0)
			return
		}
		c.buf.ConsumeTo(0)
		c.metrics.IncRetains(c.Name)
		return
	}

	for _, value := range bytes.Split(s[:i], []byte{c.delim}) {
		c.emit(value, false)
	}

	// Do not retain the delimiter itself.
	if tail := len(s) - (i + 1); tail > c.maxRetain() {
		logrus.Debugf("%s: tail of %d bytes exceeds retention headroom, flushing as partial", c.Name, tail)
		c.emit(s[i+1:], true)
		c.buf.SetLength(0)
		return
	}
	c.buf.ConsumeTo(i + 1)
	c.metrics.IncRetains(c.Name)
}

// flushRemainder hands out whatever is still buffered when the stream
// ends without a trailing delimiter.
func (c *Ctx) flushRemainder() {
	if c.buf.IsEmpty() {
		return
	}
	c.emit(c.buf.Slice(), false)
	c.buf.SetLength(0)
}

func (c *Ctx) emit(value []byte, partial bool) {
	c.handle(value, partial)
	c.metrics.IncValues(c.Name)
}

// maxRetain is how large a tail the buffer can carry into the next cycle
// while still accepting new data: the overflow region for the overflow
// strategy, everything short of a full buffer for the rotating one.
func (c *Ctx) maxRetain() int {
	if b, ok := c.buf.(*rotatingbuffer.Overflow[byte]); ok {
		return b.OverflowCap()
	}
	return c.buf.Cap() - 1
}
