package acq

import "io"

// cursor tracks a logical read position over a random-access source. Every
// header in a recording is read this way: sequential advancement is just
// "read n bytes, move pos forward by n", but the data-type header scanner
// and compressed channel reader need to jump to offsets computed from
// field values, which a plain io.Reader can't do without an extra Seek
// abstraction. Building everything on io.ReaderAt keeps both cases the
// same operation.
type cursor struct {
	r   io.ReaderAt
	pos int64
}

func newCursor(r io.ReaderAt, start int64) *cursor {
	return &cursor{r: r, pos: start}
}

// readAt reads n bytes at an explicit absolute offset without moving pos.
func (c *cursor) readAt(off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := c.r.ReadAt(buf, off); err != nil {
		return nil, err
	}
	return buf, nil
}

// read reads n bytes at the current position and advances pos by n.
func (c *cursor) read(n int) ([]byte, error) {
	b, err := c.readAt(c.pos, n)
	if err != nil {
		return nil, err
	}
	c.pos += int64(n)
	return b, nil
}

// skip advances pos by n bytes without reading anything.
func (c *cursor) skip(n int64) { c.pos += n }

// seekTo sets pos to an absolute offset.
func (c *cursor) seekTo(off int64) { c.pos = off }

// tell returns the current position.
func (c *cursor) tell() int64 { return c.pos }
