package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
)

// ZlibCodec compresses and decompresses channel blocks using raw zlib
// (RFC 1950). Writers and readers are pooled since a recording with many
// channels decompresses one block per channel back to back.
type ZlibCodec struct {
	writers sync.Pool
	readers sync.Pool
}

// NewZlibCodec returns a ready-to-use ZlibCodec.
func NewZlibCodec() *ZlibCodec {
	return &ZlibCodec{}
}

// Compress zlib-compresses data at the default compression level.
func (c *ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, _ := c.writers.Get().(*zlib.Writer)
	if w == nil {
		var err error
		w, err = zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
		if err != nil {
			return nil, fmt.Errorf("creating zlib writer: %w", err)
		}
	} else {
		w.Reset(&buf)
	}
	defer c.writers.Put(w)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("writing to zlib stream: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("closing zlib stream: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decompress inflates a zlib-compressed channel block.
func (c *ZlibCodec) Decompress(data []byte) ([]byte, error) {
	src := bytes.NewReader(data)

	r, _ := c.readers.Get().(zlib.Resetter)
	var rc io.ReadCloser
	if r == nil {
		var err error
		closer, err := zlib.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("opening zlib stream: %w", err)
		}
		rc = closer
	} else {
		if err := r.Reset(src, nil); err != nil {
			return nil, fmt.Errorf("resetting zlib stream: %w", err)
		}
		rc = r.(io.ReadCloser)
	}

	out, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("inflating zlib stream: %w", err)
	}
	if err := rc.Close(); err != nil {
		return nil, fmt.Errorf("closing zlib stream: %w", err)
	}

	if resetter, ok := rc.(zlib.Resetter); ok {
		c.readers.Put(resetter)
	}

	return out, nil
}

var defaultCodec = NewZlibCodec()

// Decompress is a package-level convenience that uses a shared ZlibCodec.
func Decompress(data []byte) ([]byte, error) {
	return defaultCodec.Decompress(data)
}
