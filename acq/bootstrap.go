package acq

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
)

// bootstrapHeaderLen is the number of bytes a revision-R_ALL graph header
// occupies: just the item-header-length and version fields. That's all
// bootstrap needs, and it's small enough to be present in even a severely
// truncated file.
const bootstrapHeaderLen = 6

// bootstrapResult is the outcome of detecting a recording's byte order and
// revision from its leading bytes.
type bootstrapResult struct {
	revision format.Revision
	order    binary.ByteOrder
	latin1   bool
}

// bootstrap reads the first bootstrapHeaderLen bytes of the source under
// both byte orders and keeps whichever interpretation yields the smaller
// non-negative version integer, breaking ties toward little-endian. A
// genuine AcqKnowledge revision is always a small positive number; the
// wrong byte order turns it into something implausibly large.
func bootstrap(r io.ReaderAt) (bootstrapResult, error) {
	buf := make([]byte, bootstrapHeaderLen)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return bootstrapResult{}, fmt.Errorf("reading leading header: %w: %w", errs.ErrBootstrapFailed, err)
	}

	leVersion := int32(binary.LittleEndian.Uint32(buf[2:6]))
	beVersion := int32(binary.BigEndian.Uint32(buf[2:6]))

	order := binary.ByteOrder(binary.LittleEndian)
	version := leVersion
	if beVersion >= 0 && (leVersion < 0 || beVersion < leVersion) {
		order = binary.BigEndian
		version = beVersion
	}
	if version < 0 {
		return bootstrapResult{}, fmt.Errorf("leading header version %d: %w", version, errs.ErrNoValidByteOrder)
	}

	revision := format.Revision(version)
	return bootstrapResult{
		revision: revision,
		order:    order,
		latin1:   revision < format.R400B,
	}, nil
}
