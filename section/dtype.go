package section

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
)

// Data type codes as stamped into a ChannelDTypeHeader. Codes 0 and 1 both
// mean double precision float; only code 2 (16-bit integer) differs.
const (
	DTypeDoubleA = 0
	DTypeDoubleB = 1
	DTypeInt16   = 2
)

var dtypeFields = []schema.Field{
	{Name: "Size", Kind: schema.KindInt16, MinRevision: int32(format.RAll)},
	{Name: "Type", Kind: schema.KindInt16, MinRevision: int32(format.RAll)},
}

// ChannelDTypeHeader declares the on-disk sample width and type code for
// one channel. Its fixed 4-byte size is the same at every revision.
type ChannelDTypeHeader struct {
	r schema.Reader
}

// DTypeHeaderSize is the constant byte size of a ChannelDTypeHeader.
const DTypeHeaderSize = 4

// ParseChannelDTypeHeader decodes a single 4-byte data-type header.
func ParseChannelDTypeHeader(data []byte, order binary.ByteOrder) (ChannelDTypeHeader, error) {
	layout := schema.Bind(dtypeFields, int32(format.RAll))
	if len(data) < layout.Len() {
		return ChannelDTypeHeader{}, fmt.Errorf("channel dtype header: %w", errs.ErrShortRead)
	}
	return ChannelDTypeHeader{r: schema.NewReader(data, layout, order)}, nil
}

// SampleSize is the declared byte width of one sample of this channel.
func (h ChannelDTypeHeader) SampleSize() int { return int(h.r.Int16("Size")) }

// TypeCode is the raw data type code (DTypeDoubleA, DTypeDoubleB, or
// DTypeInt16).
func (h ChannelDTypeHeader) TypeCode() int { return int(h.r.Int16("Type")) }

// PossiblyValid reports whether this header's fields look like a genuine
// data-type header rather than bytes the dtype scanner happened to land on:
// the type code must be one of the three known codes, and the declared
// sample size must match what that code implies.
func (h ChannelDTypeHeader) PossiblyValid() bool {
	switch h.TypeCode() {
	case DTypeDoubleA, DTypeDoubleB:
		return h.SampleSize() == 8
	case DTypeInt16:
		return h.SampleSize() == 2
	default:
		return false
	}
}
