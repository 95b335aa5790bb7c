package section

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
)

var paddingFields = []schema.Field{
	{Name: "ChannelLen", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
	{Name: "Reserved", Kind: schema.KindBytes, Count: 36, MinRevision: int32(format.R400B)},
}

// PaddingHeader is a filler record some post-4.3 recordings insert before
// the channel headers; GraphHeader.ExpectedPaddingHeaders says how many to
// expect. Its content carries no decoded semantics, only a length to skip.
type PaddingHeader struct {
	layout schema.Layout
	r      schema.Reader
}

// ParsePaddingHeader binds the padding header layout.
func ParsePaddingHeader(data []byte, order binary.ByteOrder) (PaddingHeader, error) {
	layout := schema.Bind(paddingFields, int32(format.R400B))
	if len(data) < layout.Len() {
		return PaddingHeader{}, fmt.Errorf("padding header: %w", errs.ErrShortRead)
	}
	return PaddingHeader{layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

// StructLen returns this header's packed layout size.
func (h PaddingHeader) StructLen() int { return h.layout.Len() }

// EffectiveLen is the declared total extent of this padding record.
func (h PaddingHeader) EffectiveLen() int32 { return h.r.Int32("ChannelLen") }

// PaddingHeaderLen returns the padding header's packed size, usable before
// the header itself is parsed.
func PaddingHeaderLen() int {
	return schema.Bind(paddingFields, int32(format.R400B)).Len()
}
