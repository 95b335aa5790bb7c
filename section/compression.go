package section

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
)

func mainCompressionFieldsFor(revision format.Revision) []schema.Field {
	if revision.IsPostV4() {
		return []schema.Field{
			{Name: "Reserved1", Kind: schema.KindBytes, Count: 24, MinRevision: int32(format.R400B)},
			{Name: "TextLen1", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
			{Name: "TextLen2", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
			{Name: "Reserved2", Kind: schema.KindBytes, Count: 20, MinRevision: int32(format.R400B)},
			{Name: "Reserved3", Kind: schema.KindBytes, Count: 6, MinRevision: int32(format.R420)},
		}
	}
	return []schema.Field{
		{Name: "Reserved", Kind: schema.KindBytes, Count: 34, MinRevision: int32(format.R20a)},
		{Name: "TextLen", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
	}
}

// MainCompressionHeader precedes a short free-text blob (a compression
// summary AcqKnowledge writes for its own UI) between the marker section
// and the per-channel compression headers. The text itself is skipped, not
// decoded, since nothing in the decoded model exposes it.
type MainCompressionHeader struct {
	revision format.Revision
	layout   schema.Layout
	r        schema.Reader
}

// ParseMainCompressionHeader binds the main compression header layout.
func ParseMainCompressionHeader(data []byte, revision format.Revision, order binary.ByteOrder) (MainCompressionHeader, error) {
	layout := schema.Bind(mainCompressionFieldsFor(revision), int32(revision))
	if len(data) < layout.Len() {
		return MainCompressionHeader{}, fmt.Errorf("main compression header: %w", errs.ErrShortRead)
	}
	return MainCompressionHeader{revision: revision, layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

// StructLen returns this header's own packed layout size.
func (h MainCompressionHeader) StructLen() int { return h.layout.Len() }

// MainCompressionHeaderLen returns the main compression header's packed
// size for revision, usable before the header itself is parsed.
func MainCompressionHeaderLen(revision format.Revision) int {
	return schema.Bind(mainCompressionFieldsFor(revision), int32(revision)).Len()
}

// TrailingTextLen is the number of bytes of free text following this
// header that callers must skip to reach the next section.
func (h MainCompressionHeader) TrailingTextLen() int32 {
	if h.revision.IsPostV4() {
		return h.r.Int32("TextLen1") + h.r.Int32("TextLen2")
	}
	return h.r.Int32("TextLen")
}

// EffectiveLen is StructLen plus the trailing text it precedes.
func (h MainCompressionHeader) EffectiveLen() int32 {
	return int32(h.StructLen()) + h.TrailingTextLen()
}

var channelCompressionFields = []schema.Field{
	{Name: "Reserved", Kind: schema.KindBytes, Count: 44, MinRevision: int32(format.R381)},
	{Name: "ChannelLabelLen", Kind: schema.KindInt32, MinRevision: int32(format.R381)},
	{Name: "UnitLabelLen", Kind: schema.KindInt32, MinRevision: int32(format.R381)},
	{Name: "UncompressedLen", Kind: schema.KindInt32, MinRevision: int32(format.R381)},
	{Name: "CompressedLen", Kind: schema.KindInt32, MinRevision: int32(format.R381)},
}

// ChannelCompressionHeader precedes each channel's zlib-compressed sample
// block, giving the compressed and uncompressed byte lengths.
type ChannelCompressionHeader struct {
	layout schema.Layout
	r      schema.Reader
}

// ParseChannelCompressionHeader binds the channel compression header
// layout. Its shape doesn't vary across revisions that support compression
// at all (pre-4 compression was introduced at R381, well after this
// header's fields were fixed).
func ParseChannelCompressionHeader(data []byte, order binary.ByteOrder) (ChannelCompressionHeader, error) {
	layout := schema.Bind(channelCompressionFields, int32(format.R501))
	if len(data) < layout.Len() {
		return ChannelCompressionHeader{}, fmt.Errorf("channel compression header: %w", errs.ErrShortRead)
	}
	return ChannelCompressionHeader{layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

// StructLen returns this header's packed layout size.
func (h ChannelCompressionHeader) StructLen() int { return h.layout.Len() }

// UncompressedLen is the channel's sample data size once decompressed.
func (h ChannelCompressionHeader) UncompressedLen() int32 { return h.r.Int32("UncompressedLen") }

// CompressedLen is the number of zlib-compressed bytes immediately
// following this header (after skipping ChannelLabelLen+UnitLabelLen bytes
// of trailing label text).
func (h ChannelCompressionHeader) CompressedLen() int32 { return h.r.Int32("CompressedLen") }

// LabelBytesLen is the number of bytes of channel/unit label text that
// follow this header before the compressed block begins.
func (h ChannelCompressionHeader) LabelBytesLen() int32 {
	return h.r.Int32("ChannelLabelLen") + h.r.Int32("UnitLabelLen")
}

// ChannelCompressionHeaderLen returns the fixed packed size of a
// ChannelCompressionHeader, usable before the header itself is parsed.
func ChannelCompressionHeaderLen() int {
	return schema.Bind(channelCompressionFields, int32(format.R501)).Len()
}
