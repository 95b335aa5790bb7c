package section

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
)

var v2MarkerFields = []schema.Field{
	{Name: "Length", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
	{Name: "Markers", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
}

// V2MarkerHeader precedes the pre-4 marker item list.
type V2MarkerHeader struct {
	layout schema.Layout
	r      schema.Reader
}

// ParseV2MarkerHeader binds the pre-4 marker section header layout.
func ParseV2MarkerHeader(data []byte, order binary.ByteOrder) (V2MarkerHeader, error) {
	layout := schema.Bind(v2MarkerFields, int32(format.R20a))
	if len(data) < layout.Len() {
		return V2MarkerHeader{}, fmt.Errorf("marker header: %w", errs.ErrShortRead)
	}
	return V2MarkerHeader{layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

func (h V2MarkerHeader) StructLen() int   { return h.layout.Len() }
func (h V2MarkerHeader) MarkerCount() int { return int(h.r.Int32("Markers")) }

var v4MarkerFields = []schema.Field{
	{Name: "Length", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
	{Name: "MarkersExtra", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
	{Name: "Markers", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
	{Name: "Reserved1", Kind: schema.KindBytes, Count: 6, MinRevision: int32(format.R400B)},
	{Name: "DeflLabel", Kind: schema.KindBytes, Count: 5, MinRevision: int32(format.R400B)},
	{Name: "Reserved2", Kind: schema.KindInt16, MinRevision: int32(format.R400B)},
	{Name: "Reserved3", Kind: schema.KindBytes, Count: 8, MinRevision: int32(format.R42x)},
	{Name: "Reserved4", Kind: schema.KindBytes, Count: 8, MinRevision: int32(format.R440)},
}

// V4MarkerHeader precedes the post-4 marker item list.
type V4MarkerHeader struct {
	layout schema.Layout
	r      schema.Reader
}

// ParseV4MarkerHeader binds the post-4 marker section header layout.
func ParseV4MarkerHeader(data []byte, revision format.Revision, order binary.ByteOrder) (V4MarkerHeader, error) {
	layout := schema.Bind(v4MarkerFields, int32(revision))
	if len(data) < layout.Len() {
		return V4MarkerHeader{}, fmt.Errorf("marker header: %w", errs.ErrShortRead)
	}
	return V4MarkerHeader{layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

func (h V4MarkerHeader) StructLen() int { return h.layout.Len() }

// MarkerCount is the number of marker items that follow; the file's own
// counter is off by one relative to the actual item count.
func (h V4MarkerHeader) MarkerCount() int { return int(h.r.Int32("MarkersExtra")) - 1 }

var v2MarkerItemFields = []schema.Field{
	{Name: "Sample", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
	{Name: "Selected", Kind: schema.KindInt16, MinRevision: int32(format.R35x)},
	{Name: "TextLocked", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
	{Name: "PositionLocked", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
	{Name: "TextLength", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
}

// V2MarkerItemHeader is one pre-4 marker record: a sample index and the
// length of the label text immediately following it. Pre-4 markers have no
// channel binding, creation date, or type code.
type V2MarkerItemHeader struct {
	revision format.Revision
	layout   schema.Layout
	r        schema.Reader
}

// ParseV2MarkerItemHeader binds the pre-4 marker item layout.
func ParseV2MarkerItemHeader(data []byte, revision format.Revision, order binary.ByteOrder) (V2MarkerItemHeader, error) {
	layout := schema.Bind(v2MarkerItemFields, int32(revision))
	if len(data) < layout.Len() {
		return V2MarkerItemHeader{}, fmt.Errorf("marker item header: %w", errs.ErrShortRead)
	}
	return V2MarkerItemHeader{revision: revision, layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

func (h V2MarkerItemHeader) StructLen() int     { return h.layout.Len() }
func (h V2MarkerItemHeader) SampleIndex() int32 { return h.r.Int32("Sample") }

// TextLength is the label length following this item; revisions at or
// after R35x store it one short of the true length (they don't count the
// trailing NUL the label was actually written with).
func (h V2MarkerItemHeader) TextLength() int {
	n := int(h.r.Int16("TextLength"))
	if h.revision >= format.R35x {
		n++
	}
	return n
}

var v4MarkerItemFields = []schema.Field{
	{Name: "Sample", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
	{Name: "Reserved1", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R400B)},
	{Name: "Channel", Kind: schema.KindInt16, MinRevision: int32(format.R400B)},
	{Name: "MarkerStyle", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R400B)},
	{Name: "DateCreated", Kind: schema.KindUint64, MinRevision: int32(format.R440)},
	{Name: "Reserved2", Kind: schema.KindBytes, Count: 8, MinRevision: int32(format.R42x)},
	{Name: "TextLength", Kind: schema.KindInt16, MinRevision: int32(format.R400B)},
}

// V4MarkerItemHeader is one post-4 marker record: sample index, optional
// channel binding (-1 meaning global), a 4-character style code, and
// (from R440 on) a creation timestamp.
type V4MarkerItemHeader struct {
	revision format.Revision
	layout   schema.Layout
	r        schema.Reader
}

// ParseV4MarkerItemHeader binds the post-4 marker item layout.
func ParseV4MarkerItemHeader(data []byte, revision format.Revision, order binary.ByteOrder) (V4MarkerItemHeader, error) {
	layout := schema.Bind(v4MarkerItemFields, int32(revision))
	if len(data) < layout.Len() {
		return V4MarkerItemHeader{}, fmt.Errorf("marker item header: %w", errs.ErrShortRead)
	}
	return V4MarkerItemHeader{revision: revision, layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

func (h V4MarkerItemHeader) StructLen() int     { return h.layout.Len() }
func (h V4MarkerItemHeader) SampleIndex() int32 { return h.r.Int32("Sample") }
func (h V4MarkerItemHeader) TextLength() int    { return int(h.r.Int16("TextLength")) }

// ChannelNumber returns the bound channel index, or -1 for a global marker.
func (h V4MarkerItemHeader) ChannelNumber() int {
	return int(h.r.Int16("Channel"))
}

// DateCreatedMs is the marker's creation time in milliseconds since the
// Unix epoch, and ok is false for revisions before R440 (the field didn't
// exist yet).
func (h V4MarkerItemHeader) DateCreatedMs() (ms uint64, ok bool) {
	if h.revision < format.R440 {
		return 0, false
	}
	return h.r.Uint64("DateCreated"), true
}

// TypeCode is the raw 4-character marker style code (e.g. "flag", "defl").
func (h V4MarkerItemHeader) TypeCode() string {
	return string(trimCString(h.r.Bytes("MarkerStyle", 4)))
}

var v2MarkerMetadataPreFields = []schema.Field{
	{Name: "Tag", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R20a)},
	{Name: "ItemCount", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
	{Name: "Reserved", Kind: schema.KindBytes, Count: 76, MinRevision: int32(format.R20a)},
}

// V2MarkerMetadataPreHeader announces an optional trailing section of
// per-marker color/style metadata in pre-4 files, gated behind a sentinel
// tag lookahead since the section may be entirely absent.
type V2MarkerMetadataPreHeader struct {
	layout schema.Layout
	r      schema.Reader
}

// ParseV2MarkerMetadataPreHeader binds the pre-4 marker metadata preamble.
func ParseV2MarkerMetadataPreHeader(data []byte, order binary.ByteOrder) (V2MarkerMetadataPreHeader, error) {
	layout := schema.Bind(v2MarkerMetadataPreFields, int32(format.R20a))
	if len(data) < layout.Len() {
		return V2MarkerMetadataPreHeader{}, fmt.Errorf("marker metadata preamble: %w", errs.ErrShortRead)
	}
	return V2MarkerMetadataPreHeader{layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

func (h V2MarkerMetadataPreHeader) StructLen() int  { return h.layout.Len() }
func (h V2MarkerMetadataPreHeader) ItemCount() int  { return int(h.r.Int32("ItemCount")) }
func (h V2MarkerMetadataPreHeader) TagMatches() bool {
	return [4]byte(h.r.Bytes("Tag", 4)) == JournalTag
}

var v2MarkerMetadataFields = []schema.Field{
	{Name: "Reserved1", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
	{Name: "MarkerNumber", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
	{Name: "Reserved2", Kind: schema.KindBytes, Count: 12, MinRevision: int32(format.R20a)},
	{Name: "RgbaColor", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R20a)},
	{Name: "MarkerTag", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
	{Name: "MarkerTypeID", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
}

// V2MarkerMetadataHeader is one entry in the pre-4 marker metadata section,
// binding a marker number (1-based) to a display color and style tag.
type V2MarkerMetadataHeader struct {
	layout schema.Layout
	r      schema.Reader
}

// ParseV2MarkerMetadataHeader binds one pre-4 marker metadata record.
func ParseV2MarkerMetadataHeader(data []byte, order binary.ByteOrder) (V2MarkerMetadataHeader, error) {
	layout := schema.Bind(v2MarkerMetadataFields, int32(format.R20a))
	if len(data) < layout.Len() {
		return V2MarkerMetadataHeader{}, fmt.Errorf("marker metadata: %w", errs.ErrShortRead)
	}
	return V2MarkerMetadataHeader{layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

func (h V2MarkerMetadataHeader) StructLen() int { return h.layout.Len() }

// MarkerIndex is the 0-based index of the marker this metadata belongs to.
func (h V2MarkerMetadataHeader) MarkerIndex() int {
	return int(h.r.Int32("MarkerNumber")) - 1
}

func (h V2MarkerMetadataHeader) MarkerTag() int16 { return h.r.Int16("MarkerTag") }

// The Len functions below give a header's packed byte length without
// requiring a data buffer, so callers can size a read before issuing it.

func V2MarkerHeaderLen() int { return schema.Bind(v2MarkerFields, int32(format.R20a)).Len() }

func V4MarkerHeaderLen(revision format.Revision) int {
	return schema.Bind(v4MarkerFields, int32(revision)).Len()
}

func V2MarkerItemHeaderLen(revision format.Revision) int {
	return schema.Bind(v2MarkerItemFields, int32(revision)).Len()
}

func V4MarkerItemHeaderLen(revision format.Revision) int {
	return schema.Bind(v4MarkerItemFields, int32(revision)).Len()
}

func V2MarkerMetadataPreHeaderLen() int {
	return schema.Bind(v2MarkerMetadataPreFields, int32(format.R20a)).Len()
}

func V2MarkerMetadataHeaderLen() int {
	return schema.Bind(v2MarkerMetadataFields, int32(format.R20a)).Len()
}
