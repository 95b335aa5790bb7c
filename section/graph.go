package section

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
)

// graphPrefixFields are identical across every revision from R20a onward;
// both header families extend this same run of fields.
func graphPrefixFields() []schema.Field {
	return []schema.Field{
		{Name: "ItemHeaderLen", Kind: schema.KindInt16, MinRevision: int32(format.RAll)},
		{Name: "Version", Kind: schema.KindInt32, MinRevision: int32(format.RAll)},
		{Name: "ExtItemHeaderLen", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
		{Name: "ChannelCount", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "HorizAxisType", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "CurChannel", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "SampleTime", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "TimeOffset", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "TimeScale", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "TimeCursor1", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "TimeCursor2", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "RcWindow", Kind: schema.KindBytes, Count: 8, MinRevision: int32(format.R20a)},
		{Name: "Measurement", Kind: schema.KindBytes, Count: 12, MinRevision: int32(format.R20a)},
		{Name: "Hilite", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "FirstTimeOffset", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "Rescale", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "HorizUnits1", Kind: schema.KindBytes, Count: 40, MinRevision: int32(format.R20a)},
		{Name: "HorizUnits2", Kind: schema.KindBytes, Count: 10, MinRevision: int32(format.R20a)},
		{Name: "InMemory", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "Grid", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "Markers", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "PlotDraft", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "DispMode", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "GraphReserved", Kind: schema.KindBytes, Count: 2, MinRevision: int32(format.R20a)},
	}
}

// graphPre4TailFields models every field AcqKnowledge added to the pre-4
// graph header after the common prefix, up through R390. Long runs with no
// accessor (plot/measurement UI state, calculator expressions) are
// collapsed into single opaque blobs sized to match the original field
// list exactly, since nothing in this package ever reads them — only their
// contribution to the byte offset of later fields (in particular
// Compressed) matters.
func graphPre4TailFields() []schema.Field {
	return []schema.Field{
		{Name: "toolbarState", Kind: schema.KindBytes, Count: 14, MinRevision: int32(format.R30r)},
		{Name: "measurementRows", Kind: schema.KindBytes, Count: 162, MinRevision: int32(format.R303)},
		{Name: "calcOperands", Kind: schema.KindBytes, Count: 560, MinRevision: int32(format.R35x)},
		{Name: "gridAppearance", Kind: schema.KindBytes, Count: 1008, MinRevision: int32(format.R370)},
		{Name: "HorizPrecision", Kind: schema.KindInt16, MinRevision: int32(format.R373)},
		{Name: "preCompressedReserved", Kind: schema.KindBytes, Count: 40, MinRevision: int32(format.R381)},
		{Name: "Compressed", Kind: schema.KindInt32, MinRevision: int32(format.R381)},
		{Name: "alwaysStartButtonVisible", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R381)},
		{Name: "videoSync", Kind: schema.KindBytes, Count: 276, MinRevision: int32(format.R382)},
		{Name: "calcExpressions", Kind: schema.KindBytes, Count: 10884, MinRevision: int32(format.R390)},
	}
}

// graphPost4TailFields models the structurally distinct post-4 graph header,
// whose tail is dominated by two large unlabeled reserved runs.
func graphPost4TailFields() []schema.Field {
	return []schema.Field{
		{Name: "post4Reserved1", Kind: schema.KindBytes, Count: 822, MinRevision: int32(format.R400B)},
		{Name: "Compressed", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
		{Name: "post4Reserved2", Kind: schema.KindBytes, Count: 1422, MinRevision: int32(format.R400B)},
		{Name: "ExpectedPaddingHeaders", Kind: schema.KindInt16, MinRevision: int32(format.R430)},
	}
}

func graphFieldsFor(revision format.Revision) []schema.Field {
	fields := graphPrefixFields()
	if revision.IsPostV4() {
		return append(fields, graphPost4TailFields()...)
	}
	return append(fields, graphPre4TailFields()...)
}

// GraphHeader is the file-level header every recording starts with: byte
// order and revision are determined from its first bytes before anything
// else can be parsed, and its ExtItemHeaderLen field gives the exact byte
// offset at which the padding headers (if any) and then the first channel
// header begin.
type GraphHeader struct {
	revision format.Revision
	layout   schema.Layout
	r        schema.Reader
}

// ParseGraphHeader binds the graph header layout for revision and decodes
// data against it. data must be at least as long as the layout requires.
func ParseGraphHeader(data []byte, revision format.Revision, order binary.ByteOrder) (GraphHeader, error) {
	layout := schema.Bind(graphFieldsFor(revision), int32(revision))
	if len(data) < layout.Len() {
		return GraphHeader{}, fmt.Errorf("graph header: %w", errs.ErrShortRead)
	}
	return GraphHeader{revision: revision, layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

// StructLen returns the number of bytes this header's own packed layout
// occupies for its revision. It is not generally the header's effective
// length in the file — see ExtHeaderLen.
func (h GraphHeader) StructLen() int { return h.layout.Len() }

// ExtHeaderLen is the file's own declared length of the graph header,
// which callers use to locate the padding and channel headers that follow
// it. It can exceed
// StructLen when the producing application's real struct carries fields
// this package never names.
func (h GraphHeader) ExtHeaderLen() int32 { return h.r.Int32("ExtItemHeaderLen") }

// ChannelCount is the number of per-channel headers that follow.
func (h GraphHeader) ChannelCount() int { return int(h.r.Int16("ChannelCount")) }

// SampleTime is the base sampling interval in milliseconds; per-channel
// frequency dividers scale it per channel.
func (h GraphHeader) SampleTime() float64 { return h.r.Float64("SampleTime") }

// Version is the raw revision integer as stored in the file.
func (h GraphHeader) Version() int32 { return h.r.Int32("Version") }

// Compressed reports whether channel data is stored as per-channel zlib
// blocks rather than interleaved uncompressed samples. Revisions that
// predate the flag's introduction are never compressed.
func (h GraphHeader) Compressed() bool {
	if !h.r.Has("Compressed") {
		return false
	}
	return h.r.Int32("Compressed") != 0
}

// GraphHeaderLen returns the graph header's packed size for revision,
// usable before the header itself is parsed.
func GraphHeaderLen(revision format.Revision) int {
	return schema.Bind(graphFieldsFor(revision), int32(revision)).Len()
}

// ExpectedPaddingHeaders is the count of PaddingHeader records that
// precede the channel headers in post-4.3+ files, or 0 when the field
// doesn't exist at this revision.
func (h GraphHeader) ExpectedPaddingHeaders() int {
	if !h.r.Has("ExpectedPaddingHeaders") {
		return 0
	}
	return int(h.r.Int16("ExpectedPaddingHeaders"))
}
