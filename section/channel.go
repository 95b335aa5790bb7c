package section

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
)

func channelPre4Fields() []schema.Field {
	return []schema.Field{
		{Name: "ChanHeaderLen", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
		{Name: "Num", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "CommentText", Kind: schema.KindBytes, Count: 40, MinRevision: int32(format.R20a)},
		{Name: "RgbColor", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R20a)},
		{Name: "DispChan", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "VoltOffset", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "VoltScale", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "UnitsText", Kind: schema.KindBytes, Count: 20, MinRevision: int32(format.R20a)},
		{Name: "BufLength", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
		{Name: "AmplScale", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "AmplOffset", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "ChanOrder", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "DispSize", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "PlotMode", Kind: schema.KindInt16, MinRevision: int32(format.R30r)},
		{Name: "VMid", Kind: schema.KindFloat64, MinRevision: int32(format.R30r)},
		{Name: "Description", Kind: schema.KindBytes, Count: 128, MinRevision: int32(format.R370)},
		{Name: "VarSampleDivider", Kind: schema.KindInt16, MinRevision: int32(format.R370)},
		{Name: "VertPrecision", Kind: schema.KindInt16, MinRevision: int32(format.R373)},
		{Name: "ActiveSegmentColor", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R382)},
		{Name: "ActiveSegmentStyle", Kind: schema.KindInt32, MinRevision: int32(format.R382)},
	}
}

func channelPost4Fields() []schema.Field {
	return []schema.Field{
		{Name: "ChanHeaderLen", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
		{Name: "Num", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "CommentText", Kind: schema.KindBytes, Count: 40, MinRevision: int32(format.R20a)},
		{Name: "NoteColor", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R20a)},
		{Name: "DispChan", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "VoltOffset", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "VoltScale", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "UnitsText", Kind: schema.KindBytes, Count: 20, MinRevision: int32(format.R20a)},
		{Name: "BufLength", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
		{Name: "AmplScale", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "AmplOffset", Kind: schema.KindFloat64, MinRevision: int32(format.R20a)},
		{Name: "ChanOrder", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "DispSize", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "post4Reserved", Kind: schema.KindBytes, Count: 40, MinRevision: int32(format.R400B)},
		{Name: "VarSampleDivider", Kind: schema.KindInt16, MinRevision: int32(format.R400B)},
	}
}

// ChannelHeader describes one recorded channel: its sampling rate relative
// to the file base rate, its scale/offset for converting raw samples to
// physical units, and its display name and unit label.
type ChannelHeader struct {
	revision format.Revision
	layout   schema.Layout
	r        schema.Reader
	latin1   bool
}

// ParseChannelHeader binds the channel header layout for revision. latin1
// selects the text encoding used for Name and Units, per the file's
// overall encoding (revisions below R400B write Latin-1, later ones UTF-8).
func ParseChannelHeader(data []byte, revision format.Revision, order binary.ByteOrder, latin1 bool) (ChannelHeader, error) {
	fields := channelPre4Fields()
	if revision.IsPostV4() {
		fields = channelPost4Fields()
	}
	layout := schema.Bind(fields, int32(revision))
	if len(data) < layout.Len() {
		return ChannelHeader{}, fmt.Errorf("channel header: %w", errs.ErrShortRead)
	}
	return ChannelHeader{revision: revision, layout: layout, r: schema.NewReader(data, layout, order), latin1: latin1}, nil
}

// ChannelHeaderLen returns the channel header's packed size for revision,
// usable before the header itself is parsed.
func ChannelHeaderLen(revision format.Revision) int {
	fields := channelPre4Fields()
	if revision.IsPostV4() {
		fields = channelPost4Fields()
	}
	return schema.Bind(fields, int32(revision)).Len()
}

// EffectiveLen is this header's declared length in the file, which can
// exceed StructLen when the real on-disk struct carries trailing fields
// this package doesn't name.
func (h ChannelHeader) EffectiveLen() int32 { return h.r.Int32("ChanHeaderLen") }

// StructLen returns this header's own packed layout size for its revision.
func (h ChannelHeader) StructLen() int { return h.layout.Len() }

// Name is the channel's display label, trimmed of trailing NUL padding.
func (h ChannelHeader) Name() string {
	return decodeText(h.r.Bytes("CommentText", 40), h.latin1)
}

// Units is the channel's unit label, trimmed of trailing NUL padding.
func (h ChannelHeader) Units() string {
	return decodeText(h.r.Bytes("UnitsText", 20), h.latin1)
}

// PointCount is the number of samples recorded for this channel.
func (h ChannelHeader) PointCount() int32 { return h.r.Int32("BufLength") }

// OrderNum is this channel's position in the recording's channel order, the
// value markers bind to via their channel_number field (§4.G). It need not
// match the channel's index in the file's channel-header sequence.
func (h ChannelHeader) OrderNum() int { return int(h.r.Int16("ChanOrder")) }

// RawScale and RawOffset convert a raw sample value to physical units via
// physical = raw*scale + offset, except for floating point channels where
// the conversion is already baked into the stored value.
func (h ChannelHeader) RawScale() float64  { return h.r.Float64("AmplScale") }
func (h ChannelHeader) RawOffset() float64 { return h.r.Float64("AmplOffset") }

// FrequencyDivider is how many base sample periods elapse between this
// channel's samples; 1 means it samples at the file's base rate. Channels
// predating the field (revisions below R370/R400B) always divide by 1.
func (h ChannelHeader) FrequencyDivider() int {
	if !h.r.Has("VarSampleDivider") {
		return 1
	}
	d := int(h.r.Int16("VarSampleDivider"))
	if d <= 0 {
		return 1
	}
	return d
}

// trimCString drops everything from the first NUL byte onward and any
// trailing space padding, returning the remaining raw bytes undecoded.
func trimCString(b []byte) []byte {
	if b == nil {
		return nil
	}
	if i := indexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return []byte(strings.TrimRight(string(b), " "))
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
