package section

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
)

// JournalTag is the sentinel byte sequence a pre-4 journal header starts
// with; if the bytes at the expected offset don't match, the file doesn't
// actually carry a journal there.
var JournalTag = [4]byte{0x44, 0x33, 0x22, 0x11}

var v2JournalFields = []schema.Field{
	{Name: "Tag", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R20a)},
	{Name: "Show", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
	{Name: "JournalLen", Kind: schema.KindInt32, MinRevision: int32(format.R20a)},
}

// V2JournalHeader is the pre-4 journal header: a sentinel tag, a visibility
// flag, and the journal text length.
type V2JournalHeader struct {
	layout schema.Layout
	r      schema.Reader
}

// ParseV2JournalHeader binds the pre-4 journal header layout.
func ParseV2JournalHeader(data []byte, order binary.ByteOrder) (V2JournalHeader, error) {
	layout := schema.Bind(v2JournalFields, int32(format.R20a))
	if len(data) < layout.Len() {
		return V2JournalHeader{}, fmt.Errorf("journal header: %w", errs.ErrShortRead)
	}
	return V2JournalHeader{layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

// StructLen returns this header's packed layout size.
func (h V2JournalHeader) StructLen() int { return h.layout.Len() }

// TagMatches reports whether the header's leading tag is the expected
// sentinel; a mismatch means there's no journal at this offset.
func (h V2JournalHeader) TagMatches() bool {
	return [4]byte(h.r.Bytes("Tag", 4)) == JournalTag
}

// JournalLen is the byte length of the journal text that follows.
func (h V2JournalHeader) JournalLen() int32 { return h.r.Int32("JournalLen") }

var v4JournalFields = []schema.Field{
	{Name: "Reserved1", Kind: schema.KindBytes, Count: 262, MinRevision: int32(format.R400B)},
	{Name: "EarlyJournalLen", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
	{Name: "Reserved2", Kind: schema.KindBytes, Count: 290, MinRevision: int32(format.R400B)},
	{Name: "Reserved3", Kind: schema.KindBytes, Count: 26, MinRevision: int32(format.R420)},
	{Name: "Reserved4", Kind: schema.KindBytes, Count: 4, MinRevision: int32(format.R440)},
	{Name: "LateJournalLenMinusOne", Kind: schema.KindInt32, MinRevision: int32(format.R420)},
	{Name: "LateJournalLen", Kind: schema.KindInt32, MinRevision: int32(format.R420)},
}

// V4JournalHeader is the post-4 journal header. Its own struct length is
// compared against the journal length header's declared size to decide
// whether a journal body is actually present at all.
type V4JournalHeader struct {
	revision format.Revision
	layout   schema.Layout
	r        schema.Reader
}

// ParseV4JournalHeader binds the post-4 journal header layout.
func ParseV4JournalHeader(data []byte, revision format.Revision, order binary.ByteOrder) (V4JournalHeader, error) {
	layout := schema.Bind(v4JournalFields, int32(revision))
	if len(data) < layout.Len() {
		return V4JournalHeader{}, fmt.Errorf("journal header: %w", errs.ErrShortRead)
	}
	return V4JournalHeader{revision: revision, layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

// StructLen returns this header's own packed layout size for its revision.
func (h V4JournalHeader) StructLen() int { return h.layout.Len() }

// JournalLen is the byte length of the journal text that follows, taken
// from whichever length field this revision wrote.
func (h V4JournalHeader) JournalLen() int32 {
	if h.revision < format.R420 {
		return h.r.Int32("EarlyJournalLen")
	}
	return h.r.Int32("LateJournalLen")
}

var v4JournalLengthFields = []schema.Field{
	{Name: "JournalDataLen", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
}

// V4JournalLengthHeader starts the post-4 journal section and declares
// its total extent (this length header, then the journal header and text
// when present) even when no journal text was written.
type V4JournalLengthHeader struct {
	layout schema.Layout
	r      schema.Reader
}

// ParseV4JournalLengthHeader binds the journal length header layout.
func ParseV4JournalLengthHeader(data []byte, order binary.ByteOrder) (V4JournalLengthHeader, error) {
	layout := schema.Bind(v4JournalLengthFields, int32(format.R400B))
	if len(data) < layout.Len() {
		return V4JournalLengthHeader{}, fmt.Errorf("journal length header: %w", errs.ErrShortRead)
	}
	return V4JournalLengthHeader{layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

// StructLen returns this header's packed layout size.
func (h V4JournalLengthHeader) StructLen() int { return h.layout.Len() }

// JournalSectionLen is the total byte extent of the journal section,
// counted from the start of this length header (so it includes this
// header, then the journal header and text, if present).
func (h V4JournalLengthHeader) JournalSectionLen() int32 { return h.r.Int32("JournalDataLen") }

// V2JournalHeaderLen returns the pre-4 journal header's packed size.
func V2JournalHeaderLen() int {
	return schema.Bind(v2JournalFields, int32(format.R20a)).Len()
}

// V4JournalHeaderLen returns the post-4 journal header's packed size for
// the given revision.
func V4JournalHeaderLen(revision format.Revision) int {
	return schema.Bind(v4JournalFields, int32(revision)).Len()
}

// V4JournalLengthHeaderLen returns the journal length header's packed
// size.
func V4JournalLengthHeaderLen() int {
	return schema.Bind(v4JournalLengthFields, int32(format.R400B)).Len()
}
