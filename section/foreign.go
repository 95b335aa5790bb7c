package section

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
)

// ForeignHeader precedes the channel data-type headers. Its body is opaque
// (third-party application data embedded by AcqKnowledge plugins); only its
// declared length, used to skip past it, is ever read.
type ForeignHeader struct {
	revision format.Revision
	layout   schema.Layout
	r        schema.Reader
}

func foreignFieldsFor(revision format.Revision) []schema.Field {
	if revision.IsPostV4() {
		return []schema.Field{
			{Name: "Length", Kind: schema.KindInt32, MinRevision: int32(format.R400B)},
		}
	}
	return []schema.Field{
		{Name: "Length", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
		{Name: "Type", Kind: schema.KindInt16, MinRevision: int32(format.R20a)},
	}
}

// ParseForeignHeader binds the foreign header layout for revision.
func ParseForeignHeader(data []byte, revision format.Revision, order binary.ByteOrder) (ForeignHeader, error) {
	layout := schema.Bind(foreignFieldsFor(revision), int32(revision))
	if len(data) < layout.Len() {
		return ForeignHeader{}, fmt.Errorf("foreign header: %w", errs.ErrShortRead)
	}
	return ForeignHeader{revision: revision, layout: layout, r: schema.NewReader(data, layout, order)}, nil
}

// StructLen returns this header's own packed layout size.
func (h ForeignHeader) StructLen() int { return h.layout.Len() }

// ForeignHeaderLen returns the foreign header's packed size for revision,
// usable before the header itself is parsed.
func ForeignHeaderLen(revision format.Revision) int {
	return schema.Bind(foreignFieldsFor(revision), int32(revision)).Len()
}

// EffectiveLen is the declared total extent of the foreign header block,
// which callers skip past in full regardless of StructLen.
func (h ForeignHeader) EffectiveLen() int32 {
	if h.revision.IsPostV4() {
		return h.r.Int32("Length")
	}
	return int32(h.r.Int16("Length"))
}
