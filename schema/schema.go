// Package schema compiles a versioned list of header fields into the
// concrete, packed byte layout a single file revision actually uses.
//
// AcqKnowledge headers are not one fixed struct: fields were appended (and
// occasionally interleaved) across more than twenty released revisions of
// the producing application, and each field only exists in the layout once
// the file's revision reaches that field's minimum. This package applies
// that filter once per header instance and hands back a Layout that knows
// the byte offset of every surviving field, in the same way a C compiler
// would lay out a struct whose members are guarded by #if blocks.
package schema

import (
	"encoding/binary"
	"math"
)

// Kind identifies how a field's bytes should be interpreted.
type Kind int

const (
	// KindBytes is an opaque byte run: reserved padding, fixed-length text,
	// or any field no decoding component reads directly.
	KindBytes Kind = iota
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat64
)

func (k Kind) size() int {
	switch k {
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat64:
		return 4 // overridden for KindFloat64 below; see Field.Size
	case KindInt64, KindUint64:
		return 8
	default:
		return 0
	}
}

// Field describes one named member of a versioned header, in file
// declaration order. Count is the byte length for KindBytes fields and is
// ignored for scalar kinds.
type Field struct {
	Name        string
	Kind        Kind
	Count       int
	MinRevision int32
}

// Size returns the number of bytes Field occupies in the packed layout.
func (f Field) Size() int {
	if f.Kind == KindBytes {
		return f.Count
	}
	if f.Kind == KindFloat64 {
		return 8
	}
	return f.Kind.size()
}

// Layout is the result of binding a Field list to a specific revision: the
// subset of fields the revision includes, in order, each at a fixed offset.
type Layout struct {
	fields  []Field
	offsets map[string]int
	total   int
}

// Bind filters fields to those whose MinRevision is satisfied by revision,
// preserving declaration order, and computes each surviving field's packed
// byte offset by accumulating sizes exactly the way a packed C struct would.
//
// Declaration order matters independently of the MinRevision values: two
// fields with different thresholds can still swap which one comes first in
// the byte layout depending on which fields between them the current
// revision keeps, so Bind must walk the list once, in order, rather than
// sort by revision.
func Bind(fields []Field, revision int32) Layout {
	offsets := make(map[string]int, len(fields))
	kept := make([]Field, 0, len(fields))
	cur := 0
	for _, f := range fields {
		if f.MinRevision > revision {
			continue
		}
		offsets[f.Name] = cur
		cur += f.Size()
		kept = append(kept, f)
	}
	return Layout{fields: kept, offsets: offsets, total: cur}
}

// Len returns the total packed size in bytes of the bound layout.
func (l Layout) Len() int { return l.total }

// Has reports whether a field survived revision filtering.
func (l Layout) Has(name string) bool {
	_, ok := l.offsets[name]
	return ok
}

// Offset returns a field's byte offset within the packed layout.
func (l Layout) Offset(name string) (int, bool) {
	o, ok := l.offsets[name]
	return o, ok
}

// Reader decodes fields out of a raw header buffer according to a bound
// Layout and byte order. Reading an absent field returns the type's zero
// value rather than panicking, since callers typically guard with Has only
// when the zero value would otherwise be ambiguous.
type Reader struct {
	data   []byte
	layout Layout
	order  binary.ByteOrder
}

// NewReader wraps data (which must be at least layout.Len() bytes) for
// field-by-field decoding.
func NewReader(data []byte, layout Layout, order binary.ByteOrder) Reader {
	return Reader{data: data, layout: layout, order: order}
}

// Has reports whether a field exists in the bound layout.
func (r Reader) Has(name string) bool { return r.layout.Has(name) }

func (r Reader) slice(name string, n int) []byte {
	off, ok := r.layout.Offset(name)
	if !ok || off+n > len(r.data) {
		return nil
	}
	return r.data[off : off+n]
}

// Int16 returns a signed 16-bit field, or 0 if absent.
func (r Reader) Int16(name string) int16 {
	b := r.slice(name, 2)
	if b == nil {
		return 0
	}
	return int16(r.order.Uint16(b))
}

// Uint16 returns an unsigned 16-bit field, or 0 if absent.
func (r Reader) Uint16(name string) uint16 {
	b := r.slice(name, 2)
	if b == nil {
		return 0
	}
	return r.order.Uint16(b)
}

// Int32 returns a signed 32-bit field, or 0 if absent.
func (r Reader) Int32(name string) int32 {
	b := r.slice(name, 4)
	if b == nil {
		return 0
	}
	return int32(r.order.Uint32(b))
}

// Uint32 returns an unsigned 32-bit field, or 0 if absent.
func (r Reader) Uint32(name string) uint32 {
	b := r.slice(name, 4)
	if b == nil {
		return 0
	}
	return r.order.Uint32(b)
}

// Int64 returns a signed 64-bit field, or 0 if absent.
func (r Reader) Int64(name string) int64 {
	b := r.slice(name, 8)
	if b == nil {
		return 0
	}
	return int64(r.order.Uint64(b))
}

// Uint64 returns an unsigned 64-bit field, or 0 if absent.
func (r Reader) Uint64(name string) uint64 {
	b := r.slice(name, 8)
	if b == nil {
		return 0
	}
	return r.order.Uint64(b)
}

// Float64 returns an IEEE-754 double field, or 0 if absent.
func (r Reader) Float64(name string) float64 {
	b := r.slice(name, 8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(r.order.Uint64(b))
}

// Bytes returns the raw n-byte run backing a KindBytes field, or nil if
// absent.
func (r Reader) Bytes(name string, n int) []byte {
	return r.slice(name, n)
}
