package schema

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBindPreservesDeclarationOrder is the critical invariant this package
// exists to get right: a field declared earlier in the list keeps its
// earlier offset even when a field between it and the next kept field has
// a higher MinRevision than a field declared later. Offsets come from a
// single ordered walk, never from sorting by MinRevision.
func TestBindPreservesDeclarationOrder(t *testing.T) {
	fields := []Field{
		{Name: "A", Kind: KindInt32, MinRevision: 0},
		{Name: "HighThreshold", Kind: KindBytes, Count: 6, MinRevision: 128},
		{Name: "LowThreshold", Kind: KindInt16, MinRevision: 121},
		{Name: "B", Kind: KindInt32, MinRevision: 0},
	}

	// At revision 121, HighThreshold (min 128) is filtered out but
	// LowThreshold (min 121) survives, keeping its declared position.
	layout := Bind(fields, 121)
	require.True(t, layout.Has("A"))
	require.True(t, layout.Has("LowThreshold"))
	require.False(t, layout.Has("HighThreshold"))

	aOff, _ := layout.Offset("A")
	lowOff, _ := layout.Offset("LowThreshold")
	bOff, _ := layout.Offset("B")
	require.Equal(t, 0, aOff)
	require.Equal(t, 4, lowOff)
	require.Equal(t, 6, bOff)
	require.Equal(t, 10, layout.Len())

	// At revision 128, both gated fields are present, in declaration order.
	layout2 := Bind(fields, 128)
	aOff2, _ := layout2.Offset("A")
	highOff2, _ := layout2.Offset("HighThreshold")
	lowOff2, _ := layout2.Offset("LowThreshold")
	bOff2, _ := layout2.Offset("B")
	require.Equal(t, 0, aOff2)
	require.Equal(t, 4, highOff2)
	require.Equal(t, 10, lowOff2)
	require.Equal(t, 12, bOff2)
	require.Equal(t, 16, layout2.Len())
}

func TestBindDropsFieldsBelowRevision(t *testing.T) {
	fields := []Field{
		{Name: "Old", Kind: KindInt16, MinRevision: 0},
		{Name: "New", Kind: KindInt16, MinRevision: 100},
	}
	layout := Bind(fields, 50)
	require.True(t, layout.Has("Old"))
	require.False(t, layout.Has("New"))
	require.Equal(t, 2, layout.Len())
}

func TestReaderDecodesScalarKinds(t *testing.T) {
	fields := []Field{
		{Name: "I16", Kind: KindInt16, MinRevision: 0},
		{Name: "U32", Kind: KindUint32, MinRevision: 0},
		{Name: "F64", Kind: KindFloat64, MinRevision: 0},
		{Name: "Raw", Kind: KindBytes, Count: 3, MinRevision: 0},
	}
	layout := Bind(fields, 0)

	data := make([]byte, layout.Len())
	binary.LittleEndian.PutUint16(data[0:2], uint16(int16(-5)))
	binary.LittleEndian.PutUint32(data[2:6], 123456)
	binary.LittleEndian.PutUint64(data[6:14], 0x3FF0000000000000) // 1.0
	copy(data[14:17], []byte("abc"))

	r := NewReader(data, layout, binary.LittleEndian)
	require.Equal(t, int16(-5), r.Int16("I16"))
	require.Equal(t, uint32(123456), r.Uint32("U32"))
	require.Equal(t, 1.0, r.Float64("F64"))
	require.Equal(t, []byte("abc"), r.Bytes("Raw", 3))
}

func TestReaderZeroValueForAbsentField(t *testing.T) {
	fields := []Field{
		{Name: "Gated", Kind: KindInt32, MinRevision: 100},
	}
	layout := Bind(fields, 0)
	require.False(t, layout.Has("Gated"))

	r := NewReader(nil, layout, binary.LittleEndian)
	require.False(t, r.Has("Gated"))
	require.Equal(t, int32(0), r.Int32("Gated"))
	require.Nil(t, r.Bytes("Gated", 4))
}
