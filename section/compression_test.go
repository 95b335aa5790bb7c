package section

import (
	"encoding/binary"
	"testing"

	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
	"github.com/stretchr/testify/require"
)

func TestMainCompressionHeaderTrailingTextLenPreV4(t *testing.T) {
	revision := format.R382
	fields := mainCompressionFieldsFor(revision)
	layout := schema.Bind(fields, int32(revision))
	buf := make([]byte, layout.Len())
	off, ok := layout.Offset("TextLen")
	require.True(t, ok)
	binary.LittleEndian.PutUint32(buf[off:off+4], 100)

	h, err := ParseMainCompressionHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(100), h.TrailingTextLen())
	require.Equal(t, int32(h.StructLen())+100, h.EffectiveLen())
}

func TestMainCompressionHeaderTrailingTextLenPostV4SumsTwoFields(t *testing.T) {
	revision := format.R400B
	fields := mainCompressionFieldsFor(revision)
	layout := schema.Bind(fields, int32(revision))
	buf := make([]byte, layout.Len())
	off1, _ := layout.Offset("TextLen1")
	off2, _ := layout.Offset("TextLen2")
	binary.LittleEndian.PutUint32(buf[off1:off1+4], 40)
	binary.LittleEndian.PutUint32(buf[off2:off2+4], 60)

	h, err := ParseMainCompressionHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(100), h.TrailingTextLen())
}

func TestChannelCompressionHeaderFields(t *testing.T) {
	buf := make([]byte, ChannelCompressionHeaderLen())
	binary.LittleEndian.PutUint32(buf[44:48], 10) // ChannelLabelLen
	binary.LittleEndian.PutUint32(buf[48:52], 5)  // UnitLabelLen
	binary.LittleEndian.PutUint32(buf[52:56], 800) // UncompressedLen
	binary.LittleEndian.PutUint32(buf[56:60], 200) // CompressedLen

	h, err := ParseChannelCompressionHeader(buf, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(800), h.UncompressedLen())
	require.Equal(t, int32(200), h.CompressedLen())
	require.Equal(t, int32(15), h.LabelBytesLen())
	require.Equal(t, 60, h.StructLen())
}

func TestChannelCompressionHeaderShortReadErrors(t *testing.T) {
	_, err := ParseChannelCompressionHeader(make([]byte, 10), binary.LittleEndian)
	require.Error(t, err)
}
