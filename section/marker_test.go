package section

import (
	"encoding/binary"
	"testing"

	"github.com/acqkit/acqread/format"
	"github.com/stretchr/testify/require"
)

func TestV4MarkerHeaderMarkerCountOffByOne(t *testing.T) {
	buf := make([]byte, V4MarkerHeaderLen(format.R400B))
	binary.LittleEndian.PutUint32(buf[4:8], 6) // MarkersExtra

	h, err := ParseV4MarkerHeader(buf, format.R400B, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 5, h.MarkerCount())
}

func TestV2MarkerItemTextLengthAdjustsAtR35x(t *testing.T) {
	pre := make([]byte, V2MarkerItemHeaderLen(format.R30r))
	binary.LittleEndian.PutUint16(pre[len(pre)-2:], 10)
	hPre, err := ParseV2MarkerItemHeader(pre, format.R30r, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 10, hPre.TextLength())

	post := make([]byte, V2MarkerItemHeaderLen(format.R35x))
	binary.LittleEndian.PutUint16(post[len(post)-2:], 10)
	hPost, err := ParseV2MarkerItemHeader(post, format.R35x, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 11, hPost.TextLength())
}

// TestV4MarkerItemFieldOrderAcrossRevisions exercises the same
// declaration-order-over-threshold-order invariant the marker item schema
// depends on: DateCreated is declared between Channel/MarkerStyle and the
// later Reserved2/TextLength fields despite having the highest MinRevision
// of the group, so its presence or absence shifts every field after it.
func TestV4MarkerItemFieldOrderAcrossRevisions(t *testing.T) {
	// At R440, DateCreated is present: TextLength sits after an extra 8
	// bytes for it plus the 8-byte Reserved2 field.
	buf440 := make([]byte, V4MarkerItemHeaderLen(format.R440))
	require.Equal(t, 32, len(buf440))
	binary.LittleEndian.PutUint16(buf440[30:32], 99)
	h440, err := ParseV4MarkerItemHeader(buf440, format.R440, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 99, h440.TextLength())
	_, ok := h440.DateCreatedMs()
	require.True(t, ok)

	// At R42x (below R440), DateCreated is absent entirely, shifting
	// TextLength 8 bytes earlier.
	buf42x := make([]byte, V4MarkerItemHeaderLen(format.R42x))
	require.Equal(t, 24, len(buf42x))
	binary.LittleEndian.PutUint16(buf42x[22:24], 99)
	h42x, err := ParseV4MarkerItemHeader(buf42x, format.R42x, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 99, h42x.TextLength())
	_, ok = h42x.DateCreatedMs()
	require.False(t, ok)
}

func TestV4MarkerItemChannelNumberAndTypeCode(t *testing.T) {
	buf := make([]byte, V4MarkerItemHeaderLen(format.R400B))
	binary.LittleEndian.PutUint16(buf[8:10], uint16(int16(-1)))
	copy(buf[10:14], []byte("flag"))

	h, err := ParseV4MarkerItemHeader(buf, format.R400B, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, -1, h.ChannelNumber())
	require.Equal(t, "flag", h.TypeCode())
}

func TestV2MarkerMetadataPreHeaderTagMatches(t *testing.T) {
	buf := make([]byte, V2MarkerMetadataPreHeaderLen())
	copy(buf[0:4], JournalTag[:])
	binary.LittleEndian.PutUint32(buf[4:8], 3)

	h, err := ParseV2MarkerMetadataPreHeader(buf, binary.LittleEndian)
	require.NoError(t, err)
	require.True(t, h.TagMatches())
	require.Equal(t, 3, h.ItemCount())
}

func TestV2MarkerMetadataMarkerIndexIsZeroBased(t *testing.T) {
	buf := make([]byte, V2MarkerMetadataHeaderLen())
	binary.LittleEndian.PutUint32(buf[4:8], 1) // MarkerNumber, 1-based

	h, err := ParseV2MarkerMetadataHeader(buf, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 0, h.MarkerIndex())
}
