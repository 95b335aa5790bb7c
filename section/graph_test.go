package section

import (
	"encoding/binary"
	"testing"

	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/schema"
	"github.com/stretchr/testify/require"
)

func putField(t *testing.T, buf []byte, revision format.Revision, name string, v int32) {
	t.Helper()
	layout := schema.Bind(graphFieldsFor(revision), int32(revision))
	off, ok := layout.Offset(name)
	require.True(t, ok, "field %s not present at revision %d", name, revision)
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(v))
}

func TestGraphHeaderChannelCountAndExtHeaderLen(t *testing.T) {
	revision := format.R20a
	buf := make([]byte, GraphHeaderLen(revision))
	layout := schema.Bind(graphFieldsFor(revision), int32(revision))
	off, _ := layout.Offset("ChannelCount")
	binary.LittleEndian.PutUint16(buf[off:off+2], 4)
	putField(t, buf, revision, "ExtItemHeaderLen", 256)

	h, err := ParseGraphHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 4, h.ChannelCount())
	require.Equal(t, int32(256), h.ExtHeaderLen())
}

func TestGraphHeaderCompressedAbsentBeforeR381(t *testing.T) {
	revision := format.R373
	buf := make([]byte, GraphHeaderLen(revision))

	h, err := ParseGraphHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.False(t, h.Compressed())
}

func TestGraphHeaderCompressedFlagPreV4(t *testing.T) {
	revision := format.R382
	buf := make([]byte, GraphHeaderLen(revision))
	putField(t, buf, revision, "Compressed", 1)

	h, err := ParseGraphHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.True(t, h.Compressed())
}

func TestGraphHeaderCompressedFlagPostV4(t *testing.T) {
	revision := format.R400B
	buf := make([]byte, GraphHeaderLen(revision))
	putField(t, buf, revision, "Compressed", 1)

	h, err := ParseGraphHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.True(t, h.Compressed())
}

func TestGraphHeaderExpectedPaddingHeadersGatedByR430(t *testing.T) {
	before := format.R420
	bufBefore := make([]byte, GraphHeaderLen(before))
	hBefore, err := ParseGraphHeader(bufBefore, before, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 0, hBefore.ExpectedPaddingHeaders())

	at := format.R430
	layout := schema.Bind(graphFieldsFor(at), int32(at))
	off, ok := layout.Offset("ExpectedPaddingHeaders")
	require.True(t, ok)
	bufAt := make([]byte, GraphHeaderLen(at))
	binary.LittleEndian.PutUint16(bufAt[off:off+2], 2)

	hAt, err := ParseGraphHeader(bufAt, at, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, 2, hAt.ExpectedPaddingHeaders())
}

func TestGraphHeaderShortReadErrors(t *testing.T) {
	_, err := ParseGraphHeader([]byte{0, 1}, format.R20a, binary.LittleEndian)
	require.Error(t, err)
}
