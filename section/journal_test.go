package section

import (
	"encoding/binary"
	"testing"

	"github.com/acqkit/acqread/format"
	"github.com/stretchr/testify/require"
)

func TestV2JournalHeaderTagMatches(t *testing.T) {
	buf := make([]byte, V2JournalHeaderLen())
	copy(buf[0:4], JournalTag[:])
	binary.LittleEndian.PutUint16(buf[4:6], 1)
	binary.LittleEndian.PutUint32(buf[6:10], 42)

	h, err := ParseV2JournalHeader(buf, binary.LittleEndian)
	require.NoError(t, err)
	require.True(t, h.TagMatches())
	require.Equal(t, int32(42), h.JournalLen())
}

func TestV2JournalHeaderTagMismatch(t *testing.T) {
	buf := make([]byte, V2JournalHeaderLen())
	copy(buf[0:4], []byte{0, 0, 0, 0})

	h, err := ParseV2JournalHeader(buf, binary.LittleEndian)
	require.NoError(t, err)
	require.False(t, h.TagMatches())
}

func TestV4JournalHeaderLenBeforeR420UsesEarlyField(t *testing.T) {
	revision := format.R400B
	buf := make([]byte, V4JournalHeaderLen(revision))
	binary.LittleEndian.PutUint32(buf[262:266], 99)

	h, err := ParseV4JournalHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(99), h.JournalLen())
}

func TestV4JournalHeaderLenAtR420UsesLateField(t *testing.T) {
	revision := format.R420
	layout := V4JournalHeaderLen(revision)
	buf := make([]byte, layout)
	// LateJournalLen is the last field in declaration order for R420+.
	binary.LittleEndian.PutUint32(buf[layout-4:layout], 7)

	h, err := ParseV4JournalHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(7), h.JournalLen())
}

func TestV4JournalLengthHeaderSectionLen(t *testing.T) {
	buf := make([]byte, V4JournalLengthHeaderLen())
	binary.LittleEndian.PutUint32(buf[0:4], 1024)

	h, err := ParseV4JournalLengthHeader(buf, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(1024), h.JournalSectionLen())
}

func TestJournalHeaderShortReadErrors(t *testing.T) {
	_, err := ParseV2JournalHeader([]byte{1, 2}, binary.LittleEndian)
	require.Error(t, err)
}
