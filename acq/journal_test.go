package acq

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/section"
	"github.com/stretchr/testify/require"
)

func TestReadJournalV2(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(section.JournalTag[:])
	binary.Write(&buf, binary.LittleEndian, int16(1))
	text := []byte("operator notes\x00\x00")
	binary.Write(&buf, binary.LittleEndian, int32(len(text)))
	buf.Write(text)

	r := bytes.NewReader(buf.Bytes())
	c := newCursor(r, 0)

	journal, err := readJournal(c, format.R20a, binary.LittleEndian, true)
	require.NoError(t, err)
	require.Equal(t, "operator notes", journal)
}

func TestReadJournalV2TagMismatchErrors(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0})
	binary.Write(&buf, binary.LittleEndian, int16(0))
	binary.Write(&buf, binary.LittleEndian, int32(0))

	c := newCursor(bytes.NewReader(buf.Bytes()), 0)
	_, err := readJournal(c, format.R20a, binary.LittleEndian, true)
	require.Error(t, err)
}

func TestReadJournalV4AbsentWhenSectionTooShortForHeader(t *testing.T) {
	revision := format.R400B

	var buf bytes.Buffer
	// Declare a section shorter than a full V4JournalHeader: no journal
	// header or text follows, only padding out to dataEnd. The section
	// length is counted from the start of the length header itself.
	sectionLen := int32(4)
	binary.Write(&buf, binary.LittleEndian, sectionLen)
	buf.Write(make([]byte, int(sectionLen)-section.V4JournalLengthHeaderLen()))

	c := newCursor(bytes.NewReader(buf.Bytes()), 0)
	journal, err := readJournal(c, revision, binary.LittleEndian, false)
	require.NoError(t, err)
	require.Equal(t, "", journal)
	require.Equal(t, int64(sectionLen), c.tell())
}

func TestReadJournalV4PresentWhenSectionCoversHeader(t *testing.T) {
	revision := format.R400B
	headerLen := section.V4JournalHeaderLen(revision)
	text := []byte("session comments")

	header := make([]byte, headerLen)
	// EarlyJournalLen sits right after the 262-byte Reserved1 run for
	// revisions below R420.
	binary.LittleEndian.PutUint32(header[262:266], uint32(len(text)))

	sectionLen := int32(section.V4JournalLengthHeaderLen() + headerLen + len(text))

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, sectionLen)
	buf.Write(header)
	buf.Write(text)

	c := newCursor(bytes.NewReader(buf.Bytes()), 0)
	journal, err := readJournal(c, revision, binary.LittleEndian, false)
	require.NoError(t, err)
	require.Equal(t, "session comments", journal)
	require.Equal(t, int64(sectionLen), c.tell())
}
