package section

import (
	"encoding/binary"
	"testing"

	"github.com/acqkit/acqread/format"
	"github.com/stretchr/testify/require"
)

func TestForeignHeaderEffectiveLenPreV4UsesInt16(t *testing.T) {
	revision := format.R20a
	buf := make([]byte, ForeignHeaderLen(revision))
	binary.LittleEndian.PutUint16(buf[0:2], 12)

	h, err := ParseForeignHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(12), h.EffectiveLen())
}

func TestForeignHeaderEffectiveLenPostV4UsesInt32(t *testing.T) {
	revision := format.R400B
	buf := make([]byte, ForeignHeaderLen(revision))
	binary.LittleEndian.PutUint32(buf[0:4], 4096)

	h, err := ParseForeignHeader(buf, revision, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(4096), h.EffectiveLen())
}

func TestForeignHeaderShortReadErrors(t *testing.T) {
	_, err := ParseForeignHeader([]byte{}, format.R20a, binary.LittleEndian)
	require.Error(t, err)
}
