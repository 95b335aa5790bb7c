package section

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaddingHeaderEffectiveLen(t *testing.T) {
	buf := make([]byte, PaddingHeaderLen())
	binary.LittleEndian.PutUint32(buf[0:4], 40)

	h, err := ParsePaddingHeader(buf, binary.LittleEndian)
	require.NoError(t, err)
	require.Equal(t, int32(40), h.EffectiveLen())
	require.Equal(t, PaddingHeaderLen(), h.StructLen())
}

func TestPaddingHeaderShortReadErrors(t *testing.T) {
	_, err := ParsePaddingHeader([]byte{1, 2}, binary.LittleEndian)
	require.Error(t, err)
}
