package acq

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/section"
	"github.com/stretchr/testify/require"
)

func dtypeBytes(size, typ int16) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(size))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(typ))
	return buf
}

func TestScanForDTypeHeadersFindsRunAtExactOffset(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(dtypeBytes(8, section.DTypeDoubleA))
	buf.Write(dtypeBytes(2, section.DTypeInt16))

	c := newCursor(bytes.NewReader(buf.Bytes()), 0)
	headers, dataStart, err := scanForDTypeHeaders(c, 0, 2, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, headers, 2)
	require.Equal(t, 8, headers[0].SampleSize())
	require.Equal(t, 2, headers[1].SampleSize())
	require.Equal(t, int64(8), dataStart)
}

func TestScanForDTypeHeadersSkipsGarbageUntilValidRun(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF}) // not a valid dtype header
	buf.Write(dtypeBytes(8, section.DTypeDoubleB))

	c := newCursor(bytes.NewReader(buf.Bytes()), 0)
	headers, dataStart, err := scanForDTypeHeaders(c, 0, 1, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	require.Equal(t, int64(8), dataStart)
}

func TestScanForDTypeHeadersExhaustsWindow(t *testing.T) {
	c := newCursor(bytes.NewReader(nil), 0)
	_, _, err := scanForDTypeHeaders(c, 0, 1, binary.LittleEndian)
	require.ErrorIs(t, err, errs.ErrDTypeScanExhausted)
}
