package acq

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/section"
)

// maxDTypeScans bounds how far past the foreign header the scanner will
// look for a valid run of channel data-type headers. Some recordings don't
// place them immediately after the foreign header and there's no field
// that says where they actually start, so this is a brute-force search
// over plausible byte offsets.
const maxDTypeScans = 4096

// scanForDTypeHeaders looks for channelCount consecutive ChannelDTypeHeader
// records starting at startOffset, trying each successive byte offset up
// to maxDTypeScans past it until every header in the run passes
// PossiblyValid. It returns the headers and the offset immediately past
// the run (where sample data begins).
func scanForDTypeHeaders(c *cursor, startOffset int64, channelCount int, order binary.ByteOrder) ([]section.ChannelDTypeHeader, int64, error) {
	for i := 0; i < maxDTypeScans; i++ {
		candidate := startOffset + int64(i)
		headers := make([]section.ChannelDTypeHeader, 0, channelCount)
		ok := true
		pos := candidate
		for n := 0; n < channelCount; n++ {
			buf, err := c.readAt(pos, section.DTypeHeaderSize)
			if err != nil {
				ok = false
				break
			}
			h, err := section.ParseChannelDTypeHeader(buf, order)
			if err != nil || !h.PossiblyValid() {
				ok = false
				break
			}
			headers = append(headers, h)
			pos += section.DTypeHeaderSize
		}
		if ok {
			return headers, pos, nil
		}
	}
	return nil, 0, fmt.Errorf("scanned %d offsets from %d: %w", maxDTypeScans, startOffset, errs.ErrDTypeScanExhausted)
}
