package acq

import (
	"encoding/binary"
	"fmt"

	"github.com/acqkit/acqread/compress"
	"github.com/acqkit/acqread/section"
)

// readCompressedChannels reads each channel's independent zlib block in
// turn. The compression header itself follows the recording's declared
// byte order like every other header; only the decompressed sample
// payload is always little-endian regardless of it (a format quirk).
func readCompressedChannels(c *cursor, order binary.ByteOrder, channels []*Channel) []error {
	var errList []error
	for i, ch := range channels {
		if err := readCompressedChannel(c, order, ch); err != nil {
			errList = append(errList, fmt.Errorf("channel %d (%s): %w", i, ch.Name, err))
		}
	}
	return errList
}

func readCompressedChannel(c *cursor, order binary.ByteOrder, ch *Channel) error {
	buf, err := c.read(section.ChannelCompressionHeaderLen())
	if err != nil {
		return fmt.Errorf("reading compression header: %w", err)
	}
	h, err := section.ParseChannelCompressionHeader(buf, order)
	if err != nil {
		return err
	}

	c.skip(int64(h.LabelBytesLen()))

	compressed, err := c.read(int(h.CompressedLen()))
	if err != nil {
		return fmt.Errorf("reading compressed block: %w", err)
	}

	raw, err := compress.Decompress(compressed)
	if err != nil {
		return fmt.Errorf("inflating compressed block: %w", err)
	}

	ch.raw = widenSamples(raw, ch.Kind, binary.LittleEndian)
	return nil
}
