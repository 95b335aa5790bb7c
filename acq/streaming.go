package acq

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/acqkit/acqread/errs"
)

// chunkTargetBytes mirrors the chunk size bioread itself reads at a time:
// large enough to avoid a read syscall per sample, small enough to keep
// peak memory bounded for a pull-based consumer.
const chunkTargetBytes = 1024 * 256

// Stream pulls successive chunks of decoded samples from an uncompressed
// recording's interleaved data section without holding the whole
// recording's channel data in memory at once. Compressed recordings store
// each channel as one independent zlib block rather than an interleaved
// stream, so they have nothing to stream chunk-by-chunk; NewStream
// rejects them.
type Stream struct {
	c         *cursor
	order     binary.ByteOrder
	channels  []*Channel
	pattern   []int
	remaining []int64
	emitted   []int // per-channel count of samples yielded so far
	done      bool
}

// ChannelChunk identifies where one channel's slice of a StreamChunk lands
// in that channel's full, hypothetical point array: Start is inclusive,
// End is exclusive, so a consumer writing into an external store (e.g. an
// HDF5 dataset) can address the destination directly without re-deriving
// offsets from prior chunks.
type ChannelChunk struct {
	Channel *Channel
	Start   int
	End     int
}

// StreamChunk holds one iteration's worth of newly decoded samples per
// channel, indexed the same way as Datafile.Channels. A channel that
// contributed nothing this chunk (its divider skipped this cycle, or it
// already has all its samples) has a nil or empty slice at its index, and
// its Ranges entry has Start == End.
type StreamChunk struct {
	Samples [][]float64
	Ranges  []ChannelChunk
}

func newStream(c *cursor, order binary.ByteOrder, channels []*Channel, compressed bool) (*Stream, error) {
	if compressed {
		return nil, errs.ErrStreamingUnsupported
	}

	layouts := make([]channelLayout, len(channels))
	remaining := make([]int64, len(channels))
	for i, ch := range channels {
		layouts[i] = channelLayout{FrequencyDivider: ch.FrequencyDivider, SampleSize: ch.SampleSize()}
		remaining[i] = int64(ch.PointCount()) * int64(ch.SampleSize())
	}

	return &Stream{
		c:         c,
		order:     order,
		channels:  channels,
		pattern:   buildBytePattern(layouts, chunkTargetBytes),
		remaining: remaining,
		emitted:   make([]int, len(channels)),
	}, nil
}

// Next reads and decodes the next chunk. It returns io.EOF once every
// channel has received its declared number of samples.
func (s *Stream) Next() (*StreamChunk, error) {
	if s.done {
		return nil, io.EOF
	}

	var total int64
	for _, r := range s.remaining {
		total += r
	}
	if total <= 0 || len(s.pattern) == 0 {
		s.done = true
		return nil, io.EOF
	}

	pattern := trimBytePattern(s.pattern, s.remaining)
	if len(pattern) == 0 {
		s.done = true
		return nil, io.EOF
	}

	data, err := s.c.read(len(pattern))
	if err != nil {
		s.done = true
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}

	perChannel := splitChunkByChannel(data, pattern, len(s.channels))
	samples := make([][]float64, len(s.channels))
	ranges := make([]ChannelChunk, len(s.channels))
	for i, raw := range perChannel {
		widened := widenSamples(raw, s.channels[i].Kind, s.order)
		samples[i] = widened
		s.remaining[i] -= int64(len(raw))
		ranges[i] = ChannelChunk{Channel: s.channels[i], Start: s.emitted[i], End: s.emitted[i] + len(widened)}
		s.emitted[i] += len(widened)
	}

	return &StreamChunk{Samples: samples, Ranges: ranges}, nil
}

// readUncompressed drains a Stream into each channel's raw sample buffer.
// Used by the whole-file reader; callers who want bounded memory use
// Stream directly instead.
func readUncompressed(c *cursor, order binary.ByteOrder, channels []*Channel) []error {
	stream, err := newStream(c, order, channels, false)
	if err != nil {
		return []error{err}
	}

	for _, ch := range channels {
		ch.raw = make([]float64, 0, ch.PointCount())
	}

	var errList []error
	for {
		chunk, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			errList = append(errList, err)
			break
		}
		for i, s := range chunk.Samples {
			channels[i].raw = append(channels[i].raw, s...)
		}
	}
	for i, ch := range channels {
		if len(ch.raw) < ch.PointCount() {
			errList = append(errList, fmt.Errorf("channel %d (%s): read %d of %d samples: %w", i, ch.Name, len(ch.raw), ch.PointCount(), errs.ErrShortRead))
		}
	}
	return errList
}
