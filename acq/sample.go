package acq

import (
	"encoding/binary"
	"math"
)

// channelLayout is the subset of a channel's facts the sample demuxer
// needs, kept separate from *Channel so the pattern math can be exercised
// without constructing a whole channel.
type channelLayout struct {
	FrequencyDivider int
	SampleSize       int
}

// buildSamplePattern computes the repeating sequence of channel indices a
// recording's interleaved sample stream cycles through. Channels sampled
// at the file's base rate (divider 1) appear once per cycle; a channel
// with divider n appears once every n cycle rows. The cycle length is the
// least common multiple of every divider, so each channel's occurrence
// count per cycle divides evenly.
//
// For three channels with dividers [1, 4, 2] this yields
// [0 1 2 0 0 2 0], matching the interleave AcqKnowledge itself writes.
func buildSamplePattern(dividers []int) []int {
	base := 1
	for _, d := range dividers {
		base = lcm(base, d)
	}
	pattern := make([]int, 0, base*len(dividers))
	for row := 0; row < base; row++ {
		for ch, d := range dividers {
			if row%d == 0 {
				pattern = append(pattern, ch)
			}
		}
	}
	return pattern
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}

// buildBytePattern expands a sample-index pattern to the byte level (each
// channel's occurrence repeated SampleSize times) and tiles it enough to
// reach roughly targetChunkBytes, the unit a chunk read pulls at once.
func buildBytePattern(layouts []channelLayout, targetChunkBytes int) []int {
	dividers := make([]int, len(layouts))
	for i, l := range layouts {
		d := l.FrequencyDivider
		if d <= 0 {
			d = 1
		}
		dividers[i] = d
	}
	samplePattern := buildSamplePattern(dividers)

	bytePattern := make([]int, 0, len(samplePattern)*8)
	for _, ch := range samplePattern {
		for b := 0; b < layouts[ch].SampleSize; b++ {
			bytePattern = append(bytePattern, ch)
		}
	}
	if len(bytePattern) == 0 {
		return bytePattern
	}

	reps := targetChunkBytes / len(bytePattern)
	if reps < 1 {
		reps = 1
	}
	tiled := make([]int, 0, len(bytePattern)*reps)
	for i := 0; i < reps; i++ {
		tiled = append(tiled, bytePattern...)
	}
	return tiled
}

// trimBytePattern shortens pattern to fit however many bytes actually
// remain in each channel. Near the end of a recording a slow-sampling
// channel can run out before the rest of the chunk pattern would expect
// it to, so the normal tiled pattern has to be trimmed channel-by-channel
// rather than read wholesale and discarded.
func trimBytePattern(pattern []int, remaining []int64) []int {
	counts := make([]int64, len(remaining))
	for _, ch := range pattern {
		counts[ch]++
	}

	fits := true
	for ch, cnt := range counts {
		if cnt > remaining[ch] {
			fits = false
			break
		}
	}
	if fits {
		return pattern
	}

	used := make([]int64, len(remaining))
	out := make([]int, 0, len(pattern))
	for _, ch := range pattern {
		if used[ch] < remaining[ch] {
			out = append(out, ch)
			used[ch]++
		}
	}
	return out
}

// splitChunkByChannel separates one interleaved chunk's bytes back out per
// channel, in the order they occurred.
func splitChunkByChannel(data []byte, pattern []int, channelCount int) [][]byte {
	counts := make([]int, channelCount)
	for _, ch := range pattern {
		counts[ch]++
	}
	out := make([][]byte, channelCount)
	for i := range out {
		out[i] = make([]byte, 0, counts[i])
	}
	for i, ch := range pattern {
		out[ch] = append(out[ch], data[i])
	}
	return out
}

// widenSamples decodes a channel's raw bytes to float64 according to its
// on-disk sample width and the recording's byte order. Int16 channels are
// widened as-is; physical-unit scaling happens later in Channel.Data.
func widenSamples(raw []byte, kind SampleKind, order binary.ByteOrder) []float64 {
	if kind == SampleInt16 {
		n := len(raw) / 2
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			out[i] = float64(int16(order.Uint16(raw[i*2 : i*2+2])))
		}
		return out
	}

	n := len(raw) / 8
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float64frombits(order.Uint64(raw[i*8 : i*8+8]))
	}
	return out
}
