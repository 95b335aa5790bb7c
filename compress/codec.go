// Package compress implements the single compression scheme AcqKnowledge
// ever uses for channel data: raw zlib (RFC 1950) blocks, one per channel,
// always written in little-endian regardless of the recording's declared
// byte order. Unlike a general-purpose time-series store, the format gives
// a reader no algorithm choice to make, so this package has one codec
// rather than a registry of them.
package compress

// Compressor compresses a channel's raw sample bytes before they are
// written to a recording.
//
// Compress is only exercised by tooling that synthesizes recordings for
// tests; reading a recording never calls it.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Internal buffers may be reused for efficiency
	Compress(data []byte) ([]byte, error)
}

// Decompressor inflates one channel's compressed block back to its raw
// sample bytes.
type Decompressor interface {
	// Decompress decompresses data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if data is truncated or corrupted
	//   - Returns error if data is not a valid zlib stream
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes the outcome of compressing or decompressing
// one channel's block.
type CompressionStats struct {
	// OriginalSize is the size of the data before compression.
	OriginalSize int64

	// CompressedSize is the size of the data after compression.
	CompressedSize int64
}

// CompressionRatio returns the ratio of compressed size to original size.
//
// Values less than 1.0 indicate successful compression. Returns 0.0 if
// OriginalSize is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}
