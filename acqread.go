// Package acqread decodes AcqKnowledge/BIOPAC physiological recording
// files (.acq): a versioned binary format that interleaves or
// zlib-compresses per-channel numeric samples alongside markers and free-
// text journal annotations.
//
// # Core Features
//
//   - Automatic byte-order and file-revision detection — nothing about a
//     recording's format needs to be known in advance
//   - Per-channel scaling, frequency-divider-aware sample rates, and
//     upsampled views aligned to the recording's base rate
//   - Both compressed (independent per-channel zlib blocks) and
//     uncompressed (interleaved) recordings
//   - Marker and journal text decoding across both the pre-4.0 and post-4.0
//     header families, with revision-appropriate Latin-1/UTF-8 handling
//   - A pull-based chunk streaming API for uncompressed recordings that
//     don't fit comfortably in memory
//
// # Basic Usage
//
//	f, err := os.Open("recording.acq")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	data, err := acqread.Read(f)
//	if err != nil {
//	    return err
//	}
//
//	for _, ch := range data.Channels {
//	    fmt.Printf("%s: %d samples at %.2f Hz\n", ch.Name, ch.PointCount(), ch.SamplesPerSecond)
//	}
//
// Reading only metadata, without decoding any sample data:
//
//	data, err := acqread.ReadHeaders(f)
//
// Streaming an uncompressed recording's samples in bounded-memory chunks:
//
//	stream, data, err := acqread.ReaderForStreaming(f)
//	if err != nil {
//	    return err
//	}
//	for {
//	    chunk, err := stream.Next()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // chunk.Samples[i] holds the newly decoded samples for data.Channels[i];
//	    // chunk.Ranges[i] gives the [Start, End) slice those samples occupy
//	    // in that channel's full point array.
//	}
//
// # Package Structure
//
// This package is a thin, convenience-oriented wrapper around acq, which
// implements the actual header and sample decoding. Read, ReadHeaders and
// ReaderForStreaming call acq.Walk, acq.WalkHeaders and acq.NewStream
// directly; acq exports no finer-grained entry points than these three.
package acqread

import (
	"io"

	"github.com/acqkit/acqread/acq"
)

// Datafile is a fully (or, via ReadHeaders, partially) decoded recording.
type Datafile = acq.Datafile

// Channel is one recorded signal: its sampling characteristics, scaling
// coefficients, and samples.
type Channel = acq.Channel

// EventMarker is a single annotation placed at a sample index.
type EventMarker = acq.EventMarker

// Stream pulls successive chunks of decoded samples from an uncompressed
// recording without holding the whole recording in memory at once.
type Stream = acq.Stream

// StreamChunk holds one Stream iteration's worth of newly decoded samples.
type StreamChunk = acq.StreamChunk

// ChannelChunk locates one channel's slice of a StreamChunk within that
// channel's full point array.
type ChannelChunk = acq.ChannelChunk

// Read decodes a complete recording: every channel's metadata and sample
// data, markers, and journal text.
//
// Parameters:
//   - r: the recording's bytes, as an io.ReaderAt (an *os.File or a
//     bytes.Reader both satisfy this)
//
// Returns:
//   - *Datafile: the decoded recording. Recoverable per-section failures
//     (a truncated marker, a channel block that fails to inflate) are
//     collected into Datafile.Errors rather than surfaced as the returned
//     error; the returned error is non-nil only when the recording's
//     structural backbone can't be established at all.
//   - error: non-nil when byte order/revision detection, the graph
//     header, the channel headers, the foreign header, or the data-type
//     header scan fail.
func Read(r io.ReaderAt) (*Datafile, error) {
	return acq.Walk(r)
}

// ReadHeaders decodes a recording's structure and metadata — channels,
// markers, journal text — without reading any sample data, for callers
// that only need to inspect a recording cheaply.
func ReadHeaders(r io.ReaderAt) (*Datafile, error) {
	return acq.WalkHeaders(r)
}

// ReaderForStreaming sets up a pull-based chunk iterator over an
// uncompressed recording's sample data, alongside its fully decoded
// headers, markers, and journal text.
//
// Returns:
//   - *Stream: nil if the recording is compressed
//   - *Datafile: the decoded headers/markers/journal; non-nil even when
//     streaming isn't supported, so callers can still inspect metadata
//   - error: errs.ErrStreamingUnsupported if the recording stores
//     channels as independent compressed blocks rather than an
//     interleaved stream
func ReaderForStreaming(r io.ReaderAt) (*Stream, *Datafile, error) {
	return acq.NewStream(r)
}
