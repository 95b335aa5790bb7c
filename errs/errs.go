// Package errs collects the sentinel errors returned by the decoding
// packages so callers can distinguish failure modes with errors.Is instead
// of string matching.
package errs

import "errors"

var (
	// ErrShortRead is returned when fewer bytes are available than a
	// header's packed layout needs, or when an uncompressed channel ends up
	// with fewer samples than its header declares.
	ErrShortRead = errors.New("acqread: short read")

	// ErrNoValidByteOrder is returned when neither little- nor big-endian
	// interpretation of the leading header yields a plausible revision.
	ErrNoValidByteOrder = errors.New("acqread: no byte order produces a valid revision")

	// ErrDTypeScanExhausted is returned when the channel data-type header
	// scanner exhausts its search window without finding a run of headers
	// that all pass the validity check.
	ErrDTypeScanExhausted = errors.New("acqread: exhausted scan window looking for channel data-type headers")

	// ErrJournalTagMismatch is returned when a pre-4 journal header's
	// sentinel tag doesn't match the expected value.
	ErrJournalTagMismatch = errors.New("acqread: journal header tag mismatch")

	// ErrStreamingUnsupported is returned by ReaderForStreaming when the
	// recording stores channels as per-channel compressed blocks, which
	// cannot be interleaved into a chunk stream.
	ErrStreamingUnsupported = errors.New("acqread: streaming is not supported for compressed recordings")

	// ErrChannelIndexOutOfRange describes a channel index outside the
	// recording's channel count. No function in this module returns it:
	// the read entry points take no channel selection.
	ErrChannelIndexOutOfRange = errors.New("acqread: channel index out of range")

	// ErrBootstrapFailed is returned when the leading header can't be
	// parsed at all, leaving no way to determine revision or channel count.
	ErrBootstrapFailed = errors.New("acqread: failed to bootstrap file header")

	// ErrNoDataTypeHeaders describes a recording that declares channels but
	// has no locatable data-type header run. No function in this module
	// returns it; the scanner reports that case as ErrDTypeScanExhausted.
	ErrNoDataTypeHeaders = errors.New("acqread: no channel data-type headers found")
)
