package acq

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/section"
)

// walkResult is everything the file-level header walk establishes: the
// partially-built Datafile (channel metadata, markers, journal, but no
// sample data yet), and the cursor/geometry needed to read that sample
// data afterward, whether in bulk or as a pull-based stream.
type walkResult struct {
	df         *Datafile
	c          *cursor
	order      binary.ByteOrder
	dataStart  int64
	dataLength int64
}

// walkHeaders reads every header in a recording in file order, through
// markers and journal text, without reading any channel sample data.
// Each header's declared effective length — rather than this package's
// own packed struct size — drives where the next section starts, since
// the producing application's real on-disk structs carry trailing fields
// this package never names.
//
// Recoverable failures (a truncated marker, a missing journal) are
// collected into the returned Datafile's Errors rather than aborting the
// walk; walkHeaders only returns a non-nil error when the recording's
// structural backbone itself can't be established (byte order, graph
// header, channel headers, foreign header, or the data-type header scan).
func walkHeaders(r io.ReaderAt) (*walkResult, error) {
	boot, err := bootstrap(r)
	if err != nil {
		return nil, err
	}

	c := newCursor(r, 0)

	ghBuf, err := c.read(section.GraphHeaderLen(boot.revision))
	if err != nil {
		return nil, fmt.Errorf("reading graph header: %w", err)
	}
	gh, err := section.ParseGraphHeader(ghBuf, boot.revision, boot.order)
	if err != nil {
		return nil, err
	}

	df := &Datafile{
		Revision:         boot.revision,
		ByteOrderLabel:   byteOrderLabel(boot.order),
		SamplesPerSecond: 1000 / gh.SampleTime(),
		Compressed:       gh.Compressed(),
	}

	c.seekTo(int64(gh.ExtHeaderLen()))

	for i := 0; i < gh.ExpectedPaddingHeaders(); i++ {
		buf, err := c.read(section.PaddingHeaderLen())
		if err != nil {
			df.Errors = append(df.Errors, fmt.Errorf("reading padding header %d: %w", i, err))
			break
		}
		ph, err := section.ParsePaddingHeader(buf, boot.order)
		if err != nil {
			df.Errors = append(df.Errors, err)
			break
		}
		c.skip(int64(ph.EffectiveLen()) - int64(section.PaddingHeaderLen()))
	}

	channelCount := gh.ChannelCount()
	channelHeaders := make([]section.ChannelHeader, 0, channelCount)
	for i := 0; i < channelCount; i++ {
		buf, err := c.read(section.ChannelHeaderLen(boot.revision))
		if err != nil {
			return nil, fmt.Errorf("reading channel header %d: %w", i, err)
		}
		ch, err := section.ParseChannelHeader(buf, boot.revision, boot.order, boot.latin1)
		if err != nil {
			return nil, err
		}
		channelHeaders = append(channelHeaders, ch)
		c.skip(int64(ch.EffectiveLen()) - int64(section.ChannelHeaderLen(boot.revision)))
	}

	fhBuf, err := c.read(section.ForeignHeaderLen(boot.revision))
	if err != nil {
		return nil, fmt.Errorf("reading foreign header: %w", err)
	}
	fh, err := section.ParseForeignHeader(fhBuf, boot.revision, boot.order)
	if err != nil {
		return nil, err
	}
	c.skip(int64(fh.EffectiveLen()) - int64(section.ForeignHeaderLen(boot.revision)))

	dtypeHeaders, dataStart, err := scanForDTypeHeaders(c, c.tell(), channelCount, boot.order)
	if err != nil {
		return nil, err
	}

	channels := make([]*Channel, channelCount)
	var dataLength int64
	for i := 0; i < channelCount; i++ {
		ch := channelHeaders[i]
		dt := dtypeHeaders[i]
		kind := SampleFloat64
		if dt.TypeCode() == section.DTypeInt16 {
			kind = SampleInt16
		}
		divider := ch.FrequencyDivider()
		channels[i] = &Channel{
			Index:            i,
			OrderNum:         ch.OrderNum(),
			Name:             ch.Name(),
			Units:            ch.Units(),
			FrequencyDivider: divider,
			RawScale:         ch.RawScale(),
			RawOffset:        ch.RawOffset(),
			SamplesPerSecond: df.SamplesPerSecond / float64(divider),
			Kind:             kind,
			declaredPoints:   int(ch.PointCount()),
		}
		if !gh.Compressed() {
			dataLength += int64(ch.PointCount()) * int64(dt.SampleSize())
		}
	}
	df.Channels = channels

	c.seekTo(dataStart + dataLength)

	markers, markerErrs := readMarkers(c, boot.revision, boot.order, gh.SampleTime(), boot.latin1)
	resolveMarkerChannels(markers, df.ChannelOrderMap())
	df.Markers = markers
	df.Errors = append(df.Errors, markerErrs...)

	journal, err := readJournal(c, boot.revision, boot.order, boot.latin1)
	if err != nil {
		df.Errors = append(df.Errors, err)
	}
	df.Journal = journal

	return &walkResult{df: df, c: c, order: boot.order, dataStart: dataStart, dataLength: dataLength}, nil
}

// Walk decodes a complete recording: every header, every channel's
// samples, markers, and journal text. See walkHeaders for how recoverable
// failures are handled.
func Walk(r io.ReaderAt) (*Datafile, error) {
	wr, err := walkHeaders(r)
	if err != nil {
		return nil, err
	}
	df := wr.df

	if df.Compressed {
		mainBuf, err := wr.c.read(section.MainCompressionHeaderLen(df.Revision))
		if err != nil {
			df.Errors = append(df.Errors, fmt.Errorf("reading main compression header: %w", err))
			return df, nil
		}
		mh, err := section.ParseMainCompressionHeader(mainBuf, df.Revision, wr.order)
		if err != nil {
			df.Errors = append(df.Errors, err)
			return df, nil
		}
		wr.c.skip(int64(mh.EffectiveLen()) - int64(section.MainCompressionHeaderLen(df.Revision)))

		if chErrs := readCompressedChannels(wr.c, wr.order, df.Channels); len(chErrs) > 0 {
			df.Errors = append(df.Errors, chErrs...)
		}
		return df, nil
	}

	wr.c.seekTo(wr.dataStart)
	if chErrs := readUncompressed(wr.c, wr.order, df.Channels); len(chErrs) > 0 {
		df.Errors = append(df.Errors, chErrs...)
	}
	return df, nil
}

// WalkHeaders decodes a recording's structure and metadata (channels,
// markers, journal) without reading any sample data, for callers that
// only need to inspect a recording cheaply.
func WalkHeaders(r io.ReaderAt) (*Datafile, error) {
	wr, err := walkHeaders(r)
	if err != nil {
		return nil, err
	}
	return wr.df, nil
}

// NewStream sets up a pull-based chunk iterator over an uncompressed
// recording's sample data, alongside the fully decoded headers/markers/
// journal. Compressed recordings store each channel as one independent
// zlib block rather than an interleaved stream, so there's nothing to
// pull chunk-by-chunk; NewStream returns errs.ErrStreamingUnsupported for
// them instead.
func NewStream(r io.ReaderAt) (*Stream, *Datafile, error) {
	wr, err := walkHeaders(r)
	if err != nil {
		return nil, nil, err
	}
	if wr.df.Compressed {
		return nil, wr.df, errs.ErrStreamingUnsupported
	}

	dataCursor := newCursor(r, wr.dataStart)
	stream, err := newStream(dataCursor, wr.order, wr.df.Channels, false)
	if err != nil {
		return nil, wr.df, err
	}
	return stream, wr.df, nil
}

// resolveMarkerChannels binds each marker's ChannelReference by matching its
// decoded ChannelNumber against the recording's channel_order_map. Markers
// with a nil ChannelNumber (global markers) are left unbound.
func resolveMarkerChannels(markers []EventMarker, orderMap map[int]*Channel) {
	for i := range markers {
		if markers[i].ChannelNumber == nil {
			continue
		}
		markers[i].ChannelReference = orderMap[*markers[i].ChannelNumber]
	}
}

func byteOrderLabel(order binary.ByteOrder) string {
	if order == binary.BigEndian {
		return "big"
	}
	return "little"
}
