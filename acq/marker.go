package acq

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/section"
)

// readMarkers reads the marker section starting at the cursor's current
// position and returns the decoded markers plus the cursor positioned
// immediately past the section. Recoverable failures (a truncated label,
// an unreadable metadata section) are returned in the error slice rather
// than aborting the whole recording; an absent metadata section is not an
// error.
func readMarkers(c *cursor, revision format.Revision, order binary.ByteOrder, sampleTime float64, latin1 bool) ([]EventMarker, []error) {
	if revision.IsPostV4() {
		return readV4Markers(c, revision, order, sampleTime, latin1)
	}
	return readV2Markers(c, revision, order, sampleTime, latin1)
}

func readV2Markers(c *cursor, revision format.Revision, order binary.ByteOrder, sampleTime float64, latin1 bool) ([]EventMarker, []error) {
	var errors []error

	buf, err := c.read(section.V2MarkerHeaderLen())
	if err != nil {
		return nil, append(errors, fmt.Errorf("reading marker header: %w", err))
	}
	mh, err := section.ParseV2MarkerHeader(buf, order)
	if err != nil {
		return nil, append(errors, err)
	}

	markers := make([]EventMarker, 0, mh.MarkerCount())
	for i := 0; i < mh.MarkerCount(); i++ {
		m, err := readV2MarkerItem(c, revision, order, sampleTime, latin1)
		if err != nil {
			errors = append(errors, fmt.Errorf("marker %d: %w", i, err))
			break
		}
		markers = append(markers, m)
	}

	if revision >= format.R381 && revision <= format.R400B {
		if metaErr := readV2MarkerMetadata(c, order, markers); metaErr != nil {
			errors = append(errors, metaErr)
		}
	}

	return markers, errors
}

func readV2MarkerItem(c *cursor, revision format.Revision, order binary.ByteOrder, sampleTime float64, latin1 bool) (EventMarker, error) {
	buf, err := c.read(section.V2MarkerItemHeaderLen(revision))
	if err != nil {
		return EventMarker{}, fmt.Errorf("reading marker item: %w", err)
	}
	item, err := section.ParseV2MarkerItemHeader(buf, revision, order)
	if err != nil {
		return EventMarker{}, err
	}
	text, err := readMarkerText(c, item.TextLength(), latin1)
	if err != nil {
		return EventMarker{}, err
	}
	return EventMarker{
		SampleIndex: item.SampleIndex(),
		TimeIndexMs: float64(item.SampleIndex()) * sampleTime / 1000,
		Text:        text,
	}, nil
}

func readV2MarkerMetadata(c *cursor, order binary.ByteOrder, markers []EventMarker) error {
	preBuf, err := c.read(section.V2MarkerMetadataPreHeaderLen())
	if err != nil {
		return fmt.Errorf("reading marker metadata preamble: %w", err)
	}
	pre, err := section.ParseV2MarkerMetadataPreHeader(preBuf, order)
	if err != nil {
		return err
	}
	if pre.TagMatches() {
		// No metadata section is actually present; what we just consumed
		// was the start of the journal header, so rewind past it.
		c.skip(-int64(section.V2MarkerMetadataPreHeaderLen()))
		return nil
	}
	for i := 0; i < pre.ItemCount(); i++ {
		buf, err := c.read(section.V2MarkerMetadataHeaderLen())
		if err != nil {
			return fmt.Errorf("reading marker metadata item %d: %w", i, err)
		}
		mh, err := section.ParseV2MarkerMetadataHeader(buf, order)
		if err != nil {
			return err
		}
		idx := mh.MarkerIndex()
		if idx < 0 || idx >= len(markers) {
			continue
		}
		markers[idx].StyleLabel = fmt.Sprintf("tag-%d", mh.MarkerTag())
	}
	return nil
}

func readV4Markers(c *cursor, revision format.Revision, order binary.ByteOrder, sampleTime float64, latin1 bool) ([]EventMarker, []error) {
	var errors []error

	buf, err := c.read(section.V4MarkerHeaderLen(revision))
	if err != nil {
		return nil, append(errors, fmt.Errorf("reading marker header: %w", err))
	}
	mh, err := section.ParseV4MarkerHeader(buf, revision, order)
	if err != nil {
		return nil, append(errors, err)
	}

	markers := make([]EventMarker, 0, mh.MarkerCount())
	for i := 0; i < mh.MarkerCount(); i++ {
		m, err := readV4MarkerItem(c, revision, order, sampleTime, latin1)
		if err != nil {
			errors = append(errors, fmt.Errorf("marker %d: %w", i, err))
			break
		}
		markers = append(markers, m)
	}
	return markers, errors
}

func readV4MarkerItem(c *cursor, revision format.Revision, order binary.ByteOrder, sampleTime float64, latin1 bool) (EventMarker, error) {
	buf, err := c.read(section.V4MarkerItemHeaderLen(revision))
	if err != nil {
		return EventMarker{}, fmt.Errorf("reading marker item: %w", err)
	}
	item, err := section.ParseV4MarkerItemHeader(buf, revision, order)
	if err != nil {
		return EventMarker{}, err
	}
	text, err := readMarkerText(c, item.TextLength(), latin1)
	if err != nil {
		return EventMarker{}, err
	}

	m := EventMarker{
		SampleIndex: item.SampleIndex(),
		TimeIndexMs: float64(item.SampleIndex()) * sampleTime / 1000,
		Text:        text,
		TypeCode:    item.TypeCode(),
		StyleLabel:  markerStyleLabel(item.TypeCode()),
	}
	if ch := item.ChannelNumber(); ch != -1 {
		v := ch
		m.ChannelNumber = &v
	}
	if ms, ok := item.DateCreatedMs(); ok {
		v := ms
		m.DateCreatedMs = &v
	}
	return m, nil
}

func readMarkerText(c *cursor, length int, latin1 bool) (string, error) {
	if length <= 0 {
		return "", nil
	}
	buf, err := c.read(length)
	if err != nil {
		return "", fmt.Errorf("reading marker text: %w", err)
	}
	return strings.TrimRight(section.DecodeMarkerText(buf, latin1), "\x00"), nil
}
