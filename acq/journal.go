package acq

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/acqkit/acqread/errs"
	"github.com/acqkit/acqread/format"
	"github.com/acqkit/acqread/section"
)

// readJournal reads the journal text section starting at the cursor's
// current position and leaves the cursor positioned immediately past it.
func readJournal(c *cursor, revision format.Revision, order binary.ByteOrder, latin1 bool) (string, error) {
	if revision.IsPostV4() {
		return readV4Journal(c, revision, order, latin1)
	}
	return readV2Journal(c, order, latin1)
}

func readV2Journal(c *cursor, order binary.ByteOrder, latin1 bool) (string, error) {
	buf, err := c.read(section.V2JournalHeaderLen())
	if err != nil {
		return "", fmt.Errorf("reading journal header: %w", err)
	}
	h, err := section.ParseV2JournalHeader(buf, order)
	if err != nil {
		return "", err
	}
	if !h.TagMatches() {
		return "", fmt.Errorf("journal header: %w", errs.ErrJournalTagMismatch)
	}

	text, err := c.read(int(h.JournalLen()))
	if err != nil {
		return "", fmt.Errorf("reading journal text: %w", err)
	}
	return strings.Trim(section.DecodeMarkerText(text, latin1), "\x00"), nil
}

// readV4Journal always advances the cursor to journalLengthOffset plus the
// declared section length, whether or not a journal body actually follows:
// the length header's own declared extent is the only reliable way to find
// whatever comes after the journal section, since a recording with no
// journal text omits the full journal header too.
func readV4Journal(c *cursor, revision format.Revision, order binary.ByteOrder, latin1 bool) (string, error) {
	journalLengthOffset := c.tell()

	lenBuf, err := c.read(section.V4JournalLengthHeaderLen())
	if err != nil {
		return "", fmt.Errorf("reading journal length header: %w", err)
	}
	lh, err := section.ParseV4JournalLengthHeader(lenBuf, order)
	if err != nil {
		return "", err
	}

	dataEnd := journalLengthOffset + int64(lh.JournalSectionLen())

	var journal string
	if int64(section.V4JournalHeaderLen(revision)) <= int64(lh.JournalSectionLen()) {
		buf, err := c.read(section.V4JournalHeaderLen(revision))
		if err != nil {
			return "", fmt.Errorf("reading journal header: %w", err)
		}
		h, err := section.ParseV4JournalHeader(buf, revision, order)
		if err != nil {
			return "", err
		}
		text, err := c.read(int(h.JournalLen()))
		if err != nil {
			return "", fmt.Errorf("reading journal text: %w", err)
		}
		journal = strings.Trim(section.DecodeMarkerText(text, latin1), "\x00")
	}

	c.seekTo(dataEnd)
	return journal, nil
}
