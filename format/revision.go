// Package format defines the file revision registry shared by every decoding
// component: the integer scale the producing application stamps into each
// recording, and the thresholds that gate which header fields exist.
package format

// Revision is the integer version stamp AcqKnowledge writes near the start
// of every file. Header layouts are gated by comparing a field's minimum
// revision against this value, not by a major/minor/patch triple.
type Revision int32

// Named revision thresholds, in the order fields were added to the format.
// The values themselves come from the producing application and cannot be
// derived from anything else; they're reproduced here verbatim.
const (
	RAll  Revision = 0
	R20a  Revision = 30
	R30r  Revision = 34
	R303  Revision = 35
	R35x  Revision = 36
	R370  Revision = 38
	R373  Revision = 39
	R381  Revision = 41
	R382  Revision = 43
	R390  Revision = 45
	R400B Revision = 61
	R420  Revision = 108
	R42x  Revision = 121
	R430  Revision = 124
	R440  Revision = 128
	R501  Revision = 132
)

// V4Threshold is the revision at or above which a file uses the "post-4"
// header family (markers, journal, graph/channel headers all gain a second,
// structurally distinct shape at this boundary).
const V4Threshold = R400B

// IsPostV4 reports whether a revision uses the post-4 header family.
func (r Revision) IsPostV4() bool { return r >= V4Threshold }

// versionLabels gives the human-readable AcqKnowledge release a revision
// number first appeared in, ordered from newest to oldest so the first match
// in Label wins.
var versionLabels = []struct {
	min   Revision
	label string
}{
	{R501, "5.0.1"},
	{R440, "4.4"},
	{R430, "4.3"},
	{R42x, "4.2.x"},
	{R420, "4.2"},
	{R400B, "4.0"},
	{R390, "3.9"},
	{R382, "3.8.2"},
	{R381, "3.8.1"},
	{R373, "3.7.3"},
	{R370, "3.7"},
	{R35x, "3.5.x"},
	{R303, "3.0.3"},
	{R30r, "3.0r"},
	{R20a, "2.0a"},
}

// Label returns the AcqKnowledge release name a revision corresponds to, or
// "unknown" for a revision lower than any release this registry knows about.
func (r Revision) Label() string {
	for _, e := range versionLabels {
		if r >= e.min {
			return e.label
		}
	}
	return "unknown"
}

// String implements fmt.Stringer so a Revision prints its release label
// rather than a bare integer.
func (r Revision) String() string {
	return r.Label()
}
