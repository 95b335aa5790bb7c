package acq

import (
	"sync"

	"github.com/acqkit/acqread/format"
)

// SampleKind identifies the on-disk numeric width of a channel's samples.
type SampleKind int

const (
	// SampleFloat64 channels store already-scaled double precision values;
	// RawScale/RawOffset are not applied to them.
	SampleFloat64 SampleKind = iota
	// SampleInt16 channels store raw integer samples that must be scaled
	// by RawScale/RawOffset to reach physical units.
	SampleInt16
)

// Channel holds one recorded signal: its sampling characteristics, scaling
// coefficients, and the samples themselves. Physical-unit and upsampled
// views are computed once on first access and cached, since callers that
// only want metadata (ReadHeaders) shouldn't pay for either conversion.
type Channel struct {
	Index            int
	OrderNum         int
	Name             string
	Units            string
	FrequencyDivider int
	RawScale         float64
	RawOffset        float64
	SamplesPerSecond float64
	Kind             SampleKind

	declaredPoints int       // sample count from the channel header, known before any data is read
	raw            []float64 // widened raw samples; float64 channels store their true value here directly

	scaledOnce sync.Once
	scaled     []float64

	upsampledOnce sync.Once
	upsampled     []float64
}

// SampleSize is the on-disk byte width of one sample of this channel.
func (c *Channel) SampleSize() int {
	if c.Kind == SampleInt16 {
		return 2
	}
	return 8
}

// PointCount is the number of samples this channel's header declares it
// holds, known before the sample data itself is read.
func (c *Channel) PointCount() int { return c.declaredPoints }

// RawData returns the samples exactly as stored on disk: for SampleInt16
// channels these are raw integers widened to float64, not yet scaled.
func (c *Channel) RawData() []float64 { return c.raw }

// Data returns the channel's samples in physical units. Float64 channels
// return their stored values unchanged; integer channels are scaled by
// RawScale and offset by RawOffset on first call and cached thereafter.
func (c *Channel) Data() []float64 {
	c.scaledOnce.Do(func() {
		if c.Kind == SampleFloat64 {
			c.scaled = c.raw
			return
		}
		out := make([]float64, len(c.raw))
		for i, v := range c.raw {
			out[i] = v*c.RawScale + c.RawOffset
		}
		c.scaled = out
	})
	return c.scaled
}

// UpsampledData repeats each sample FrequencyDivider times so that every
// channel in a recording ends up with the same number of points, aligned
// to the file's base sample rate. Channels sampled at the base rate
// (FrequencyDivider == 1) return Data() unchanged.
func (c *Channel) UpsampledData() []float64 {
	c.upsampledOnce.Do(func() {
		data := c.Data()
		if c.FrequencyDivider <= 1 {
			c.upsampled = data
			return
		}
		out := make([]float64, 0, len(data)*c.FrequencyDivider)
		for _, v := range data {
			for i := 0; i < c.FrequencyDivider; i++ {
				out = append(out, v)
			}
		}
		c.upsampled = out
	})
	return c.upsampled
}

// EventMarker is a single annotation placed at a sample index, optionally
// bound to one channel (a nil ChannelNumber means it applies to the whole
// recording). ChannelReference is resolved by matching ChannelNumber
// against the recording's channel_order_map once all channels are known;
// it is nil both when ChannelNumber is nil and when a non-nil
// ChannelNumber names no channel actually present.
type EventMarker struct {
	SampleIndex      int32
	TimeIndexMs      float64
	Text             string
	ChannelNumber    *int
	ChannelReference *Channel
	DateCreatedMs    *uint64
	TypeCode         string
	StyleLabel       string
}

// Datafile is the fully decoded recording: its channels, markers, journal
// text, and any recoverable errors encountered while assembling them.
type Datafile struct {
	Revision         format.Revision
	ByteOrderLabel   string
	SamplesPerSecond float64
	Compressed       bool
	Channels         []*Channel
	Markers          []EventMarker
	Journal          string

	// Errors collects recoverable decode failures (truncated payloads,
	// a channel's compressed block failing to inflate, and similar). A
	// non-empty Errors does not mean Channels or Markers are unusable,
	// only that some piece of them is missing or zero-valued.
	Errors []error

	namedOnce sync.Once
	named     map[string]*Channel

	orderOnce sync.Once
	order     map[int]*Channel
}

// ChannelOrderMap indexes Channels by their OrderNum, the value markers
// bind to via ChannelNumber. Built once on first access.
func (d *Datafile) ChannelOrderMap() map[int]*Channel {
	d.orderOnce.Do(func() {
		d.order = make(map[int]*Channel, len(d.Channels))
		for _, c := range d.Channels {
			d.order[c.OrderNum] = c
		}
	})
	return d.order
}

// NamedChannels indexes Channels by name, computed once on first access.
// A duplicate channel name keeps the last channel with that name.
func (d *Datafile) NamedChannels() map[string]*Channel {
	d.namedOnce.Do(func() {
		d.named = make(map[string]*Channel, len(d.Channels))
		for _, c := range d.Channels {
			d.named[c.Name] = c
		}
	})
	return d.named
}
