package acq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelDataScalesInt16Samples(t *testing.T) {
	ch := &Channel{Kind: SampleInt16, RawScale: 2.0, RawOffset: 1.0}
	ch.raw = []float64{0, 1, 2}

	require.Equal(t, []float64{1, 3, 5}, ch.Data())
}

func TestChannelDataPassesThroughFloat64Samples(t *testing.T) {
	ch := &Channel{Kind: SampleFloat64}
	ch.raw = []float64{1.5, 2.5}

	require.Equal(t, []float64{1.5, 2.5}, ch.Data())
}

func TestChannelDataCachedAcrossCalls(t *testing.T) {
	ch := &Channel{Kind: SampleInt16, RawScale: 1, RawOffset: 0}
	ch.raw = []float64{10}

	first := ch.Data()
	ch.raw[0] = 999 // mutate after first call; cached result must not change
	second := ch.Data()
	require.Equal(t, first, second)
}

func TestChannelUpsampledDataRepeatsPerDivider(t *testing.T) {
	ch := &Channel{Kind: SampleFloat64, FrequencyDivider: 3}
	ch.raw = []float64{1, 2}

	require.Equal(t, []float64{1, 1, 1, 2, 2, 2}, ch.UpsampledData())
}

func TestChannelUpsampledDataBaseRateUnchanged(t *testing.T) {
	ch := &Channel{Kind: SampleFloat64, FrequencyDivider: 1}
	ch.raw = []float64{1, 2, 3}

	require.Equal(t, ch.Data(), ch.UpsampledData())
}

func TestChannelSampleSize(t *testing.T) {
	require.Equal(t, 2, (&Channel{Kind: SampleInt16}).SampleSize())
	require.Equal(t, 8, (&Channel{Kind: SampleFloat64}).SampleSize())
}

func TestDatafileNamedChannelsLastDuplicateWins(t *testing.T) {
	first := &Channel{Name: "ECG", Index: 0}
	second := &Channel{Name: "ECG", Index: 1}
	df := &Datafile{Channels: []*Channel{first, second}}

	named := df.NamedChannels()
	require.Same(t, second, named["ECG"])
}

func TestDatafileChannelOrderMapIndexesByOrderNum(t *testing.T) {
	ch0 := &Channel{Name: "ECG", Index: 0, OrderNum: 0}
	ch1 := &Channel{Name: "RESP", Index: 1, OrderNum: 1}
	df := &Datafile{Channels: []*Channel{ch0, ch1}}

	order := df.ChannelOrderMap()
	require.Same(t, ch0, order[0])
	require.Same(t, ch1, order[1])
	require.Nil(t, order[2])
}
