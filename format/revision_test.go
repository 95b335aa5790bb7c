package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPostV4(t *testing.T) {
	require.False(t, Revision(0).IsPostV4())
	require.False(t, (R400B - 1).IsPostV4())
	require.True(t, R400B.IsPostV4())
	require.True(t, R501.IsPostV4())
}

func TestLabelExactThresholds(t *testing.T) {
	require.Equal(t, "5.0.1", R501.Label())
	require.Equal(t, "4.4", R440.Label())
	require.Equal(t, "4.0", R400B.Label())
	require.Equal(t, "2.0a", R20a.Label())
}

func TestLabelBetweenThresholds(t *testing.T) {
	// One below R420 still reports the highest label it meets or exceeds.
	require.Equal(t, "4.0", Revision(R420-1).Label())
}

func TestLabelUnknownBelowLowestThreshold(t *testing.T) {
	require.Equal(t, "unknown", Revision(R20a-1).Label())
}

func TestStringMatchesLabel(t *testing.T) {
	require.Equal(t, R440.Label(), R440.String())
}
