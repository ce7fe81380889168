package rankstats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestCompute_EmptySeries(t *testing.T) {
	t.Parallel()

	stats := Compute(nil)

	assert.False(t, stats.HasData)
	assert.Zero(t, stats.Count)
	assert.Nil(t, stats.AveragePosition)
	assert.Nil(t, stats.CurrentPosition)
	assert.Equal(t, TrendInsufficientData, stats.Trend)
}

func TestCompute_SignConvention(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{
		{Position: 10, Date: day(1)},
		{Position: 5, Date: day(2)},
	})

	require.NotNil(t, stats.PositionChange)
	assert.Equal(t, 5, *stats.PositionChange, "moving from 10 to 5 is a +5 improvement")
	assert.Equal(t, TrendImproving, stats.Trend)
}

func TestCompute_DecliningSeries(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{
		{Position: 3, Date: day(1)},
		{Position: 7, Date: day(2)},
		{Position: 12, Date: day(3)},
	})

	require.NotNil(t, stats.PositionChange)
	assert.Equal(t, -5, *stats.PositionChange)
	assert.Equal(t, TrendDeclining, stats.Trend)
}

func TestCompute_FlatSeriesIsStable(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{
		{Position: 4, Date: day(1)},
		{Position: 4, Date: day(2)},
		{Position: 4, Date: day(3)},
	})

	assert.Equal(t, TrendStable, stats.Trend)
}

func TestCompute_AggregatesIgnoreUnranked(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{
		{Position: 0, Date: day(1)},
		{Position: 8, Date: day(2)},
		{Position: 2, Date: day(3)},
		{Position: 5, Date: day(4)},
	})

	require.NotNil(t, stats.AveragePosition)
	assert.InDelta(t, 5.0, *stats.AveragePosition, 1e-9)
	require.NotNil(t, stats.BestPosition)
	assert.Equal(t, 2, *stats.BestPosition)
	require.NotNil(t, stats.WorstPosition)
	assert.Equal(t, 8, *stats.WorstPosition)
	assert.Equal(t, 4, stats.Count)
}

func TestCompute_AllUnrankedSeries(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{
		{Position: 0, Date: day(1)},
		{Position: 0, Date: day(2)},
	})

	assert.True(t, stats.HasData)
	assert.Nil(t, stats.AveragePosition, "all-zero series yields nil average, not zero")
	assert.Nil(t, stats.BestPosition)
	assert.Nil(t, stats.WorstPosition)
	require.NotNil(t, stats.CurrentPosition)
	assert.Zero(t, *stats.CurrentPosition, "0 is still a valid current position")
	assert.Nil(t, stats.PositionChange)
	assert.Equal(t, TrendInsufficientData, stats.Trend)
}

func TestCompute_UnrankedEndpointSuppressesChange(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{
		{Position: 5, Date: day(1)},
		{Position: 0, Date: day(2)},
	})

	require.NotNil(t, stats.CurrentPosition)
	assert.Zero(t, *stats.CurrentPosition)
	require.NotNil(t, stats.PreviousPosition)
	assert.Equal(t, 5, *stats.PreviousPosition)
	assert.Nil(t, stats.PositionChange, "transition through unranked has no numeric delta")
}

func TestCompute_SingleObservation(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{{Position: 3, Date: day(1)}})

	assert.True(t, stats.HasData)
	require.NotNil(t, stats.CurrentPosition)
	assert.Equal(t, 3, *stats.CurrentPosition)
	assert.Nil(t, stats.PreviousPosition)
	assert.Nil(t, stats.PositionChange)
	assert.Equal(t, TrendInsufficientData, stats.Trend)
	assert.Equal(t, 1, stats.DaysTracked)
}

func TestCompute_DaysTracked(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{
		{Position: 1, Date: day(1)},
		{Position: 2, Date: day(10)},
	})
	assert.Equal(t, 10, stats.DaysTracked, "span is inclusive of both endpoints")

	sameDay := Compute([]Observation{
		{Position: 1, Date: day(1).Add(2 * time.Hour)},
		{Position: 2, Date: day(1).Add(20 * time.Hour)},
	})
	assert.Equal(t, 1, sameDay.DaysTracked)
}

func TestCompute_TrafficAndVolumeAverages(t *testing.T) {
	t.Parallel()

	stats := Compute([]Observation{
		{Position: 1, Date: day(1), Traffic: intPtr(100), SearchVolume: intPtr(1000)},
		{Position: 2, Date: day(2), Traffic: intPtr(300)},
		{Position: 3, Date: day(3)},
	})

	require.NotNil(t, stats.AverageTraffic)
	assert.InDelta(t, 200.0, *stats.AverageTraffic, 1e-9)
	require.NotNil(t, stats.AverageSearchVolume)
	assert.InDelta(t, 1000.0, *stats.AverageSearchVolume, 1e-9)
}

func TestCompute_TrendSkipsUnrankedGaps(t *testing.T) {
	t.Parallel()

	// The regression runs over the filtered positions array, not the raw
	// series, so unranked gaps do not distort the fit.
	stats := Compute([]Observation{
		{Position: 9, Date: day(1)},
		{Position: 0, Date: day(2)},
		{Position: 6, Date: day(3)},
		{Position: 0, Date: day(4)},
		{Position: 3, Date: day(5)},
	})

	assert.Equal(t, TrendImproving, stats.Trend)
}
