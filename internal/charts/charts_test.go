package charts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/charts"
	"github.com/tartampluch/go-eventboard/internal/payload"
)

func sampleEvents() []payload.Event {
	return []payload.Event{
		{Name: "Gala 2024", Type: "Gala", Date: "2024-03-16", Expected: 150, Actual: 120, Rate: 80.0},
		{Name: "Mixer 2024", Type: "Networking", Date: "2024-04-02", Expected: 130, Actual: 120, Rate: 92.3},
		{Name: "Workshop", Type: "Training", Date: "2024-01-10", Expected: 40, Actual: 25, Rate: 62.5},
		{Name: "Gala 2023", Type: "Gala", Date: "2023-03-18", Expected: 150, Actual: 100, Rate: 66.7},
	}
}

func TestTypeDistribution(t *testing.T) {
	slices := charts.TypeDistribution(sampleEvents())

	require.Len(t, slices, 3)
	assert.Equal(t, charts.TypeSlice{Type: "Gala", Count: 2}, slices[0], "Types keep first-encounter order")
	assert.Equal(t, charts.TypeSlice{Type: "Networking", Count: 1}, slices[1])
	assert.Equal(t, charts.TypeSlice{Type: "Training", Count: 1}, slices[2])
}

func TestTimeline(t *testing.T) {
	pts := charts.Timeline(sampleEvents())

	require.Len(t, pts, 4)
	got := make([]string, len(pts))
	for i, p := range pts {
		got[i] = p.Name
	}
	assert.Equal(t, []string{"Gala 2023", "Workshop", "Gala 2024", "Mixer 2024"}, got,
		"Timeline must be date ascending")
}

func TestTimeline_SkipsInvalidDates(t *testing.T) {
	events := append(sampleEvents(), payload.Event{Name: "Mystery", Type: "Other", Date: "soon"})

	pts := charts.Timeline(events)

	assert.Len(t, pts, 4, "Events without a parseable date cannot be placed on the axis")
}

func TestExpectedVsActual_Bounded(t *testing.T) {
	var events []payload.Event
	for i := 0; i < 15; i++ {
		events = append(events, payload.Event{Name: "E", Expected: i, Actual: i})
	}

	bars := charts.ExpectedVsActual(events)

	require.Len(t, bars, 10)
	assert.Equal(t, 0, bars[0].Expected, "Bars keep payload order, head of the list")
	assert.Equal(t, 9, bars[9].Expected)
}

func TestExpectedVsActual_SmallInput(t *testing.T) {
	bars := charts.ExpectedVsActual(sampleEvents()[:2])
	assert.Len(t, bars, 2)
}

// TestRankedRates pins the tier boundaries: >= 85 high, >= 75 mid, below low.
func TestRankedRates(t *testing.T) {
	events := []payload.Event{
		{Name: "Low", Rate: 62.5},
		{Name: "Boundary high", Rate: 85.0},
		{Name: "Mid", Rate: 80.0},
		{Name: "Boundary mid", Rate: 75.0},
	}

	bars := charts.RankedRates(events)

	require.Len(t, bars, 4)
	assert.Equal(t, "Boundary high", bars[0].Name)
	assert.Equal(t, charts.ColorRateHigh, bars[0].Color)
	assert.Equal(t, charts.ColorRateMid, bars[1].Color)
	assert.Equal(t, charts.ColorRateMid, bars[2].Color)
	assert.Equal(t, "Low", bars[3].Name)
	assert.Equal(t, charts.ColorRateLow, bars[3].Color)
}

func TestRankedRates_StableTies(t *testing.T) {
	events := []payload.Event{
		{Name: "First", Rate: 90},
		{Name: "Second", Rate: 90},
	}

	bars := charts.RankedRates(events)

	assert.Equal(t, "First", bars[0].Name)
	assert.Equal(t, "Second", bars[1].Name)
}

func TestDemographicShares(t *testing.T) {
	shares := charts.DemographicShares(map[string]int{
		"Members": 300,
		"Guests":  100,
		"Staff":   100,
	})

	require.Len(t, shares, 3)
	assert.Equal(t, "Members", shares[0].Segment)
	assert.InDelta(t, 60.0, shares[0].Percent, 0.0001)
	assert.Equal(t, "Guests", shares[1].Segment, "Equal counts break ties by name")
	assert.Equal(t, "Staff", shares[2].Segment)
	assert.InDelta(t, 20.0, shares[1].Percent, 0.0001)
}

func TestDemographicShares_Empty(t *testing.T) {
	assert.Nil(t, charts.DemographicShares(nil))
	assert.Nil(t, charts.DemographicShares(map[string]int{"Ghosts": 0}))
}

func TestBuild_NilDataset(t *testing.T) {
	b := charts.Build(nil)

	assert.Empty(t, b.Types)
	assert.Empty(t, b.Timeline)
	assert.Empty(t, b.Comparison)
	assert.Empty(t, b.Rates)
	assert.Empty(t, b.Demographics)
}

func TestBuild_FullDataset(t *testing.T) {
	d := &payload.Dataset{
		Summary:      payload.Summary{Events: sampleEvents()},
		Demographics: map[string]int{"Members": 3, "Guests": 1},
	}

	b := charts.Build(d)

	assert.Len(t, b.Types, 3)
	assert.Len(t, b.Timeline, 4)
	assert.Len(t, b.Comparison, 4)
	assert.Len(t, b.Rates, 4)
	assert.Len(t, b.Demographics, 2)
}
