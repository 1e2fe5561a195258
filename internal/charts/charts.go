// Package charts builds the serializable view models behind the dashboard
// charts. Each builder turns the loaded payload into a flat, ordered data
// structure; the server marshals the bundle to JSON and hands it to the
// page's inline canvas renderer.
package charts

import (
	"sort"

	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/payload"
)

// Tier colors for the ranked attendance-rate chart.
const (
	ColorRateHigh = "#2da44e"
	ColorRateMid  = "#d4a72c"
	ColorRateLow  = "#cf222e"
)

// TypeSlice is one segment of the event-type distribution chart.
type TypeSlice struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TimelinePoint is one dot on the attendance timeline, ordered by date.
type TimelinePoint struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Actual   int    `json:"actual"`
	Expected int    `json:"expected"`
}

// ComparisonBar pairs expected and actual attendance for one event.
type ComparisonBar struct {
	Name     string `json:"name"`
	Expected int    `json:"expected"`
	Actual   int    `json:"actual"`
}

// RateBar is one bar of the ranked attendance-rate chart. Color encodes the
// performance tier.
type RateBar struct {
	Name  string  `json:"name"`
	Rate  float64 `json:"rate"`
	Color string  `json:"color"`
}

// DemographicShare is one segment of the audience breakdown.
type DemographicShare struct {
	Segment string  `json:"segment"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Bundle carries every chart's data for one page render.
type Bundle struct {
	Types        []TypeSlice        `json:"types"`
	Timeline     []TimelinePoint    `json:"timeline"`
	Comparison   []ComparisonBar    `json:"comparison"`
	Rates        []RateBar          `json:"rates"`
	Demographics []DemographicShare `json:"demographics"`
}

// Build assembles all chart models from a dataset. It is safe on a nil
// dataset and on any missing optional section; the corresponding slices stay
// empty and the page hides those charts.
func Build(d *payload.Dataset) Bundle {
	events := d.Events()
	b := Bundle{
		Types:      TypeDistribution(events),
		Timeline:   Timeline(events),
		Comparison: ExpectedVsActual(events),
		Rates:      RankedRates(events),
	}
	if d != nil {
		b.Demographics = DemographicShares(d.Demographics)
	}
	return b
}

// TypeDistribution counts events per type, in first-encounter order so the
// chart is stable across renders of the same payload.
func TypeDistribution(events []payload.Event) []TypeSlice {
	counts := make(map[string]int)
	var order []string
	for _, e := range events {
		if _, seen := counts[e.Type]; !seen {
			order = append(order, e.Type)
		}
		counts[e.Type]++
	}

	out := make([]TypeSlice, 0, len(order))
	for _, t := range order {
		out = append(out, TypeSlice{Type: t, Count: counts[t]})
	}
	return out
}

// Timeline returns attendance points sorted by date ascending. Events with
// unparseable dates cannot be placed on the axis and are skipped.
func Timeline(events []payload.Event) []TimelinePoint {
	type dated struct {
		point TimelinePoint
		key   string
	}

	pts := make([]dated, 0, len(events))
	for _, e := range events {
		d, err := e.ParsedDate()
		if err != nil {
			continue
		}
		key := d.Format(config.DateFormatDisplay)
		pts = append(pts, dated{
			point: TimelinePoint{Name: e.Name, Date: key, Actual: e.Actual, Expected: e.Expected},
			key:   key,
		})
	}

	sort.SliceStable(pts, func(i, j int) bool { return pts[i].key < pts[j].key })

	out := make([]TimelinePoint, len(pts))
	for i, p := range pts {
		out[i] = p.point
	}
	return out
}

// ExpectedVsActual keeps the first events in payload order, bounded so the
// grouped bars stay readable on wide datasets.
func ExpectedVsActual(events []payload.Event) []ComparisonBar {
	n := len(events)
	if n > config.ComparisonHeadSize {
		n = config.ComparisonHeadSize
	}

	out := make([]ComparisonBar, 0, n)
	for _, e := range events[:n] {
		out = append(out, ComparisonBar{Name: e.Name, Expected: e.Expected, Actual: e.Actual})
	}
	return out
}

// rateColor classifies a rate into its tier color.
func rateColor(rate float64) string {
	switch {
	case rate >= config.RateTierHigh:
		return ColorRateHigh
	case rate >= config.RateTierMid:
		return ColorRateMid
	default:
		return ColorRateLow
	}
}

// RankedRates sorts events by attendance rate descending, ties broken by
// input order.
func RankedRates(events []payload.Event) []RateBar {
	bars := make([]RateBar, 0, len(events))
	for _, e := range events {
		bars = append(bars, RateBar{Name: e.Name, Rate: e.Rate, Color: rateColor(e.Rate)})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Rate > bars[j].Rate })
	return bars
}

// DemographicShares converts segment counts into percentage shares, largest
// first with a name tie-break so equal counts render deterministically.
func DemographicShares(segments map[string]int) []DemographicShare {
	total := 0
	for _, c := range segments {
		total += c
	}
	if total == 0 {
		return nil
	}

	out := make([]DemographicShare, 0, len(segments))
	for name, c := range segments {
		out = append(out, DemographicShare{
			Segment: name,
			Count:   c,
			Percent: float64(c) / float64(total) * 100,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Segment < out[j].Segment
		}
		return out[i].Count > out[j].Count
	})
	return out
}
