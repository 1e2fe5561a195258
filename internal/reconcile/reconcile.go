// Package reconcile detects recurring events and computes period-over-period
// deltas between their two most recent occurrences.
package reconcile

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/payload"
)

// trailingYear matches a single year-like token at the end of an event name:
// a four-digit year starting with 20, or an apostrophe followed by two digits,
// with optional surrounding whitespace. Embedded (non-trailing) year-like
// substrings never match.
var trailingYear = regexp.MustCompile(`(?i)\s*(20\d{2}|['’]\d{2})\s*$`)

// BaseName strips one trailing year token from an event name, yielding the
// grouping key for recurring-series detection. The original name is preserved
// by callers for display. A name consisting only of a year token is returned
// trimmed but otherwise unchanged, so it still forms a usable key.
func BaseName(name string) string {
	stripped := strings.TrimSpace(trailingYear.ReplaceAllString(name, ""))
	if stripped == "" {
		return strings.TrimSpace(name)
	}
	return stripped
}

// groupKey prefers an explicit series identifier over the name heuristic.
func groupKey(e payload.Event) string {
	if e.Series != "" {
		return e.Series
	}
	return BaseName(e.Name)
}

// Comparison is the period-over-period record for one recurring series.
// It is ephemeral: recomputed from the event list on every payload load.
type Comparison struct {
	// Name is the series display name (explicit key or stripped base name).
	Name string

	Previous payload.Event
	Latest   payload.Event

	// AttendanceDelta is latest.Actual - previous.Actual.
	AttendanceDelta int

	// PercentDelta is AttendanceDelta relative to previous.Actual, in percent.
	// It is only meaningful when PercentDefined is true; when the previous
	// occurrence had zero actual attendance the value is 0 and PercentDefined
	// is false, and renderers show a neutral indicator instead. The value is
	// never NaN or infinite.
	PercentDelta   float64
	PercentDefined bool

	// RateDelta is the attendance-rate change in percentage points.
	RateDelta float64
}

// member pairs an event with its parsed date so each date is parsed once.
type member struct {
	event payload.Event
	date  time.Time
}

// BuildComparisons groups events into recurring series and emits one
// comparison per series with at least two members. The computation is a pure
// function of the input order and content: groups keep encounter order, and
// date ties within a group are broken by input position (stable sort).
func BuildComparisons(events []payload.Event) []Comparison {
	groups := make(map[string][]member)
	var order []string

	for _, e := range events {
		key := groupKey(e)
		d, err := e.ParsedDate()
		if err != nil {
			// An unparseable date cannot be ordered within its series;
			// zero time sinks it to the oldest position.
			slog.Debug(config.MsgSkippedEvent,
				config.LogKeyComponent, config.CompLoader,
				config.LogKeyName, e.Name,
				config.LogKeyValue, e.Date)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], member{event: e, date: d})
	}

	var out []Comparison
	for _, key := range order {
		g := groups[key]
		if len(g) < config.SeriesMinMembers {
			continue
		}

		sort.SliceStable(g, func(i, j int) bool {
			return g[i].date.Before(g[j].date)
		})

		prev := g[len(g)-2].event
		latest := g[len(g)-1].event

		c := Comparison{
			Name:            key,
			Previous:        prev,
			Latest:          latest,
			AttendanceDelta: latest.Actual - prev.Actual,
			RateDelta:       latest.Rate - prev.Rate,
		}
		if prev.Actual != 0 {
			c.PercentDelta = float64(c.AttendanceDelta) / float64(prev.Actual) * 100
			c.PercentDefined = true
		}
		out = append(out, c)
	}

	return out
}
