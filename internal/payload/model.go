package payload

import (
	"errors"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
)

// Event is a single attendance record from the analysis payload.
// Records are immutable once loaded; the whole set is only ever replaced.
type Event struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Date     string  `json:"date"` // calendar date string, usually YYYY-MM-DD
	Expected int     `json:"expected"`
	Actual   int     `json:"actual"`
	Rate     float64 `json:"attendance_rate"` // percent

	// Budget figures are optional; zero means "not provided".
	Budget          float64 `json:"budget,omitempty"`
	CostPerAttendee float64 `json:"cost_per_attendee,omitempty"`

	// Series is an optional explicit grouping key. When present it overrides
	// the trailing-year name heuristic used for recurring-event detection.
	Series string `json:"series,omitempty"`
}

// ParsedDate parses the event date, accepting the layouts the analyzer emits.
func (e Event) ParsedDate() (time.Time, error) {
	layouts := []string{
		config.DateFormatFullDash,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, e.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}

// Summary is the precomputed aggregate block of the payload.
// It is consumed read-only by the formatter and chart builders.
type Summary struct {
	TotalEvents     int            `json:"total_events"`
	DateRange       string         `json:"date_range"`
	EventTypes      map[string]int `json:"event_types"`
	AvgAttendance   float64        `json:"avg_attendance"`
	TotalAttendees  int            `json:"total_attendees"`
	TotalRegistered int            `json:"total_registered"`
	AttendanceRate  float64        `json:"attendance_rate"` // percent

	// Budget figures; all zero when the source sheets carried no budget column.
	TotalBudget        float64 `json:"total_budget,omitempty"`
	AvgBudgetPerEvent  float64 `json:"avg_budget_per_event,omitempty"`
	CostPerAttendee    float64 `json:"cost_per_attendee,omitempty"`
	AvgCostPerAttendee float64 `json:"avg_cost_per_attendee,omitempty"`

	BestPerformingEvent string  `json:"best_performing_event"`
	HighestAttendance   int     `json:"highest_attendance"`
	BestConversionEvent string  `json:"best_conversion_event"`
	BestConversionRate  float64 `json:"best_conversion_rate"`

	Events []Event `json:"events"`
}

// HasBudget reports whether the payload carried budget figures.
func (s Summary) HasBudget() bool {
	return s.TotalBudget > 0
}

// Prediction is the per-event-type forecast block.
type Prediction struct {
	AvgAttendance      float64 `json:"avg_attendance"`
	AttendanceRate     float64 `json:"attendance_rate"`
	SampleSize         int     `json:"sample_size"`
	MinAttendance      int     `json:"min_attendance"`
	MaxAttendance      int     `json:"max_attendance"`
	AvgBudget          float64 `json:"avg_budget,omitempty"`
	AvgCostPerAttendee float64 `json:"avg_cost_per_attendee,omitempty"`
}

// EngagementScore is the composite 0-100 score computed by the analyzer.
type EngagementScore struct {
	Score     float64            `json:"score"`
	Grade     string             `json:"grade"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// Dataset is the whole analysis payload as produced by the external analyzer.
// A Dataset is never mutated after loading; reloads replace it wholesale.
type Dataset struct {
	Timestamp    string                `json:"timestamp"`
	OrgName      string                `json:"org_name"`
	Summary      Summary               `json:"data_summary"`
	AIInsights   string                `json:"ai_insights"`
	Predictions  map[string]Prediction `json:"predictions,omitempty"`
	Demographics map[string]int        `json:"demographics,omitempty"`
	Engagement   *EngagementScore      `json:"engagement_score,omitempty"`
}

// Events returns the event list; nil-safe for use on an absent dataset.
func (d *Dataset) Events() []Event {
	if d == nil {
		return nil
	}
	return d.Summary.Events
}
