// Package table implements the event table: display rows derived from the
// loaded payload, with substring filtering and per-column sorting.
package table

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/metrics"
	"github.com/tartampluch/go-eventboard/internal/payload"
)

// Row is one rendered table line. Cells hold display strings in column order;
// the numeric fields keep the raw values so sorting never has to re-parse a
// formatted cell.
type Row struct {
	Cells [config.ColumnCount]string

	expected int
	actual   int
	rate     float64
	dateKey  string
}

// State captures the table interaction parameters carried in the request
// query string. The zero value is not meaningful; use DefaultState.
type State struct {
	Query   string
	SortCol int
	SortAsc bool
}

// DefaultState sorts by date descending so the most recent events lead.
func DefaultState() State {
	return State{SortCol: config.ColIDDate, SortAsc: false}
}

// Toggle returns the state after a click on col: same column flips the
// direction, a new column starts ascending.
func (s State) Toggle(col int) State {
	if col == s.SortCol {
		s.SortAsc = !s.SortAsc
		return s
	}
	s.SortCol = col
	s.SortAsc = true
	return s
}

// RowsFrom converts payload events into display rows. Dates that cannot be
// parsed render as the unknown placeholder and sort before every valid date.
func RowsFrom(events []payload.Event) []Row {
	rows := make([]Row, 0, len(events))
	for _, e := range events {
		r := Row{
			expected: e.Expected,
			actual:   e.Actual,
			rate:     e.Rate,
		}

		dateText := config.ValueUnknown
		if d, err := e.ParsedDate(); err == nil {
			dateText = d.Format(config.DateFormatDisplay)
			r.dateKey = dateText
		}

		r.Cells[config.ColIDName] = e.Name
		r.Cells[config.ColIDDate] = dateText
		r.Cells[config.ColIDType] = e.Type
		r.Cells[config.ColIDExpected] = metrics.Count(e.Expected)
		r.Cells[config.ColIDActual] = metrics.Count(e.Actual)
		r.Cells[config.ColIDRate] = metrics.Percent(e.Rate)

		rows = append(rows, r)
	}
	return rows
}

// matches reports whether the row contains query as a case-insensitive
// substring of any cell.
func (r Row) matches(query string) bool {
	for _, cell := range r.Cells {
		if strings.Contains(strings.ToLower(cell), query) {
			return true
		}
	}
	return false
}

// Apply filters and sorts rows according to state. The input slice is never
// mutated: filtering always starts from the full row set, so narrowing and
// widening a query are both single-pass operations over the same data.
func Apply(rows []Row, st State) []Row {
	out := make([]Row, 0, len(rows))

	query := strings.ToLower(strings.TrimSpace(st.Query))
	for _, r := range rows {
		if query == "" || r.matches(query) {
			out = append(out, r)
		}
	}
	if query != "" {
		slog.Debug(config.LogMsgFiltered,
			config.LogKeyComponent, config.CompTable,
			config.LogKeyQuery, st.Query,
			config.LogKeyCount, len(out))
	}

	sortRows(out, st)
	return out
}

// sortRows orders rows in place by the active column. Numeric columns compare
// raw values; the date column compares the ISO display key with a name
// tie-break; name and type compare case-insensitively.
func sortRows(rows []Row, st State) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch st.SortCol {
		case config.ColIDName:
			less = strings.ToLower(a.Cells[config.ColIDName]) < strings.ToLower(b.Cells[config.ColIDName])
		case config.ColIDType:
			less = strings.ToLower(a.Cells[config.ColIDType]) < strings.ToLower(b.Cells[config.ColIDType])
		case config.ColIDExpected:
			less = a.expected < b.expected
		case config.ColIDActual:
			less = a.actual < b.actual
		case config.ColIDRate:
			less = a.rate < b.rate
		default: // config.ColIDDate
			if a.dateKey == b.dateKey {
				// Secondary sort key: Name
				less = a.Cells[config.ColIDName] < b.Cells[config.ColIDName]
			} else {
				less = a.dateKey < b.dateKey
			}
		}

		if !st.SortAsc {
			return !less
		}
		return less
	})

	slog.Debug(config.LogMsgSorted,
		config.LogKeyComponent, config.CompTable,
		config.LogKeySortCol, st.SortCol,
		config.LogKeySortAsc, st.SortAsc)
}

// StateFromParams derives the table state from raw query-string values,
// falling back to the default for anything absent or out of range.
func StateFromParams(query, sortParam, dirParam string) State {
	st := DefaultState()
	st.Query = query

	if sortParam != "" {
		if col, err := strconv.Atoi(sortParam); err == nil && col >= 0 && col < config.ColumnCount {
			st.SortCol = col
			st.SortAsc = true
		}
	}
	switch dirParam {
	case config.DirAscending:
		st.SortAsc = true
	case config.DirDescending:
		st.SortAsc = false
	}
	return st
}
