package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/payload"
	"github.com/tartampluch/go-eventboard/internal/table"
)

func sampleEvents() []payload.Event {
	return []payload.Event{
		{Name: "Gala 2024", Type: "Gala", Date: "2024-03-16", Expected: 150, Actual: 120, Rate: 80.0},
		{Name: "Mixer 2024", Type: "Networking", Date: "2024-04-02", Expected: 1300, Actual: 1200, Rate: 92.3},
		{Name: "Workshop", Type: "Training", Date: "2024-01-10", Expected: 40, Actual: 25, Rate: 62.5},
		{Name: "gala 2023", Type: "Gala", Date: "2023-03-18", Expected: 150, Actual: 100, Rate: 66.7},
	}
}

func names(rows []table.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Cells[config.ColIDName]
	}
	return out
}

func TestRowsFrom(t *testing.T) {
	rows := table.RowsFrom(sampleEvents())
	require.Len(t, rows, 4)

	mixer := rows[1]
	assert.Equal(t, "Mixer 2024", mixer.Cells[config.ColIDName])
	assert.Equal(t, "2024-04-02", mixer.Cells[config.ColIDDate])
	assert.Equal(t, "Networking", mixer.Cells[config.ColIDType])
	assert.Equal(t, "1,300", mixer.Cells[config.ColIDExpected])
	assert.Equal(t, "1,200", mixer.Cells[config.ColIDActual])
	assert.Equal(t, "92.3%", mixer.Cells[config.ColIDRate])
}

func TestRowsFrom_InvalidDate(t *testing.T) {
	rows := table.RowsFrom([]payload.Event{
		{Name: "Mystery", Type: "Other", Date: "soon", Expected: 10, Actual: 5, Rate: 50},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, config.ValueUnknown, rows[0].Cells[config.ColIDDate])
}

func TestApply_DefaultOrder(t *testing.T) {
	rows := table.Apply(table.RowsFrom(sampleEvents()), table.DefaultState())

	assert.Equal(t, []string{"Mixer 2024", "Gala 2024", "Workshop", "gala 2023"}, names(rows),
		"Default state must sort by date descending")
}

// TestApply_Filter checks case-insensitive substring matching across all
// cells, including formatted numeric ones.
func TestApply_Filter(t *testing.T) {
	base := table.RowsFrom(sampleEvents())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"Name match ignores case", "GALA", []string{"Gala 2024", "gala 2023"}},
		{"Type match", "network", []string{"Mixer 2024"}},
		{"Formatted number match", "1,200", []string{"Mixer 2024"}},
		{"Rate match", "62.5%", []string{"Workshop"}},
		{"No match", "banquet", []string{}},
		{"Empty query keeps all", "", []string{"Mixer 2024", "Gala 2024", "Workshop", "gala 2023"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := table.DefaultState()
			st.Query = tt.query
			got := table.Apply(base, st)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

// TestApply_FilterFromFullSet verifies the filter always recomputes from the
// complete row set: widening a query after narrowing restores rows.
func TestApply_FilterFromFullSet(t *testing.T) {
	base := table.RowsFrom(sampleEvents())

	narrow := table.DefaultState()
	narrow.Query = "workshop"
	require.Len(t, table.Apply(base, narrow), 1)

	wide := table.DefaultState()
	wide.Query = "2024"
	assert.Len(t, table.Apply(base, wide), 3, "Widening the query must re-match against all rows")

	assert.Len(t, base, 4, "Apply must not mutate the source rows")
}

func TestApply_SortColumns(t *testing.T) {
	base := table.RowsFrom(sampleEvents())

	tests := []struct {
		name string
		col  int
		asc  bool
		want []string
	}{
		{"Name ascending folds case", config.ColIDName, true, []string{"Gala 2024", "gala 2023", "Mixer 2024", "Workshop"}},
		{"Date ascending", config.ColIDDate, true, []string{"gala 2023", "Workshop", "Gala 2024", "Mixer 2024"}},
		{"Actual numeric ascending", config.ColIDActual, true, []string{"Workshop", "gala 2023", "Gala 2024", "Mixer 2024"}},
		{"Actual numeric descending", config.ColIDActual, false, []string{"Mixer 2024", "Gala 2024", "gala 2023", "Workshop"}},
		{"Rate ascending", config.ColIDRate, true, []string{"Workshop", "gala 2023", "Gala 2024", "Mixer 2024"}},
		{"Expected ties keep stable order", config.ColIDExpected, true, []string{"Workshop", "Gala 2024", "gala 2023", "Mixer 2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Apply(base, table.State{SortCol: tt.col, SortAsc: tt.asc})
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestApply_FilterAndSortCompose(t *testing.T) {
	base := table.RowsFrom(sampleEvents())

	st := table.State{Query: "gala", SortCol: config.ColIDActual, SortAsc: true}
	got := table.Apply(base, st)

	assert.Equal(t, []string{"gala 2023", "Gala 2024"}, names(got))
}

func TestState_Toggle(t *testing.T) {
	st := table.DefaultState()

	st = st.Toggle(config.ColIDName)
	assert.Equal(t, config.ColIDName, st.SortCol)
	assert.True(t, st.SortAsc, "A new column starts ascending")

	st = st.Toggle(config.ColIDName)
	assert.False(t, st.SortAsc, "Clicking the active column flips the direction")
}

func TestStateFromParams(t *testing.T) {
	tests := []struct {
		name string
		sort string
		dir  string
		want table.State
	}{
		{"Empty params use default", "", "", table.State{SortCol: config.ColIDDate, SortAsc: false}},
		{"Valid column ascending", "0", "", table.State{SortCol: config.ColIDName, SortAsc: true}},
		{"Explicit descending", "4", "desc", table.State{SortCol: config.ColIDActual, SortAsc: false}},
		{"Out of range column ignored", "9", "", table.State{SortCol: config.ColIDDate, SortAsc: false}},
		{"Garbage column ignored", "name", "asc", table.State{SortCol: config.ColIDDate, SortAsc: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.StateFromParams("", tt.sort, tt.dir)
			assert.Equal(t, tt.want, got)
		})
	}
}
