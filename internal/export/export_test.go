package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/export"
	"github.com/tartampluch/go-eventboard/internal/payload"

	"encoding/csv"
	"encoding/json"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func testExporter() *export.Exporter {
	return &export.Exporter{
		Clock: fixedClock{t: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)},
	}
}

func sampleDataset() *payload.Dataset {
	return &payload.Dataset{
		Timestamp: "2024-06-15T10:00:00",
		OrgName:   "Community Org",
		Summary: payload.Summary{
			TotalEvents: 2,
			Events: []payload.Event{
				{Name: "Gala 2024", Type: "Gala", Date: "2024-03-16", Expected: 150, Actual: 120, Rate: 80.0},
				{Name: "Mixer 2024", Type: "Networking", Date: "2024-04-02", Expected: 130, Actual: 120, Rate: 92.3},
			},
		},
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	x := testExporter()
	d := sampleDataset()

	f, err := x.JSON(d)
	require.NoError(t, err)

	assert.Equal(t, "event-analytics-2024-06-15.json", f.Name)
	assert.Equal(t, config.MimeJSON, f.MIME)

	var back payload.Dataset
	require.NoError(t, json.Unmarshal(f.Data, &back))
	assert.Equal(t, *d, back, "JSON export must round-trip the dataset")

	assert.True(t, strings.Contains(string(f.Data), "\n"), "Output must be pretty-printed")
}

func TestJSON_NilDataset(t *testing.T) {
	_, err := testExporter().JSON(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrNoDataset)
}

func TestCSV(t *testing.T) {
	f, err := testExporter().CSV(sampleDataset())
	require.NoError(t, err)

	assert.Equal(t, "events-2024-06-15.csv", f.Name)
	assert.Equal(t, config.MimeCSV, f.MIME)

	records, err := csv.NewReader(strings.NewReader(string(f.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Event", "Date", "Type", "Expected", "Actual", "Rate"}, records[0])
	assert.Equal(t, []string{"Gala 2024", "2024-03-16", "Gala", "150", "120", "80.0%"}, records[1])
	assert.Equal(t, []string{"Mixer 2024", "2024-04-02", "Networking", "130", "120", "92.3%"}, records[2])
}

func TestCSV_RawDateFallback(t *testing.T) {
	d := sampleDataset()
	d.Summary.Events[0].Date = "sometime"

	f, err := testExporter().CSV(d)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(f.Data))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "sometime", records[1][1], "Unparseable dates pass through verbatim")
}

func TestCSV_NilDataset(t *testing.T) {
	_, err := testExporter().CSV(nil)
	assert.Error(t, err)
}

func TestICS(t *testing.T) {
	f, err := testExporter().ICS(sampleDataset())
	require.NoError(t, err)

	assert.Equal(t, "events-2024-06-15.ics", f.Name)
	assert.Equal(t, config.MimeTextCalendar, f.MIME)

	ics := string(f.Data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "END:VCALENDAR")
	assert.Contains(t, ics, "PRODID:"+config.ICalProdid)
	assert.Contains(t, ics, "SUMMARY:Gala 2024")
	assert.Contains(t, ics, "SUMMARY:Mixer 2024")
	assert.Contains(t, ics, "CATEGORIES:Networking")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20240316")
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
}

// TestICS_DeterministicUIDs verifies repeated exports of the same payload
// produce identical UIDs, so calendar clients never see duplicates.
func TestICS_DeterministicUIDs(t *testing.T) {
	a, err := testExporter().ICS(sampleDataset())
	require.NoError(t, err)
	b, err := testExporter().ICS(sampleDataset())
	require.NoError(t, err)

	assert.Equal(t, string(a.Data), string(b.Data))
	assert.Contains(t, string(a.Data), "@"+config.ICalDomain)
}

func TestICS_SkipsInvalidDates(t *testing.T) {
	d := sampleDataset()
	d.Summary.Events[0].Date = "soon"

	f, err := testExporter().ICS(d)
	require.NoError(t, err)

	ics := string(f.Data)
	assert.Equal(t, 1, strings.Count(ics, "BEGIN:VEVENT"))
	assert.NotContains(t, ics, "SUMMARY:Gala 2024")
}

func TestICS_EmptyStub(t *testing.T) {
	d := &payload.Dataset{OrgName: "Empty Org"}

	f, err := testExporter().ICS(d)
	require.NoError(t, err)

	assert.Equal(t, config.StubVCalendar, string(f.Data), "An empty feed must still be a valid VCALENDAR")
}

func TestICS_NilDataset(t *testing.T) {
	_, err := testExporter().ICS(nil)
	assert.Error(t, err)
}
