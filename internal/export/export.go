// Package export produces the downloadable representations of the loaded
// dataset: pretty-printed JSON, a flat CSV of the event table, and an
// iCalendar feed of the event dates.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/metrics"
	"github.com/tartampluch/go-eventboard/internal/payload"
)

// File is one generated download: a suggested filename plus its content.
type File struct {
	Name string
	MIME string
	Data []byte
}

// Exporter builds download files. The clock only feeds filenames and the
// DTSTAMP property, so exports of the same dataset at the same instant are
// byte-identical.
type Exporter struct {
	Clock payload.Clock
}

// stamp formats the current date for embedding in filenames.
func (x *Exporter) stamp() string {
	return x.Clock.Now().Format(config.ExportDateLayout)
}

// JSON emits the full dataset pretty-printed. The output unmarshals back
// into an equal dataset.
func (x *Exporter) JSON(d *payload.Dataset) (File, error) {
	if d == nil {
		return File{}, errors.New(config.ErrNoDataset)
	}

	data, err := json.MarshalIndent(d, "", config.JSONIndent)
	if err != nil {
		return File{}, err
	}

	x.logExport(config.RouteExportJSON, len(data))
	return File{
		Name: fmt.Sprintf(config.ExportBaseJSON, x.stamp()),
		MIME: config.MimeJSON,
		Data: data,
	}, nil
}

// CSV emits one row per event in payload order. Numeric cells stay unpadded
// and unseparated so spreadsheets parse them as numbers; only the rate keeps
// its percent suffix.
func (x *Exporter) CSV(d *payload.Dataset) (File, error) {
	if d == nil {
		return File{}, errors.New(config.ErrNoDataset)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		config.CSVHeaderName,
		config.CSVHeaderDate,
		config.CSVHeaderType,
		config.CSVHeaderExpected,
		config.CSVHeaderActual,
		config.CSVHeaderRate,
	}
	if err := w.Write(header); err != nil {
		return File{}, err
	}

	for _, e := range d.Events() {
		date := e.Date
		if parsed, err := e.ParsedDate(); err == nil {
			date = parsed.Format(config.DateFormatDisplay)
		}
		row := []string{
			e.Name,
			date,
			e.Type,
			strconv.Itoa(e.Expected),
			strconv.Itoa(e.Actual),
			strconv.FormatFloat(e.Rate, 'f', 1, 64) + config.CSVRatePercentSuffix,
		}
		if err := w.Write(row); err != nil {
			return File{}, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return File{}, err
	}

	x.logExport(config.RouteExportCSV, buf.Len())
	return File{
		Name: fmt.Sprintf(config.ExportBaseCSV, x.stamp()),
		MIME: config.MimeCSV,
		Data: buf.Bytes(),
	}, nil
}

// ICS emits a VCALENDAR with one all-day VEVENT per dated event. Events
// without a parseable date are skipped; an empty result still yields a valid
// stub calendar so feed consumers never see a malformed object.
func (x *Exporter) ICS(d *payload.Dataset) (File, error) {
	if d == nil {
		return File{}, errors.New(config.ErrNoDataset)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(x.Clock.Now().UTC())

	for _, e := range d.Events() {
		date, err := e.ParsedDate()
		if err != nil {
			slog.Debug(config.MsgSkippedEvent,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyName, e.Name,
				config.LogKeyValue, e.Date)
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(e))
		event.Props.SetText(config.PropSummary, e.Name)
		if e.Type != "" {
			event.Props.SetText(config.PropCategories, e.Type)
		}
		event.Props.SetText(config.PropDesc,
			fmt.Sprintf(config.ICalDescFormat, e.Actual, e.Expected, metrics.Percent(e.Rate)))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(date)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	name := fmt.Sprintf(config.ExportBaseICS, x.stamp())

	if len(cal.Children) == 0 {
		// The constant stub keeps the feed a valid VCALENDAR even when empty.
		x.logExport(config.RouteExportICS, len(config.StubVCalendar))
		return File{Name: name, MIME: config.MimeTextCalendar, Data: []byte(config.StubVCalendar)}, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return File{}, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	x.logExport(config.RouteExportICS, buf.Len())
	return File{Name: name, MIME: config.MimeTextCalendar, Data: buf.Bytes()}, nil
}

// eventUID derives a stable identifier from the event's identity fields so
// repeated exports never duplicate calendar entries.
func eventUID(e payload.Event) string {
	input := fmt.Sprintf(config.FormatHashInput, e.Name, e.Date, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}

func (x *Exporter) logExport(route string, size int) {
	slog.Debug(config.MsgExportDone,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyURL, route,
		config.LogKeySizeBytes, size)
}
