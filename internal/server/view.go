package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"sort"
	"strconv"

	"github.com/tartampluch/go-eventboard/internal/charts"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/i18n"
	"github.com/tartampluch/go-eventboard/internal/metrics"
	"github.com/tartampluch/go-eventboard/internal/payload"
	"github.com/tartampluch/go-eventboard/internal/reconcile"
	"github.com/tartampluch/go-eventboard/internal/table"
)

// statCard is one headline metric tile. Animated cards carry the integer
// target for the client-side counter; the pre-rendered value is the
// no-script fallback and the terminal frame.
type statCard struct {
	Label    string
	Value    string
	Prefix   string
	Suffix   string
	Target   int
	Animated bool
}

// columnHeader is one sortable table header cell.
type columnHeader struct {
	Title  string
	URL    template.URL
	Active bool
	Icon   string
}

// comparisonRow is the rendered period-over-period line for one series.
type comparisonRow struct {
	Name         string
	PrevLabel    string
	LatestLabel  string
	Attendance   string
	Percent      string
	Rate         string
	Defined      bool
	Positive     bool
}

// predictionRow is one per-type forecast line.
type predictionRow struct {
	Type       string
	Attendance string
	Rate       string
	Budget     string
	CostPer    string
	Samples    int
	Range      string
}

type breakdownRow struct {
	Name  string
	Value string
}

type engagementView struct {
	Score     string
	Grade     string
	Breakdown []breakdownRow
}

// labels carries every translated string the page needs, resolved once per
// request so the template stays logic-free.
type labels struct {
	PageTitle       string
	SectionSummary  string
	SectionCharts   string
	SectionEvents   string
	SectionCompare  string
	SectionInsights string
	SectionPredict  string
	SectionAudience string
	Search          string
	Theme           string
	Refresh         string
	ExportJSON      string
	ExportCSV       string
	ExportICS       string
	NoData          string
	NoDataHint      string
	NotApplicable   string
}

// pageView is the full template model for one dashboard render.
type pageView struct {
	L     labels
	Lang  string
	Theme string
	Query string

	HasData     bool
	Org         string
	GeneratedAt string

	Cards   []statCard
	Columns []columnHeader
	Rows    []table.Row

	Comparisons []comparisonRow
	ChartJSON   template.JS
	HasCharts   bool

	Insights    string
	Predictions []predictionRow
	Engagement  *engagementView

	ThemeToggleURL template.URL
	OtherTheme     string
}

// viewParams are the sanitized request parameters driving one render.
type viewParams struct {
	State table.State
	Theme string
	Lang  string
}

// buildView assembles the page model. A nil dataset produces the empty-state
// page with the controls still visible.
func buildView(d *payload.Dataset, tr *i18n.Translator, p viewParams) pageView {
	v := pageView{
		L:     resolveLabels(tr),
		Lang:  tr.Lang,
		Theme: p.Theme,
		Query: p.State.Query,
	}

	v.OtherTheme = config.ThemeLight
	if p.Theme == config.ThemeLight {
		v.OtherTheme = config.ThemeDark
	}
	v.ThemeToggleURL = pageURL(p.State, v.OtherTheme, p.Lang)

	v.Columns = buildColumns(tr, p)

	if d == nil {
		return v
	}

	v.HasData = true
	v.Org = d.OrgName
	v.GeneratedAt = d.Timestamp

	v.Cards = buildCards(d, tr)
	v.Rows = table.Apply(table.RowsFrom(d.Events()), p.State)
	v.Comparisons = buildComparisonRows(d.Events(), tr)

	bundle := charts.Build(d)
	if chartJSON, err := json.Marshal(bundle); err == nil {
		v.ChartJSON = template.JS(chartJSON)
		v.HasCharts = len(bundle.Types) > 0 || len(bundle.Timeline) > 0
	}

	v.Insights = d.AIInsights
	v.Predictions = buildPredictionRows(d.Predictions, tr)
	v.Engagement = buildEngagementView(d.Engagement)

	return v
}

func resolveLabels(tr *i18n.Translator) labels {
	return labels{
		PageTitle:       tr.GetMsg(config.TKeyPageTitle),
		SectionSummary:  tr.GetMsg(config.TKeySectionSummary),
		SectionCharts:   tr.GetMsg(config.TKeySectionCharts),
		SectionEvents:   tr.GetMsg(config.TKeySectionEvents),
		SectionCompare:  tr.GetMsg(config.TKeySectionCompare),
		SectionInsights: tr.GetMsg(config.TKeySectionInsights),
		SectionPredict:  tr.GetMsg(config.TKeySectionPredict),
		SectionAudience: tr.GetMsg(config.TKeySectionAudience),
		Search:          tr.GetMsg(config.TKeyLblSearch),
		Theme:           tr.GetMsg(config.TKeyLblTheme),
		Refresh:         tr.GetMsg(config.TKeyBtnRefresh),
		ExportJSON:      tr.GetMsg(config.TKeyBtnExportJSON),
		ExportCSV:       tr.GetMsg(config.TKeyBtnExportCSV),
		ExportICS:       tr.GetMsg(config.TKeyBtnExportICS),
		NoData:          tr.GetMsg(config.TKeyNoData),
		NoDataHint:      tr.GetMsg(config.TKeyNoDataHint),
		NotApplicable:   tr.GetMsg(config.TKeyNotApplicable),
	}
}

// pageURL rebuilds the dashboard URL preserving the current view state.
func pageURL(st table.State, theme, lang string) template.URL {
	q := url.Values{}
	if st.Query != "" {
		q.Set(config.QueryParamFilter, st.Query)
	}
	q.Set(config.QueryParamSort, strconv.Itoa(st.SortCol))
	dir := config.DirDescending
	if st.SortAsc {
		dir = config.DirAscending
	}
	q.Set(config.QueryParamDir, dir)
	if theme != "" {
		q.Set(config.QueryParamTheme, theme)
	}
	if lang != "" {
		q.Set(config.QueryParamLang, lang)
	}
	return template.URL(config.RouteRoot + "?" + q.Encode())
}

func buildColumns(tr *i18n.Translator, p viewParams) []columnHeader {
	titles := [config.ColumnCount]string{
		config.ColIDName:     tr.GetMsg(config.TKeyColName),
		config.ColIDDate:     tr.GetMsg(config.TKeyColDate),
		config.ColIDType:     tr.GetMsg(config.TKeyColType),
		config.ColIDExpected: tr.GetMsg(config.TKeyColExpected),
		config.ColIDActual:   tr.GetMsg(config.TKeyColActual),
		config.ColIDRate:     tr.GetMsg(config.TKeyColRate),
	}

	cols := make([]columnHeader, config.ColumnCount)
	for i := 0; i < config.ColumnCount; i++ {
		h := columnHeader{
			Title:  titles[i],
			Active: i == p.State.SortCol,
			URL:    pageURL(p.State.Toggle(i), p.Theme, p.Lang),
		}
		if h.Active {
			h.Icon = config.SortIconDesc
			if p.State.SortAsc {
				h.Icon = config.SortIconAsc
			}
		}
		cols[i] = h
	}
	return cols
}

func buildCards(d *payload.Dataset, tr *i18n.Translator) []statCard {
	s := d.Summary
	cards := []statCard{
		{
			Label:    tr.GetMsg(config.TKeyLblTotalEvents),
			Value:    metrics.Count(s.TotalEvents),
			Target:   s.TotalEvents,
			Animated: true,
		},
		{
			Label:    tr.GetMsg(config.TKeyLblAttendees),
			Value:    metrics.Count(s.TotalAttendees),
			Target:   s.TotalAttendees,
			Animated: true,
		},
		{
			Label: tr.GetMsg(config.TKeyLblAvgAttend),
			Value: fmt.Sprintf("%.1f", s.AvgAttendance),
		},
		{
			Label: tr.GetMsg(config.TKeyLblRate),
			Value: metrics.Percent(s.AttendanceRate),
		},
	}

	// Budget figures are optional in the payload; a zero budget hides the
	// money cards entirely rather than showing $0.
	if s.HasBudget() {
		cards = append(cards,
			statCard{
				Label: tr.GetMsg(config.TKeyLblBudget),
				Value: metrics.Currency(s.TotalBudget),
			},
			statCard{
				Label: tr.GetMsg(config.TKeyLblCostPer),
				Value: metrics.Currency(s.CostPerAttendee),
			},
		)
	}

	if d.Engagement != nil {
		cards = append(cards, statCard{
			Label: tr.GetMsg(config.TKeyLblEngagement),
			Value: fmt.Sprintf("%.0f (%s)", d.Engagement.Score, d.Engagement.Grade),
		})
	}

	return cards
}

func buildComparisonRows(events []payload.Event, tr *i18n.Translator) []comparisonRow {
	comps := reconcile.BuildComparisons(events)
	rows := make([]comparisonRow, 0, len(comps))

	for _, c := range comps {
		row := comparisonRow{
			Name:        c.Name,
			PrevLabel:   fmt.Sprintf("%s (%s)", metrics.Count(c.Previous.Actual), c.Previous.Date),
			LatestLabel: fmt.Sprintf("%s (%s)", metrics.Count(c.Latest.Actual), c.Latest.Date),
			Attendance:  metrics.SignedDelta(c.AttendanceDelta),
			Rate:        metrics.SignedPercent(c.RateDelta),
			Defined:     c.PercentDefined,
			Positive:    c.AttendanceDelta >= 0,
		}
		if c.PercentDefined {
			row.Percent = metrics.SignedPercent(c.PercentDelta)
		} else {
			row.Percent = tr.GetMsg(config.TKeyDeltaUndefined)
		}
		rows = append(rows, row)
	}
	return rows
}

func buildPredictionRows(preds map[string]payload.Prediction, tr *i18n.Translator) []predictionRow {
	if len(preds) == 0 {
		return nil
	}

	types := make([]string, 0, len(preds))
	for t := range preds {
		types = append(types, t)
	}
	sort.Strings(types)

	rows := make([]predictionRow, 0, len(types))
	for _, t := range types {
		p := preds[t]
		row := predictionRow{
			Type:       t,
			Attendance: fmt.Sprintf("%.1f", p.AvgAttendance),
			Rate:       metrics.Percent(p.AttendanceRate),
			Samples:    p.SampleSize,
			Range:      fmt.Sprintf("%d – %d", p.MinAttendance, p.MaxAttendance),
		}
		row.Budget = tr.GetMsg(config.TKeyNotApplicable)
		row.CostPer = tr.GetMsg(config.TKeyNotApplicable)
		if p.AvgBudget > 0 {
			row.Budget = metrics.Currency(p.AvgBudget)
		}
		if p.AvgCostPerAttendee > 0 {
			row.CostPer = metrics.Currency(p.AvgCostPerAttendee)
		}
		rows = append(rows, row)
	}
	return rows
}

func buildEngagementView(e *payload.EngagementScore) *engagementView {
	if e == nil {
		return nil
	}

	v := &engagementView{
		Score: fmt.Sprintf("%.0f", e.Score),
		Grade: e.Grade,
	}

	names := make([]string, 0, len(e.Breakdown))
	for n := range e.Breakdown {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		v.Breakdown = append(v.Breakdown, breakdownRow{
			Name:  n,
			Value: fmt.Sprintf("%.1f", e.Breakdown[n]),
		})
	}
	return v
}
