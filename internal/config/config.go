package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Eventboard/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Eventboard"
	AppID             = "com.github.tartampluch.go-eventboard"
	KeyringService    = "com.github.tartampluch.go-eventboard"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagConfig       = "config"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to the YAML settings file"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Table Columns
// -----------------------------------------------------------------------------

const (
	// Column IDs (order matches the rendered table and the CSV export)
	ColIDName     = 0
	ColIDDate     = 1
	ColIDType     = 2
	ColIDExpected = 3
	ColIDActual   = 4
	ColIDRate     = 5

	ColumnCount = 6

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	ValueUnknown      = "—"
	LogMsgSorted      = "Event table sorted"
	LogMsgFiltered    = "Event table filtered"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyPageTitle       = "page_title"
	TKeySectionSummary  = "section_summary"
	TKeySectionCharts   = "section_charts"
	TKeySectionEvents   = "section_events"
	TKeySectionCompare  = "section_compare"
	TKeySectionInsights = "section_insights"
	TKeySectionPredict  = "section_predictions"
	TKeySectionAudience = "section_audience"
	TKeyLblTotalEvents  = "lbl_total_events"
	TKeyLblAttendees    = "lbl_total_attendees"
	TKeyLblAvgAttend    = "lbl_avg_attendance"
	TKeyLblRate         = "lbl_attendance_rate"
	TKeyLblBudget       = "lbl_total_budget"
	TKeyLblCostPer      = "lbl_cost_per_attendee"
	TKeyLblEngagement   = "lbl_engagement_score"
	TKeyLblSearch       = "lbl_search"
	TKeyLblTheme        = "lbl_theme"
	TKeyBtnRefresh      = "btn_refresh"
	TKeyBtnExportJSON   = "btn_export_json"
	TKeyBtnExportCSV    = "btn_export_csv"
	TKeyBtnExportICS    = "btn_export_ics"
	TKeyNoData          = "notice_no_data"
	TKeyNoDataHint      = "notice_no_data_hint"
	TKeyNoExport        = "notice_export_no_data"
	TKeyNotApplicable   = "notice_not_applicable"
	TKeyDeltaUndefined  = "delta_undefined"

	// Column Headers
	TKeyColName     = "col_name"
	TKeyColDate     = "col_date"
	TKeyColType     = "col_type"
	TKeyColExpected = "col_expected"
	TKeyColActual   = "col_actual"
	TKeyColRate     = "col_rate"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"

	DefaultPort        = "18090"
	DefaultRefreshMin  = 60
	DefaultLanguage    = "en"
	DefaultTheme       = ThemeDark
	DefaultPayloadPath = "dashboard/data/analysis_results.json"
	DisabledInterval   = 0

	ThemeDark  = "dark"
	ThemeLight = "light"

	// Rate tier thresholds (percent) used for chart color classification.
	RateTierHigh = 85.0
	RateTierMid  = 75.0

	// ComparisonHeadSize bounds the expected-vs-actual chart to the first
	// events in payload order.
	ComparisonHeadSize = 10

	// SeriesMinMembers is the minimum group size for a recurring series.
	SeriesMinMembers = 2

	// CurrencyKiloThreshold is the value above which amounts render as $x.xK.
	CurrencyKiloThreshold = 1000

	// CounterFrameCount is the number of samples produced for an animated
	// counter at the default refresh rate.
	CounterFrameCount      = 60
	CounterDefaultDuration = 2 * time.Second

	UIDSalt = "go-eventboard-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Eventboard//Export//EN"
	ICalCalName = "Events"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goeventboard"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"
	PropDesc       = "DESCRIPTION"
	PropCategories = "CATEGORIES"

	// ICalDescFormat renders attendance figures into the event description.
	ICalDescFormat = "Attendance: %d of %d expected (%s)"

	// StubVCalendar is the minimal valid iCalendar object used when no events exist.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Names
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for event dates in the payload
	DateFormatFullDash = "2006-01-02"
	DateFormatRFC3339  = time.RFC3339
	DateFormatFullT    = "2006-01-02T15:04:05Z"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s@%s"

	// Export
	CSVHeaderName        = "Event"
	CSVHeaderDate        = "Date"
	CSVHeaderType        = "Type"
	CSVHeaderExpected    = "Expected"
	CSVHeaderActual      = "Actual"
	CSVHeaderRate        = "Rate"
	ExportBaseJSON       = "event-analytics-%s.json"
	ExportBaseCSV        = "events-%s.csv"
	ExportBaseICS        = "events-%s.ics"
	ExportDateLayout     = "2006-01-02"
	FormatAttachment     = `attachment; filename="%s"`
	JSONIndent           = "  "
	CSVRatePercentSuffix = "%"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteRoot        = "/"
	RouteData        = "/data.json"
	RouteExportJSON  = "/export/json"
	RouteExportCSV   = "/export/csv"
	RouteExportICS   = "/export/ics"
	RouteRefresh     = "/refresh"
	RouteHealthz     = "/healthz"
	RouteMetrics     = "/metrics"
	QueryParamFilter = "q"
	QueryParamSort   = "sort"
	QueryParamDir    = "dir"
	QueryParamTheme  = "theme"
	QueryParamLang   = "lang"
	DirAscending     = "asc"
	DirDescending    = "desc"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderContentDisp     = "Content-Disposition"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderLocation        = "Location"

	MimeTextHTML        = "text/html; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeCSV             = "text/csv; charset=utf-8"
	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty = "configuration error: local payload path is empty"
	ErrWebURLEmpty    = "configuration error: payload URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrPayloadDecode  = "failed to decode analysis payload"
	ErrPayloadStatus  = "payload endpoint returned unexpected status"
	ErrNoDataset      = "no dataset loaded"
	ErrDateParse      = "unable to parse event date"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrSettingsRead   = "failed to read settings file"
	ErrSettingsParse  = "failed to parse settings file"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrRenderPage     = "failed to render dashboard page"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLocNotInit     = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Dashboard initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgNoExport     = "No dataset loaded; run the analysis step first."
	HTTPMsgHealthy      = "ok"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgLoadStarted    = "Payload load started..."
	MsgLoadSuccess    = "Payload load successful"
	MsgLoadFailed     = "Payload load failed. Check logs."
	MsgLoadReq        = "Reload requested"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgUpdateInterval = "Updating refresh interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgSkippedEvent   = "Skipping event with invalid date"
	MsgExportDone     = "Export generated"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgSnapshotSet    = "Dashboard snapshot updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyEvents    = "events"
	LogKeySeries    = "series"
	LogKeyQuery     = "query"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyOrg       = "org"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompApp     = "app"
	CompLoader  = "loader"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompTable   = "table"
	CompExport  = "export"
)

// -----------------------------------------------------------------------------
// Limits
// -----------------------------------------------------------------------------

const (
	MinPort = 1
	MaxPort = 65535
)
