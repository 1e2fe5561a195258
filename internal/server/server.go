// Package server exposes the dashboard over HTTP: the rendered page, the raw
// payload with caching headers, the export downloads, and operational routes.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/export"
	"github.com/tartampluch/go-eventboard/internal/i18n"
	"github.com/tartampluch/go-eventboard/internal/payload"
	"github.com/tartampluch/go-eventboard/internal/table"
)

// snapshot stores one published dataset with its serialized form and HTTP
// caching metadata.
type snapshot struct {
	dataset      *payload.Dataset
	raw          []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// DashboardServer serves the dashboard. The current dataset lives behind an
// atomic.Pointer: page and data requests read lock-free while the background
// refresh worker swaps in whole snapshots.
type DashboardServer struct {
	snapshot atomic.Pointer[snapshot]

	Port     string
	Catalog  *i18n.Catalog
	Exporter *export.Exporter
	Metrics  *Metrics

	// RequestRefresh asks the controller for a manual reload. Nil disables
	// the refresh route's effect but keeps the page working.
	RequestRefresh func()

	DefaultTheme string
	DefaultLang  string
}

// NewDashboardServer wires a server with the app defaults; callers adjust
// theme, language and the refresh hook before Start.
func NewDashboardServer(port string, catalog *i18n.Catalog, exporter *export.Exporter) *DashboardServer {
	return &DashboardServer{
		Port:         port,
		Catalog:      catalog,
		Exporter:     exporter,
		Metrics:      NewMetrics(),
		DefaultTheme: config.DefaultTheme,
		DefaultLang:  config.DefaultLanguage,
	}
}

// Start binds the listener and blocks until the context is cancelled.
func (s *DashboardServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Handler builds the route table. Exposed for handler-level tests.
func (s *DashboardServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleDashboard)
	mux.HandleFunc(config.RouteData, s.handleData)
	mux.HandleFunc(config.RouteExportJSON, s.exportHandler(func(d *payload.Dataset) (export.File, error) { return s.Exporter.JSON(d) }))
	mux.HandleFunc(config.RouteExportCSV, s.exportHandler(func(d *payload.Dataset) (export.File, error) { return s.Exporter.CSV(d) }))
	mux.HandleFunc(config.RouteExportICS, s.exportHandler(func(d *payload.Dataset) (export.File, error) { return s.Exporter.ICS(d) }))
	mux.HandleFunc(config.RouteRefresh, s.handleRefresh)
	mux.HandleFunc(config.RouteHealthz, s.handleHealthz)
	mux.Handle(config.RouteMetrics, promhttp.HandlerFor(s.Metrics.registry, promhttp.HandlerOpts{}))
	return mux
}

// Publish atomically replaces the served dataset.
func (s *DashboardServer) Publish(d *payload.Dataset) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(raw)
	item := &snapshot{
		dataset:      d,
		raw:          raw,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	// Atomic store ensures that any concurrent reader sees either the old or
	// the new complete item, never a partial state.
	s.snapshot.Store(item)

	slog.Debug(config.MsgSnapshotSet,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyEvents, len(d.Events()),
		config.LogKeySizeBytes, len(raw),
		config.LogKeyETag, item.etag,
	)
	return nil
}

// checkMethod enforces the read-only method policy and counts the request.
func (s *DashboardServer) checkMethod(w http.ResponseWriter, r *http.Request, route string) bool {
	s.Metrics.HTTPRequests.WithLabelValues(route).Inc()

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// handleDashboard renders the page. A missing dataset still renders, in its
// empty state, so the user sees the controls and the hint instead of an
// error page.
func (s *DashboardServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != config.RouteRoot {
		http.NotFound(w, r)
		return
	}
	if !s.checkMethod(w, r, config.RouteRoot) {
		return
	}

	q := r.URL.Query()

	theme := q.Get(config.QueryParamTheme)
	if theme != config.ThemeDark && theme != config.ThemeLight {
		theme = s.DefaultTheme
	}
	lang := q.Get(config.QueryParamLang)
	if lang == "" {
		lang = s.DefaultLang
	}
	tr := s.Catalog.Translator(lang)

	params := viewParams{
		State: table.StateFromParams(
			q.Get(config.QueryParamFilter),
			q.Get(config.QueryParamSort),
			q.Get(config.QueryParamDir),
		),
		Theme: theme,
		Lang:  tr.Lang,
	}

	var dataset *payload.Dataset
	if item := s.snapshot.Load(); item != nil {
		dataset = item.dataset
	}

	view := buildView(dataset, tr, params)

	w.Header().Set(config.HeaderContentType, config.MimeTextHTML)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)

	if r.Method == http.MethodHead {
		return
	}

	var buf bytes.Buffer
	if err := getDashboardTemplate().Execute(&buf, view); err != nil {
		slog.Error(config.ErrRenderPage,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// handleData serves the raw payload JSON with full HTTP caching support.
func (s *DashboardServer) handleData(w http.ResponseWriter, r *http.Request) {
	if !s.checkMethod(w, r, config.RouteData) {
		return
	}

	item := s.snapshot.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.raw)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// exportHandler adapts one exporter function into a download route.
func (s *DashboardServer) exportHandler(build func(*payload.Dataset) (export.File, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.checkMethod(w, r, r.URL.Path) {
			return
		}

		item := s.snapshot.Load()
		if item == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgNoExport, http.StatusServiceUnavailable)
			return
		}

		f, err := build(item.dataset)
		if err != nil {
			slog.Error(config.ErrRenderPage,
				config.LogKeyComponent, config.CompExport,
				config.LogKeyError, err,
			)
			http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
			return
		}

		w.Header().Set(config.HeaderContentType, f.MIME)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderContentDisp, fmt.Sprintf(config.FormatAttachment, f.Name))

		if r.Method == http.MethodGet {
			if _, err := w.Write(f.Data); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}

// handleRefresh triggers a manual reload and bounces back to the dashboard.
func (s *DashboardServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !s.checkMethod(w, r, config.RouteRefresh) {
		return
	}

	slog.Info(config.MsgLoadReq,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyManual, true,
	)
	if s.RequestRefresh != nil {
		s.RequestRefresh()
	}

	w.Header().Set(config.HeaderLocation, config.RouteRoot)
	w.WriteHeader(http.StatusSeeOther)
}

func (s *DashboardServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if !s.checkMethod(w, r, config.RouteHealthz) {
		return
	}
	w.Header().Set(config.HeaderContentType, config.MimeTextHTML)
	if _, err := io.WriteString(w, config.HTTPMsgHealthy); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
