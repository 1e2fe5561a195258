package payload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/zalando/go-keyring"
)

// SourceConfig contains all parameters required to load the payload.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to analysis_results.json
	URL       string // Payload endpoint for web mode
	User      string // HTTP Basic Auth Username
	Password  string // HTTP Basic Auth Password
}

// Loader retrieves and decodes the analysis payload.
// It is the single writer of the process-wide dataset: a successful Load
// yields a complete replacement snapshot, never a partial merge.
type Loader struct {
	Clock   Clock         // Interface for time mocking.
	Fetcher ReportFetcher // Interface for network abstraction.
}

// Load executes the acquire-and-decode pipeline.
// On any failure it returns a nil dataset and an error the caller translates
// into the visible no-data state; it never panics on malformed input.
func (l *Loader) Load(ctx context.Context, cfg SourceConfig) (*Dataset, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompLoader,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgLoadStarted)

	reader, err := l.acquireStream(ctx, cfg)
	if err != nil {
		// If context error occurred during acquisition, return it directly.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	// Best effort close. Errors in Close() for read-only streams are rarely actionable here.
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var ds Dataset
	dec := json.NewDecoder(reader)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPayloadDecode, err)
	}

	log.Info(config.MsgLoadSuccess,
		config.LogKeyOrg, ds.OrgName,
		config.LogKeyEvents, len(ds.Summary.Events),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return &ds, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (l *Loader) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.URL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return l.Fetcher.Fetch(ctx, cfg.URL, cfg.User, cfg.Password)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// ResolvePassword returns the configured password, falling back to the system
// keyring entry for the given user when the settings file left it empty.
func ResolvePassword(user, configured string) string {
	if configured != "" || user == "" {
		return configured
	}
	p, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		slog.Debug(config.MsgPassFail,
			config.LogKeyUser, user,
			config.LogKeyError, err,
			config.LogKeyComponent, config.CompLoader,
		)
		return ""
	}
	return p
}
