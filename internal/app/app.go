// Package app wires the loader, server and refresh worker into one
// controller driving the dashboard lifecycle.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/go-eventboard/internal/config"
	"github.com/tartampluch/go-eventboard/internal/payload"
	"github.com/tartampluch/go-eventboard/internal/server"
)

// Controller owns the load-publish loop. The server reads snapshots; the
// controller is their single writer.
type Controller struct {
	Settings *config.Settings
	Loader   *payload.Loader
	Server   *server.DashboardServer

	refreshChan chan struct{}
}

// New assembles the controller and hooks the server's manual refresh route
// into the worker loop.
func New(settings *config.Settings, loader *payload.Loader, srv *server.DashboardServer) *Controller {
	c := &Controller{
		Settings:    settings,
		Loader:      loader,
		Server:      srv,
		refreshChan: make(chan struct{}, config.ChannelBufferSize),
	}

	srv.RequestRefresh = c.TriggerRefresh
	srv.DefaultTheme = settings.UI.Theme
	srv.DefaultLang = settings.UI.Language

	return c
}

// TriggerRefresh requests an immediate reload without blocking the caller.
// A refresh already queued absorbs further requests.
func (c *Controller) TriggerRefresh() {
	select {
	case c.refreshChan <- struct{}{}:
	default:
	}
}

// Run performs the startup load, starts the refresh worker, and blocks
// serving HTTP until the context is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.performLoad(ctx, false)

	go c.refreshWorker(ctx)

	return c.Server.Start(ctx)
}

// refreshWorker reloads the payload on a fixed interval and on manual
// requests from the refresh route.
func (c *Controller) refreshWorker(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	interval := c.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-c.refreshChan:
			c.performLoad(ctx, true)
			// Restart the countdown so a manual refresh does not get an
			// immediate periodic reload on its heels.
			ticker.Reset(interval)

		case <-ticker.C:
			c.performLoad(ctx, false)
		}
	}
}

func (c *Controller) interval() time.Duration {
	min := c.Settings.RefreshMin
	if min <= config.DisabledInterval {
		min = config.DefaultRefreshMin
	}
	return time.Duration(min) * time.Minute
}

// performLoad runs one load-publish cycle. A failed load keeps the last good
// snapshot on the server, so transient source errors never blank the page.
func (c *Controller) performLoad(ctx context.Context, manual bool) {
	slog.Info(config.MsgLoadReq,
		config.LogKeyComponent, config.CompApp,
		config.LogKeyManual, manual)

	src := c.Settings.Source
	cfg := payload.SourceConfig{
		Mode:      src.Mode,
		LocalPath: src.LocalPath,
		URL:       src.URL,
		User:      src.User,
		Password:  payload.ResolvePassword(src.User, src.Password),
	}

	dataset, err := c.Loader.Load(ctx, cfg)
	c.Server.Metrics.ObserveLoad(dataset, err, float64(c.Loader.Clock.Now().Unix()))
	if err != nil {
		slog.Error(config.MsgLoadFailed,
			config.LogKeyComponent, config.CompApp,
			config.LogKeyError, err)
		return
	}

	// The settings file may pin the organization name over whatever the
	// analyzer wrote into the payload.
	if c.Settings.UI.OrgName != "" {
		dataset.OrgName = c.Settings.UI.OrgName
	}

	if err := c.Server.Publish(dataset); err != nil {
		slog.Error(config.MsgLoadFailed,
			config.LogKeyComponent, config.CompApp,
			config.LogKeyError, err)
	}
}
