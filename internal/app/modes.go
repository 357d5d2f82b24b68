package app

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mholloway/congresswatch/internal/fetch"
	"github.com/mholloway/congresswatch/internal/pipeline"
	"github.com/mholloway/congresswatch/internal/platform/govtrack"
	"github.com/mholloway/congresswatch/internal/platform/stockwatcher"
	"github.com/mholloway/congresswatch/internal/server"
	"github.com/mholloway/congresswatch/internal/server/handler"
	"github.com/mholloway/congresswatch/internal/server/ws"
)

// buildRunner assembles the sync pipeline from the wired dependencies. hub may
// be nil when no WebSocket broadcast is wanted.
func (a *App) buildRunner(deps *Dependencies, hub *ws.Hub) *pipeline.Runner {
	fetcher := fetch.NewClient()

	govtrackClient := govtrack.NewClient(
		a.cfg.Sources.GovTrackBaseURL,
		a.cfg.Sync.MemberLimit,
		a.cfg.Sync.RosterTimeout.Duration,
		fetcher,
	)
	stockwatcherClient := stockwatcher.NewClient(
		a.cfg.Sources.StockWatcherFeedURL,
		a.cfg.Sync.TradesTimeout.Duration,
		fetcher,
	)

	roster := pipeline.NewRosterSync(govtrackClient, deps.MemberStore, deps.Archiver, a.logger)
	trades := pipeline.NewTradeSync(stockwatcherClient, deps.MemberStore, deps.TradeStore, deps.Archiver, a.logger)
	orch := pipeline.NewOrchestrator(roster, trades, a.cfg.Sync.RunDeadline.Duration, a.logger)

	var broadcaster pipeline.Broadcaster
	if hub != nil {
		broadcaster = hub
	}
	var notifier pipeline.Notifier
	if deps.Notifier != nil {
		notifier = deps.Notifier
	}

	return pipeline.NewRunner(
		orch,
		deps.LockManager,
		deps.ReportCache,
		broadcaster,
		notifier,
		a.cfg.Sync.LockTTL.Duration,
		a.cfg.Sync.ReportTTL.Duration,
		a.logger,
	)
}

// buildServer assembles the HTTP server with all handlers registered.
func (a *App) buildServer(deps *Dependencies, runner *pipeline.Runner, hub *ws.Hub) *server.Server {
	handlers := server.Handlers{
		Health: handler.NewHealthHandler(a.logger),
		Sync:   handler.NewSyncHandler(runner, deps.ReportCache, a.logger),
		Stats:  handler.NewStatsHandler(deps.MemberStore, deps.TradeStore, a.logger),
	}
	return server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}, handlers, hub, a.logger)
}

// SyncMode runs one sync cycle and exits. The process exit code reflects the
// run outcome, which makes this mode suitable for cron-style invocation.
func (a *App) SyncMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting sync mode")

	runner := a.buildRunner(deps, nil)
	report, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "sync finished",
		slog.String("status", report.Status),
		slog.String("message", report.Message),
	)
	return nil
}

// ServerMode starts the HTTP API without the interval scheduler. Syncs only
// run when triggered through the API.
func (a *App) ServerMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting server mode")

	hub := ws.NewHub(a.logger)
	runner := a.buildRunner(deps, hub)
	srv := a.buildServer(deps, runner, hub)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})
	return g.Wait()
}

// FullMode starts the HTTP API and the interval scheduler together. Scheduled
// and API-triggered runs share one runner, so the overlap lock coordinates
// them.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode",
		slog.Duration("interval", a.cfg.Sync.Interval.Duration),
	)

	hub := ws.NewHub(a.logger)
	runner := a.buildRunner(deps, hub)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := runner.RunLoop(ctx, a.cfg.Sync.Interval.Duration, nil)
		if ctx.Err() != nil {
			return nil
		}
		return err
	})

	if a.cfg.Server.Enabled {
		srv := a.buildServer(deps, runner, hub)
		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutCtx)
		})
	}

	return g.Wait()
}
