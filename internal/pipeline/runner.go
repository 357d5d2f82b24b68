package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mholloway/congresswatch/internal/domain"
)

// syncLockKey names the distributed lock guarding overlapping runs.
const syncLockKey = "sync-run"

// Broadcaster pushes a completed report to live subscribers.
type Broadcaster interface {
	BroadcastReport(report domain.SyncReport)
}

// Notifier delivers operator alerts.
type Notifier interface {
	Notify(ctx context.Context, event, title, message string) error
}

// Runner wraps the orchestrator with the operational concerns around one run:
// the overlap lock, the last-report cache, live broadcast, and failure
// notifications. Every collaborator besides the orchestrator is optional.
type Runner struct {
	orch        *Orchestrator
	locks       domain.LockManager
	reports     domain.ReportCache
	broadcaster Broadcaster
	notifier    Notifier
	lockTTL     time.Duration
	reportTTL   time.Duration
	logger      *slog.Logger
}

// NewRunner creates a Runner. locks, reports, broadcaster, and notifier may
// each be nil; the corresponding concern is then skipped.
func NewRunner(
	orch *Orchestrator,
	locks domain.LockManager,
	reports domain.ReportCache,
	broadcaster Broadcaster,
	notifier Notifier,
	lockTTL, reportTTL time.Duration,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		orch:        orch,
		locks:       locks,
		reports:     reports,
		broadcaster: broadcaster,
		notifier:    notifier,
		lockTTL:     lockTTL,
		reportTTL:   reportTTL,
		logger:      logger.With(slog.String("component", "sync_runner")),
	}
}

// Run executes one guarded sync cycle. It returns domain.ErrLockHeld when
// another run already holds the lock.
func (r *Runner) Run(ctx context.Context) (domain.SyncReport, error) {
	if r.locks != nil {
		unlock, err := r.locks.Acquire(ctx, syncLockKey, r.lockTTL)
		if err != nil {
			if errors.Is(err, domain.ErrLockHeld) {
				r.logger.WarnContext(ctx, "sync already running, skipping")
				return domain.SyncReport{}, domain.ErrLockHeld
			}
			// A lock-service outage must not stop ingestion; fall back to
			// the store's uniqueness boundary.
			r.logger.WarnContext(ctx, "lock acquire failed, running unguarded", slog.String("error", err.Error()))
		} else {
			defer unlock()
		}
	}

	report, runErr := r.orch.Run(ctx)

	r.record(ctx, report)

	if runErr != nil && r.notifier != nil {
		if err := r.notifier.Notify(ctx, "sync_failed", "Congress sync failed", report.Message); err != nil {
			r.logger.WarnContext(ctx, "failure notification failed", slog.String("error", err.Error()))
		}
	}

	return report, runErr
}

// RunLoop runs guarded sync cycles on a fixed interval until the context is
// cancelled. An optional trigger channel forces an immediate extra cycle.
func (r *Runner) RunLoop(ctx context.Context, interval time.Duration, trigger <-chan struct{}) error {
	// Run immediately on start.
	if _, err := r.Run(ctx); err != nil && !errors.Is(err, domain.ErrLockHeld) {
		r.logger.ErrorContext(ctx, "sync run failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "sync loop stopped")
			return ctx.Err()
		case <-ticker.C:
		case <-trigger:
		}

		if _, err := r.Run(ctx); err != nil && !errors.Is(err, domain.ErrLockHeld) {
			r.logger.ErrorContext(ctx, "sync run failed", slog.String("error", err.Error()))
		}
	}
}

// record caches and broadcasts the report, best-effort.
func (r *Runner) record(ctx context.Context, report domain.SyncReport) {
	if r.reports != nil {
		if err := r.reports.SetLast(ctx, report, r.reportTTL); err != nil {
			r.logger.WarnContext(ctx, "report cache update failed", slog.String("error", err.Error()))
		}
	}
	if r.broadcaster != nil {
		r.broadcaster.BroadcastReport(report)
	}
}
