package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mholloway/congresswatch/internal/domain"
)

// ErrDeadline reports that the orchestrator's wall-clock budget elapsed
// before both syncs finished.
var ErrDeadline = errors.New("pipeline: sync deadline exceeded")

// Orchestrator runs the roster sync and then the trade sync, strictly in that
// order: trade filer resolution must see the roster rows inserted in the same
// run. The whole sequence is bounded by a wall-clock deadline.
type Orchestrator struct {
	roster   *RosterSync
	trades   *TradeSync
	deadline time.Duration
	logger   *slog.Logger
}

// NewOrchestrator creates an Orchestrator with the given run deadline.
func NewOrchestrator(roster *RosterSync, trades *TradeSync, deadline time.Duration, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		roster:   roster,
		trades:   trades,
		deadline: deadline,
		logger:   logger.With(slog.String("component", "orchestrator")),
	}
}

// Run executes one full sync cycle and returns a timestamped report. When the
// deadline elapses first, the report carries a failure status and Run returns
// ErrDeadline; inserts already issued by either sub-sync stay committed — the
// deadline abandons the response, not the writes.
func (o *Orchestrator) Run(ctx context.Context) (domain.SyncReport, error) {
	o.logger.InfoContext(ctx, "starting congress data sync", slog.Duration("deadline", o.deadline))

	resultCh := make(chan domain.SyncResult, 1)
	go func() {
		members := o.roster.Run(ctx)
		trades := o.trades.Run(ctx)
		resultCh <- domain.SyncResult{Members: members, Trades: trades}
	}()

	timer := time.NewTimer(o.deadline)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		o.logger.InfoContext(ctx, "congress data sync completed",
			slog.Int("members_added", result.Members.MembersAdded),
			slog.Int("trades_added", result.Trades.TradesAdded),
		)
		return domain.NewSuccessReport("Congress data sync completed", result), nil

	case <-timer.C:
		o.logger.ErrorContext(ctx, "congress data sync timed out", slog.Duration("deadline", o.deadline))
		return domain.NewErrorReport("Timeout"), ErrDeadline

	case <-ctx.Done():
		o.logger.WarnContext(ctx, "congress data sync cancelled", slog.String("error", ctx.Err().Error()))
		return domain.NewErrorReport(ctx.Err().Error()), ctx.Err()
	}
}
