package domain

import (
	"context"
	"time"
)

// LockManager provides a distributed lock guarding against overlapping sync
// runs. The returned unlock function is safe to call multiple times.
type LockManager interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// ReportCache stores the most recent sync report so callers can inspect the
// outcome of the last run without triggering a new one.
type ReportCache interface {
	SetLast(ctx context.Context, report SyncReport, ttl time.Duration) error
	GetLast(ctx context.Context) (SyncReport, error)
}
