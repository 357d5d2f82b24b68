package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mholloway/congresswatch/internal/domain"
)

// lastReportKey holds the JSON-encoded report of the most recent sync run.
const lastReportKey = "sync:last_report"

// ReportCache implements domain.ReportCache using a single Redis string key
// with a TTL.
type ReportCache struct {
	rdb *redis.Client
}

// NewReportCache creates a ReportCache backed by the given Client.
func NewReportCache(c *Client) *ReportCache {
	return &ReportCache{rdb: c.Underlying()}
}

// SetLast stores the report as the most recent run outcome.
func (rc *ReportCache) SetLast(ctx context.Context, report domain.SyncReport, ttl time.Duration) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("redis: marshal sync report: %w", err)
	}
	if err := rc.rdb.Set(ctx, lastReportKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set last report: %w", err)
	}
	return nil
}

// GetLast returns the most recent run outcome. It returns domain.ErrNotFound
// when no report has been stored or the previous one expired.
func (rc *ReportCache) GetLast(ctx context.Context) (domain.SyncReport, error) {
	data, err := rc.rdb.Get(ctx, lastReportKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SyncReport{}, domain.ErrNotFound
		}
		return domain.SyncReport{}, fmt.Errorf("redis: get last report: %w", err)
	}

	var report domain.SyncReport
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.SyncReport{}, fmt.Errorf("redis: unmarshal sync report: %w", err)
	}
	return report, nil
}

// Compile-time interface check.
var _ domain.ReportCache = (*ReportCache)(nil)
