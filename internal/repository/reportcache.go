// internal/repository/reportcache.go
package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"brand-intel/internal/common/errors"
	"brand-intel/internal/models"
)

// ReportCacheKey holds the latest finished report as JSON.
const ReportCacheKey = "intel:report:latest"

// ReportCache keeps the freshest report in Redis so the HTTP surface never
// has to wait on a pipeline run.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// Store replaces the cached report.
func (c *ReportCache) Store(ctx context.Context, report *models.CompetitiveReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if err := c.client.Set(ctx, ReportCacheKey, payload, c.ttl).Err(); err != nil {
		return errors.NewCacheUnavailableError(err)
	}
	return nil
}

// Latest returns the cached report, or found=false on a cache miss.
func (c *ReportCache) Latest(ctx context.Context) (*models.CompetitiveReport, bool, error) {
	payload, err := c.client.Get(ctx, ReportCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.NewCacheUnavailableError(err)
	}

	var report models.CompetitiveReport
	if err := json.Unmarshal(payload, &report); err != nil {
		// A corrupt entry is treated as a miss; the next run overwrites it.
		return nil, false, nil
	}
	return &report, true, nil
}

// Invalidate drops the cached report.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, ReportCacheKey).Err(); err != nil {
		return errors.NewCacheUnavailableError(err)
	}
	return nil
}
