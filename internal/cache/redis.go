// Package cache wraps the optional redis client used to memoize generated
// interview reports.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache returns nil when addr is empty; a nil cache is a no-op.
func NewReportCache(addr, password string, db int, ttl time.Duration) *ReportCache {
	if addr == "" {
		return nil
	}
	return &ReportCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func (rc *ReportCache) Get(ctx context.Context, key string) (string, bool) {
	if rc == nil {
		return "", false
	}
	v, err := rc.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (rc *ReportCache) Set(ctx context.Context, key, report string) {
	if rc == nil {
		return
	}
	// cache errors are ignored; the report is regenerated on a miss
	rc.client.Set(ctx, key, report, rc.ttl)
}

func (rc *ReportCache) Ping(ctx context.Context) error {
	if rc == nil {
		return nil
	}
	return rc.client.Ping(ctx).Err()
}
