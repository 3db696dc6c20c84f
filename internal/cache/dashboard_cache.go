package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitprogress/internal/progress"
)

var _ progress.DashboardCache = (*DashboardCache)(nil)

// DashboardCache keeps the computed dashboard summary in redis.
type DashboardCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewDashboardCache(redisClient *redis.Client, ttl time.Duration) *DashboardCache {
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	return &DashboardCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (c *DashboardCache) Get(ctx context.Context) (*progress.Summary, error) {
	cmd := c.redisClient.Get(ctx, dashboardKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			log.Tracef("dashboard not found in redis cache")
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", dashboardKey, err)
	}

	summary := &progress.Summary{}
	if err := json.Unmarshal([]byte(cmd.Val()), summary); err != nil {
		return nil, fmt.Errorf("unmarshal cached dashboard: %w", err)
	}
	return summary, nil
}

func (c *DashboardCache) Set(ctx context.Context, summary *progress.Summary) error {
	summaryBytes, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal dashboard: %w", err)
	}
	if err := c.redisClient.Set(ctx, dashboardKey, summaryBytes, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", dashboardKey, err)
	}
	return nil
}

func (c *DashboardCache) Invalidate(ctx context.Context) error {
	if err := c.redisClient.Del(ctx, dashboardKey).Err(); err != nil {
		return fmt.Errorf("del %s: %w", dashboardKey, err)
	}
	return nil
}
