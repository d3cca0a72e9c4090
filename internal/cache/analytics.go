package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/ruthwikaki/invochat-go/internal/config"
)

const (
	analyticsKeyPrefix  = "analytics"
	scanBatchSize       = 100
	defaultAnalyticsTTL = time.Minute
)

// AnalyticsCache stores rendered analytics payloads keyed by company, report
// name and filter parameters. Payloads are JSON blobs; callers decode into
// their own result types.
type AnalyticsCache interface {
	Get(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, dest interface{}) (bool, error)
	Set(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, value interface{}) error
	Invalidate(ctx context.Context, companyID uuid.UUID) error
}

type redisAnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalyticsCache struct{}

func NewAnalyticsCache(cfg config.CacheConfig) (AnalyticsCache, error) {
	if !cfg.Enabled {
		return &noopAnalyticsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalyticsCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAnalyticsCache() AnalyticsCache {
	return &noopAnalyticsCache{}
}

func (c *redisAnalyticsCache) Get(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, dest interface{}) (bool, error) {
	key := buildAnalyticsKey(companyID, report, params)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("decode analytics cache: %w", err)
	}
	return true, nil
}

func (c *redisAnalyticsCache) Set(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, value interface{}) error {
	key := buildAnalyticsKey(companyID, report, params)
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode analytics cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalyticsCache) Invalidate(ctx context.Context, companyID uuid.UUID) error {
	prefix := fmt.Sprintf("%s:%s:", analyticsKeyPrefix, companyID)
	return deleteKeysWithPrefix(ctx, c.client, prefix, scanBatchSize)
}

func (n *noopAnalyticsCache) Get(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, dest interface{}) (bool, error) {
	return false, nil
}

func (n *noopAnalyticsCache) Set(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, value interface{}) error {
	return nil
}

func (n *noopAnalyticsCache) Invalidate(ctx context.Context, companyID uuid.UUID) error {
	return nil
}

func buildAnalyticsKey(companyID uuid.UUID, report string, params map[string]string) string {
	base := fmt.Sprintf("%s:%s:%s", analyticsKeyPrefix, companyID, report)
	if len(params) == 0 {
		return base + ":default"
	}

	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)

	raw := strings.Join(parts, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", base, hex.EncodeToString(hash[:]))
}
