package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"frostbar-backend/internal/config"
	"frostbar-backend/internal/domain"
	"frostbar-backend/internal/logger"

	"github.com/redis/go-redis/v9"
)

const settingsKey = "pricing:settings"

// SettingsCache is a read-through cache for the pricing settings row. Quotes
// are recomputed on every keystroke, so the rate table is by far the hottest
// read in the system.
type SettingsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSettingsCache(cfg config.RedisConfig) *SettingsCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &SettingsCache{
		client: client,
		ttl:    time.Duration(cfg.TTLSeconds) * time.Second,
	}
}

// Get returns the cached settings, or (nil, nil) on a miss. Redis errors are
// logged and reported as a miss; the caller falls through to Postgres.
func (c *SettingsCache) Get(ctx context.Context) (*domain.PricingSettings, error) {
	data, err := c.client.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		logger.Warn("Settings cache get failed", "error", err)
		return nil, nil
	}

	var settings domain.PricingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		logger.Warn("Settings cache held invalid payload", "error", err)
		return nil, nil
	}
	return &settings, nil
}

// Set stores the settings with the configured TTL.
func (c *SettingsCache) Set(ctx context.Context, settings *domain.PricingSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, settingsKey, data, c.ttl).Err(); err != nil {
		logger.Warn("Settings cache set failed", "error", err)
		return err
	}
	return nil
}

// Invalidate drops the cached settings after an admin update.
func (c *SettingsCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, settingsKey).Err()
}

// Close releases the redis connection.
func (c *SettingsCache) Close() error {
	return c.client.Close()
}
