package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Cri010101/toelettatura-system/internal/models"
)

const activeServicesKey = "catalog:services:active"

var ErrMiss = errors.New("cache miss")

// CatalogCache keeps the JSON encoded list of active services in Redis.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (c *CatalogCache) GetActiveServices(ctx context.Context) ([]models.Service, error) {
	raw, err := c.client.Get(ctx, activeServicesKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}

	var services []models.Service
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, fmt.Errorf("decode cached catalog: %w", err)
	}
	return services, nil
}

func (c *CatalogCache) SetActiveServices(ctx context.Context, services []models.Service) error {
	raw, err := json.Marshal(services)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, activeServicesKey, raw, c.ttl).Err()
}

func (c *CatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
