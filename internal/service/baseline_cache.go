package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thiagolazarin/datathon-fiap/internal/domain"
)

const baselineCacheKey = "datathon:baseline:latest"

type redisBaselineCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBaselineCache cria o cache de baseline em Redis. Com client nil
// devolve nil e o chamador segue sem cache.
func NewRedisBaselineCache(client *redis.Client, ttl time.Duration) BaselineCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisBaselineCache{client: client, ttl: ttl}
}

func (c *redisBaselineCache) Get(ctx context.Context) (*domain.Snapshot, bool) {
	data, err := c.client.Get(ctx, baselineCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return &snap, true
}

func (c *redisBaselineCache) Set(ctx context.Context, snap *domain.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	// Cache é otimização: falha de escrita é ignorada de propósito.
	c.client.Set(ctx, baselineCacheKey, data, c.ttl)
}
