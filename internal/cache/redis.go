package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dieg0espx/spanish-horizons-api/config"
	"github.com/dieg0espx/spanish-horizons-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	slotsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, slotsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		slotsTTL: slotsTTL,
	}
}

func (c *RedisCache) GetSlots(ctx context.Context) ([]domain.SlotListing, error) {
	data, err := c.client.Get(ctx, slotsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var slots []domain.SlotListing
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *RedisCache) SetSlots(ctx context.Context, slots []domain.SlotListing) error {
	payload, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, slotsKey(), payload, c.slotsTTL).Err()
}

// InvalidateSlots drops the cached listing after any slot mutation so the TTL
// is only an upper bound on staleness.
func (c *RedisCache) InvalidateSlots(ctx context.Context) error {
	return c.client.Del(ctx, slotsKey()).Err()
}

func slotsKey() string {
	return "cache:interview_slots"
}
