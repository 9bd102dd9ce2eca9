package cache

import (
	"context"
	"encoding/json"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BusCache caches the full bus list for the search endpoint. It is a pure
// read accelerator; every correctness-bearing read goes to the store.
type BusCache interface {
	GetBuses(ctx context.Context) ([]*entity.Bus, error)
	SetBuses(ctx context.Context, buses []*entity.Bus) error
	Invalidate(ctx context.Context) error
}

const busListKey = "cache:buses"

type redisBusCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewBusCache returns a Redis-backed cache, or a no-op cache when no Redis
// address is configured.
func NewBusCache(config utils.RedisConfig, log *zap.Logger) BusCache {
	if config.Addr == "" {
		return noopBusCache{}
	}

	ttl := time.Duration(config.BusTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &redisBusCache{
		client: redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		}),
		ttl: ttl,
		log: log.With(zap.String("cache", "bus")),
	}
}

func (c *redisBusCache) GetBuses(ctx context.Context) ([]*entity.Bus, error) {
	data, err := c.client.Get(ctx, busListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var buses []*entity.Bus
	if err := json.Unmarshal(data, &buses); err != nil {
		return nil, err
	}
	return buses, nil
}

func (c *redisBusCache) SetBuses(ctx context.Context, buses []*entity.Bus) error {
	payload, err := json.Marshal(buses)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, busListKey, payload, c.ttl).Err()
}

func (c *redisBusCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, busListKey).Err()
}

type noopBusCache struct{}

func (noopBusCache) GetBuses(ctx context.Context) ([]*entity.Bus, error) { return nil, nil }

func (noopBusCache) SetBuses(ctx context.Context, buses []*entity.Bus) error { return nil }

func (noopBusCache) Invalidate(ctx context.Context) error { return nil }
