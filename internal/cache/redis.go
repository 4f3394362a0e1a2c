package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/jetcharter/config"
	"github.com/Domenick1991/jetcharter/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client  *redis.Client
	jetsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, jetsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		jetsTTL: jetsTTL,
	}
}

func (c *RedisCache) GetJets(ctx context.Context) ([]domain.Jet, error) {
	data, err := c.client.Get(ctx, jetsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var jets []domain.Jet
	if err := json.Unmarshal(data, &jets); err != nil {
		return nil, err
	}
	return jets, nil
}

func (c *RedisCache) SetJets(ctx context.Context, jets []domain.Jet) error {
	payload, err := json.Marshal(jets)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, jetsKey(), payload, c.jetsTTL).Err()
}

func (c *RedisCache) InvalidateJets(ctx context.Context) error {
	return c.client.Del(ctx, jetsKey()).Err()
}

// AcquireJetHold takes a short-lived hold on a jet's time window while the
// booking write is in flight. The database stays the source of truth; the
// hold only keeps concurrent users from racing each other to the same slot.
func (c *RedisCache) AcquireJetHold(ctx context.Context, jetID string, from, to time.Time, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, jetHoldKey(jetID, from, to), "held", ttl).Result()
}

func (c *RedisCache) ReleaseJetHold(ctx context.Context, jetID string, from, to time.Time) error {
	return c.client.Del(ctx, jetHoldKey(jetID, from, to)).Err()
}

func jetsKey() string {
	return "cache:jets"
}

func jetHoldKey(jetID string, from, to time.Time) string {
	return fmt.Sprintf("hold:jet:%s:%d-%d", jetID, from.Unix(), to.Unix())
}
