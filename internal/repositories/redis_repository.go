package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/compralista/shopping-list-platform/internal/config"
	"github.com/redis/go-redis/v9"
)

// ShareRateLimiter bounds anonymous share-code lookups per client.
type ShareRateLimiter interface {
	CheckShareRateLimit(ctx context.Context, clientIP string) (allowed bool, retryAfter int, err error)
}

type RedisRepo struct {
	client *redis.Client
	config *config.Config
}

func NewRedisRepo(cfg *config.Config) (*RedisRepo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Host,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Test the connection to make sure Redis is reachable
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRepo{client: client, config: cfg}, nil
}

// NewRedisRepoWithClient wires a pre-built client, used by tests.
func NewRedisRepoWithClient(client *redis.Client, cfg *config.Config) *RedisRepo {
	return &RedisRepo{client: client, config: cfg}
}

func (r *RedisRepo) Client() *redis.Client {
	return r.client
}

// CheckShareRateLimit keeps a sliding window of lookup timestamps per client
// IP in a sorted set. When the window is full it reports how long the caller
// has to wait.
func (r *RedisRepo) CheckShareRateLimit(ctx context.Context, clientIP string) (bool, int, error) {
	key := fmt.Sprintf("share_lookups:%s", clientIP)

	now := time.Now().Unix()
	windowStart := now - int64(r.config.ShareRate.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.config.ShareRate.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	attempts := count.Val()

	if attempts >= r.config.ShareRate.MaxAttempts {
		oldest, err := r.client.ZRange(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, err
		}

		oldestTime, err := strconv.ParseInt(oldest[0], 10, 64)
		if err != nil {
			return false, 0, err
		}

		retryAfter := int64(r.config.ShareRate.WindowSize.Seconds()) - (now - oldestTime)

		return false, int(retryAfter), nil
	}

	return true, 0, nil
}
