package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimitRedisRepository implements rate limiting counter storage with Redis.
type RateLimitRedisRepository struct {
	r         redis.Cmdable
	keyPrefix string
}

func NewRateLimitRedisRepository(r redis.Cmdable, keyPrefix string) *RateLimitRedisRepository {
	return &RateLimitRedisRepository{r: r, keyPrefix: keyPrefix}
}

// IncrementWindow increments the attempt counter for one client+action
// pair in the current fixed window.
func (repo *RateLimitRedisRepository) IncrementWindow(ctx context.Context, identifier, actionType string, window, ttl time.Duration) (int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(window)
	key := fmt.Sprintf("%s:%s:%s:%d", repo.keyPrefix, identifier, actionType, windowStart.Unix())
	pipe := repo.r.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, windowStart, err
	}
	return int(incr.Val()), windowStart, nil
}
