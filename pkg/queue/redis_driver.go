package queue

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisQueueKey = "repwear:queue:default"

// RedisDriver is a durable queue driver backed by a Redis list.
type RedisDriver struct {
	rdb *redis.Client
	key string
}

// NewRedisDriver wraps an existing Redis client.
func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	return &RedisDriver{rdb: rdb, key: redisQueueKey}
}

func (d *RedisDriver) Push(payload []byte) error {
	return d.rdb.LPush(context.Background(), d.key, payload).Err()
}

// Pop blocks up to one second waiting for a job so workers can observe
// context cancellation between polls.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	res, err := d.rdb.BRPop(ctx, time.Second, d.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // timeout, no job
		}
		return nil, err
	}
	// BRPop returns [key, value].
	if len(res) != 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}
