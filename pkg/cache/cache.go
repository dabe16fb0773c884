// Package cache is a thin Redis facade. All helpers no-op safely when Redis
// is unavailable so the API keeps serving (uncached) reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shashiranjanraj/repwear/config"
)

var RDB *redis.Client
var Ctx = context.Background()

// Connect initialises the Redis client and verifies the connection with a
// ping. Returns an error so the caller can react (log warning, fall back,
// or abort).
func Connect() error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(Ctx).Err(); err != nil {
		RDB = nil // mark as unavailable so Get/Set/Del no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get retrieves a cached value by key and unmarshals into dest.
// Returns true on a cache hit, false on miss or error.
func Get(key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(Ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set stores value in Redis under key for the given TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(Ctx, key, data, ttl).Err()
}

// SetNX atomically claims key for ttl. Returns true if the key was newly
// set, false if it already existed. Used as the webhook replay guard:
// the first delivery of an event claims its ID, redeliveries see false.
//
// When Redis is down it reports (true, error): the caller processes the
// event anyway — double-processing beats dropping an order.
func SetNX(key string, value interface{}, ttl time.Duration) (bool, error) {
	if RDB == nil {
		return true, fmt.Errorf("cache: redis unavailable")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	ok, err := RDB.SetNX(Ctx, key, data, ttl).Result()
	if err != nil {
		return true, err
	}
	return ok, nil
}

// Del removes one or more keys from Redis.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}

// Forget is an alias for Del.
func Forget(key string) error {
	return Del(key)
}
