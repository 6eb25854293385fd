package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Cache key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// ProductsCacheKey caches the public catalog listing.
const ProductsCacheKey = "catalog:products"

// BalanceCacheKey is the cache key for a user's derived wallet balance.
// Every write that appends to the user's transaction log must delete it.
func BalanceCacheKey(userID uint) string {
	return "balance:user:" + strconv.Itoa(int(userID))
}

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
