package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Cache key construction
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// WalletCacheKey is the cache key of a user's wallet record
func WalletCacheKey(userID uint) string {
	return "wallet:user:" + strconv.Itoa(int(userID))
}

// StatsCacheKey is the cache key of a user's statistics for a month window
func StatsCacheKey(userID uint, months int) string {
	return "stats:user:" + strconv.Itoa(int(userID)) + ":months:" + strconv.Itoa(months)
}

// TxPageCacheKey is the cache key of one page of a user's transaction history
func TxPageCacheKey(userID uint, limit, offset int) string {
	return "txhistory:user:" + strconv.Itoa(int(userID)) + ":limit:" + strconv.Itoa(limit) + ":offset:" + strconv.Itoa(offset)
}

// InvalidateUserCaches drops the cached wallet, transaction pages and stats of
// a user after a balance mutation. Simple version: the first 5 default-sized
// history pages and the common stats windows.
func InvalidateUserCaches(ctx context.Context, rdb *redis.Client, userID uint) {
	_ = DeleteCache(ctx, rdb, WalletCacheKey(userID)) // Invalidate wallet cache
	for i := 0; i < 5; i++ {
		_ = DeleteCache(ctx, rdb, TxPageCacheKey(userID, 50, i*50)) // Invalidate history pages
	}
	for _, months := range []int{3, 6, 12} {
		_ = DeleteCache(ctx, rdb, StatsCacheKey(userID, months)) // Invalidate stats windows
	}
}
