// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"matrimonial/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client, used for session users.
	CacheClient *redis.Client
	// PreviewCacheClient holds staged photo previews when PREVIEW_STORE=redis.
	PreviewCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitPreviewCache initializes the Redis client for staged previews.
func InitPreviewCache() {
	PreviewCacheClient = newRedisClient(config.AppConfig.RedisPreviewDB, "Preview")
}

// GetPreviewCacheClient returns the Redis client for staged previews.
func GetPreviewCacheClient() *redis.Client {
	if PreviewCacheClient == nil {
		InitPreviewCache()
	}
	return PreviewCacheClient
}

// RedisClients lists the clients that were initialised, for health checks.
func RedisClients() []*redis.Client {
	var out []*redis.Client
	for _, c := range []*redis.Client{CacheClient, PreviewCacheClient} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
