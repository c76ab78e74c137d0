// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"queuepoint/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds portal sessions: auth state and wizard sessions.
	SessionCacheClient *redis.Client
	// DirectoryCacheClient is the dedicated client for the business directory cache.
	DirectoryCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client for portal session state
// (using DB from AppConfig for sessions).
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Session Cache): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for portal session state.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitDirectoryCache initializes the Redis client for the directory cache
// (using DB from AppConfig for the directory).
func InitDirectoryCache() {
	DirectoryCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DirectoryCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Directory Cache): %v", err)
	}
}

// GetDirectoryCacheClient returns the Redis client for the directory cache.
func GetDirectoryCacheClient() *redis.Client {
	if DirectoryCacheClient == nil {
		InitDirectoryCache()
	}
	return DirectoryCacheClient
}

// InitRedis eagerly connects every Redis client at startup.
func InitRedis() {
	InitSessionCache()
	InitDirectoryCache()
}
