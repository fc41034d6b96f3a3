package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a best-effort JSON cache. Misses and backend failures both
// report a miss; callers always have an authoritative source to fall
// back on.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

// NewRedis connects to the redis instance at url. Returns an error when
// the URL is malformed or the server is unreachable.
func NewRedis(url string) (Cache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &redisCache{client: client}, nil
}

type redisCache struct {
	client *redis.Client
}

func (c *redisCache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("[cache] unmarshal %s: %v", key, err)
		return false
	}
	return true
}

func (c *redisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[cache] marshal %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
}

// Nop is the cache used when no redis URL is configured.
type Nop struct{}

func (Nop) GetJSON(context.Context, string, interface{}) bool { return false }

func (Nop) SetJSON(context.Context, string, interface{}, time.Duration) {}
