package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Luismorlan/newsdash/utils"
	Logger "github.com/Luismorlan/newsdash/utils/log"
	"github.com/Luismorlan/newsdash/utils/metrics"
)

// RedisCache is a Cache[[]byte] shared between processes. Entries expire
// through redis key expiry, capacity is whatever the redis instance allows.
// Redis failures are logged and reported as misses.
type RedisCache struct {
	name  string
	ttl   time.Duration
	inner *redis.Client
}

var ctx = context.Background()

// GetRedisCache connects to the redis instance configured by REDIS_HOST,
// REDIS_PORT and REDIS_PASSWD and fails if it is not reachable.
func GetRedisCache(name string, ttl time.Duration) (*RedisCache, error) {
	redisClient, err := utils.GetRedisClient(ctx)
	if err != nil {
		return nil, err
	}
	return NewRedisCache(name, ttl, redisClient), nil
}

func NewRedisCache(name string, ttl time.Duration, client *redis.Client) *RedisCache {
	return &RedisCache{name: name, ttl: ttl, inner: client}
}

func (r *RedisCache) key(key string) string {
	return r.name + "__" + key
}

func (r *RedisCache) Get(key string) ([]byte, bool) {
	value, err := r.inner.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			Logger.Log.WithField("cache", r.name).Errorln("redis get failed: ", err)
		}
		metrics.CacheRequests.WithLabelValues(r.name, "miss").Inc()
		return nil, false
	}
	metrics.CacheRequests.WithLabelValues(r.name, "hit").Inc()
	return value, true
}

func (r *RedisCache) Put(key string, value []byte) {
	if err := r.inner.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		Logger.Log.WithField("cache", r.name).Errorln("redis set failed: ", err)
		return
	}
	metrics.CachePuts.WithLabelValues(r.name).Inc()
}

// Len counts the keys of this cache. It scans the keyspace and is meant for
// diagnostics only.
func (r *RedisCache) Len() int {
	count := 0
	iter := r.inner.Scan(ctx, 0, r.key("*"), 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		Logger.Log.WithField("cache", r.name).Errorln("redis scan failed: ", err)
	}
	return count
}
