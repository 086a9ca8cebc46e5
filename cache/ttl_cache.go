package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/Luismorlan/newsdash/utils/metrics"
)

const (
	NlpCacheName = "nlp"
	ApiCacheName = "newsapi"
)

// TTLCache is an in-process least-recently-used cache with a fixed capacity
// and a fixed time-to-live for every entry.
type TTLCache[V any] struct {
	name  string
	inner *expirable.LRU[string, V]
}

// NewTTLCache creates a cache holding at most capacity entries, each expiring
// ttl after it was put. name labels the cache in metrics.
func NewTTLCache[V any](name string, capacity int, ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		name:  name,
		inner: expirable.NewLRU[string, V](capacity, nil, ttl),
	}
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	v, ok := c.inner.Get(key)
	if ok {
		metrics.CacheRequests.WithLabelValues(c.name, "hit").Inc()
	} else {
		metrics.CacheRequests.WithLabelValues(c.name, "miss").Inc()
	}
	return v, ok
}

func (c *TTLCache[V]) Put(key string, value V) {
	c.inner.Add(key, value)
	metrics.CachePuts.WithLabelValues(c.name).Inc()
}

func (c *TTLCache[V]) Len() int {
	return c.inner.Len()
}
