// Package cache provides the fixed-capacity, time-expiring key-value stores
// used by the nlp layer and the news api client. Every instance is
// independent: two caches never share keys or capacity.
package cache

// Cache is a string keyed store whose entries expire after a fixed duration
// or are evicted under capacity pressure.
type Cache[V any] interface {
	// Get returns the value stored under key, false on miss or expiry.
	Get(key string) (V, bool)
	// Put stores value under key, replacing any previous value.
	Put(key string, value V)
	// Len returns the number of stored entries, expired entries which have
	// not been swept yet included.
	Len() int
}
