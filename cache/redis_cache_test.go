package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Luismorlan/newsdash/utils/dotenv"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func getTestRedisCache(t *testing.T, ttl time.Duration) *RedisCache {
	t.Helper()
	if os.Getenv("REDIS_HOST") == "" {
		t.Skip("REDIS_HOST not set")
	}
	r, err := GetRedisCache("testonly_"+t.Name(), ttl)
	require.NoError(t, err)
	return r
}

func TestRedisCache_RoundTrip(t *testing.T) {
	r := getTestRedisCache(t, time.Minute)

	r.Put("k", []byte(`{"status":"ok"}`))
	v, ok := r.Get("k")
	require.True(t, ok)
	require.Equal(t, `{"status":"ok"}`, string(v))

	_, ok = r.Get("missing")
	require.False(t, ok)
	require.Equal(t, 1, r.Len())
}

func TestRedisCache_Expiry(t *testing.T) {
	r := getTestRedisCache(t, time.Second)

	r.Put("k", []byte("v"))
	time.Sleep(1500 * time.Millisecond)
	_, ok := r.Get("k")
	require.False(t, ok)
}
