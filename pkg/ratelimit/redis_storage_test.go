package ratelimit

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStorage(rdb, "ratelimit:"), mr
}

func TestRedisStorageGetMiss(t *testing.T) {
	s, _ := newTestStorage(t)

	val, err := s.Get("127.0.0.1")
	assert.NoError(t, err)
	assert.Nil(t, val)

	val, err = s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorageSetWithExpiry(t *testing.T) {
	s, mr := newTestStorage(t)

	require.NoError(t, s.Set("127.0.0.1", []byte("3"), time.Minute))
	assert.True(t, mr.Exists("ratelimit:127.0.0.1"))
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:127.0.0.1"))

	val, err := s.Get("127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	mr.FastForward(time.Minute)
	val, err = s.Get("127.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestRedisStorageSetWithoutExpiry(t *testing.T) {
	s, mr := newTestStorage(t)

	require.NoError(t, s.Set("10.0.0.1", []byte("1"), 0))
	assert.Equal(t, time.Duration(0), mr.TTL("ratelimit:10.0.0.1"))

	// empty values are not stored
	require.NoError(t, s.Set("10.0.0.2", nil, time.Minute))
	assert.False(t, mr.Exists("ratelimit:10.0.0.2"))
}

func TestRedisStorageDelete(t *testing.T) {
	s, mr := newTestStorage(t)

	require.NoError(t, s.Set("127.0.0.1", []byte("1"), time.Minute))
	require.NoError(t, s.Delete("127.0.0.1"))
	assert.False(t, mr.Exists("ratelimit:127.0.0.1"))
}

func TestRedisStorageResetKeepsOtherPrefixes(t *testing.T) {
	s, mr := newTestStorage(t)

	require.NoError(t, s.Set("a", []byte("1"), time.Minute))
	require.NoError(t, s.Set("b", []byte("2"), time.Minute))
	require.NoError(t, mr.Set("lead_feed:last", "x"))

	require.NoError(t, s.Reset())

	assert.False(t, mr.Exists("ratelimit:a"))
	assert.False(t, mr.Exists("ratelimit:b"))
	assert.True(t, mr.Exists("lead_feed:last"))
}
