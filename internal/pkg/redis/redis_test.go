package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	client, err := Setup(context.Background(), &Config{Host: mr.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestSetGet(t *testing.T) {
	client, mr := setupTestRedis(t)

	require.NoError(t, client.Set("k", map[string]int{"a": 1}, time.Minute))
	got, err := client.Get("k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, got)

	mr.FastForward(2 * time.Minute)
	got, err = client.Get("k")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSetNX(t *testing.T) {
	client, _ := setupTestRedis(t)

	ok, err := client.SetNX("lock", "a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX("lock", "b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompareAndDelete(t *testing.T) {
	client, mr := setupTestRedis(t)
	require.NoError(t, client.SetRaw("lock", "owner", time.Minute))

	deleted, err := client.CompareAndDelete("lock", "other")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, mr.Exists("lock"))

	deleted, err = client.CompareAndDelete("lock", "owner")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, mr.Exists("lock"))
}

func TestDel(t *testing.T) {
	client, mr := setupTestRedis(t)
	require.NoError(t, client.SetRaw("a", "1", 0))
	require.NoError(t, client.SetRaw("b", "2", 0))

	require.NoError(t, client.Del("a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
	require.NoError(t, client.Del())
}
