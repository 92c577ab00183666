package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-gorm/caches/v4"
	_redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	OrderID string
}

func exerciseCacher(t *testing.T, c caches.Cacher) {
	t.Helper()
	ctx := context.Background()
	key := caches.IdentifierPrefix + "orphans"

	miss, err := c.Get(ctx, key, &caches.Query[any]{Dest: &[]row{}})
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.Store(ctx, key, &caches.Query[any]{Dest: []row{{OrderID: "o-1"}}, RowsAffected: 1}))

	dest := []row{}
	hit, err := c.Get(ctx, key, &caches.Query[any]{Dest: &dest})
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, int64(1), hit.RowsAffected)
	assert.Equal(t, []row{{OrderID: "o-1"}}, dest)

	require.NoError(t, c.Invalidate(ctx))
	miss, err = c.Get(ctx, key, &caches.Query[any]{Dest: &[]row{}})
	require.NoError(t, err)
	assert.Nil(t, miss)
}

func TestMemoryCacher(t *testing.T) {
	exerciseCacher(t, &memoryCacher{})
}

func TestRedisCacher(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := _redis.NewClient(&_redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	exerciseCacher(t, &redisCacher{rdb: rdb, cacheTime: time.Minute})
}

func TestDialectorFor_Unsupported(t *testing.T) {
	_, err := dialectorFor(&Config{Driver: "sqlite"})
	assert.Error(t, err)

	d, err := dialectorFor(&Config{Driver: MYSQL, Host: "h", Port: 3306})
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())
}
