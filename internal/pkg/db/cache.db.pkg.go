package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-gorm/caches/v4"
	_redis "github.com/redis/go-redis/v9"
)

type redisCacher struct {
	rdb       *_redis.Client
	cacheTime time.Duration
}

func (c *redisCacher) Get(ctx context.Context, key string, q *caches.Query[any]) (*caches.Query[any], error) {
	res, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, _redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := q.Unmarshal([]byte(res)); err != nil {
		return nil, err
	}
	return q, nil
}

func (c *redisCacher) Store(ctx context.Context, key string, val *caches.Query[any]) error {
	res, err := val.Marshal()
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, res, c.cacheTime).Err()
}

// Invalidate drops every cached query. Called by the plugin after writes.
func (c *redisCacher) Invalidate(ctx context.Context) error {
	var (
		cursor uint64
		keys   []string
	)
	for {
		var (
			batch []string
			err   error
		)
		batch, cursor, err = c.rdb.Scan(ctx, cursor, fmt.Sprintf("%s*", caches.IdentifierPrefix), 100).Result()
		if err != nil {
			return err
		}
		keys = append(keys, batch...)
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

type memoryCacher struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func (c *memoryCacher) Get(_ context.Context, key string, q *caches.Query[any]) (*caches.Query[any], error) {
	c.mu.RLock()
	val, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if err := q.Unmarshal(val); err != nil {
		return nil, err
	}
	return q, nil
}

func (c *memoryCacher) Store(_ context.Context, key string, val *caches.Query[any]) error {
	res, err := val.Marshal()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = make(map[string][]byte)
	}
	c.store[key] = res
	return nil
}

func (c *memoryCacher) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = nil
	return nil
}
