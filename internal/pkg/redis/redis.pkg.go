package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"pos-terminal/internal/pkg/logger"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// compareAndDelete removes KEYS[1] only while it still holds ARGV[1].
var compareAndDelete = _redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func Setup(ctx context.Context, config *Config) (*Client, error) {
	clientCtx, cancel := context.WithCancel(ctx)

	r := &Client{
		cancel: cancel,
		ctx:    clientCtx,
		config: config,
	}

	if err := r.connect(); err != nil {
		cancel()
		logger.Error.Println(err)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	go r.reconnectHandler()

	return r, nil
}

func (r *Client) connect() error {
	r.Client = _redis.NewClient(&_redis.Options{
		Addr:     fmt.Sprintf("%s:%d", r.config.Host, r.config.Port),
		Username: r.config.Username,
		Password: r.config.Password,
		DB:       r.config.DB,
		PoolSize: r.config.PoolSize,
	})

	if err := r.Client.Ping(r.ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	return nil
}

func (r *Client) reconnectHandler() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			logger.Info.Println("Redis reconnect handler shutting down...")
			return
		case <-ticker.C:
			if err := r.Client.Ping(r.ctx).Err(); err != nil {
				if r.ctx.Err() != nil {
					return
				}
				logger.Warning.Printf("Redis connection lost: %v. Attempting to reconnect...", err)

				attempt := 1
				for r.ctx.Err() == nil {
					logger.Warning.Printf("Reconnect attempt #%d...", attempt)
					old := r.Client
					if err = r.connect(); err == nil {
						_ = old.Close()
						logger.Info.Println("Reconnected to redis.")
						break
					}
					logger.Warning.Printf("Reconnect attempt failed: %v", err)
					time.Sleep(time.Duration(attempt) * time.Second)
					attempt++
				}
			}
		}
	}
}

// Close stops the reconnect handler and closes the pool.
func (r *Client) Close() error {
	r.cancel()
	return r.Client.Close()
}

func (r *Client) Ping() error {
	return r.Client.Ping(r.ctx).Err()
}

// Set stores value as JSON with an expiration time.
func (r *Client) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err = r.Client.Set(r.ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// SetRaw stores value as is.
func (r *Client) SetRaw(key string, value string, expiration time.Duration) error {
	if err := r.Client.Set(r.ctx, key, value, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Get returns "" and no error when the key does not exist.
func (r *Client) Get(key string) (string, error) {
	result, err := r.Client.Get(r.ctx, key).Result()
	if err != nil {
		if errors.Is(err, NilType) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}

func (r *Client) Del(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.Client.Del(r.ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys %v: %w", keys, err)
	}
	return nil
}

func (r *Client) Expire(key string, expiration time.Duration) error {
	if err := r.Client.Expire(r.ctx, key, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set expiration on key %s: %w", key, err)
	}
	return nil
}

// SetNX sets key only when it does not exist yet.
func (r *Client) SetNX(key string, value string, expiration time.Duration) (bool, error) {
	ok, err := r.Client.SetNX(r.ctx, key, value, expiration).Result()
	if err != nil {
		return false, fmt.Errorf("failed to setnx key %s: %w", key, err)
	}
	return ok, nil
}

// CompareAndDelete deletes key when it holds value and reports whether it did.
func (r *Client) CompareAndDelete(key string, value string) (bool, error) {
	n, err := compareAndDelete.Run(r.ctx, r.Client, []string{key}, value).Int()
	if err != nil {
		return false, fmt.Errorf("failed to compare-and-delete key %s: %w", key, err)
	}
	return n == 1, nil
}
