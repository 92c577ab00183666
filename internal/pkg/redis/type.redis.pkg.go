package redis

import (
	"context"
	"time"

	_redis "github.com/redis/go-redis/v9"
)

// NilType is returned by go-redis when a key does not exist.
var NilType = _redis.Nil

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	DB       int
	PoolSize int
}

type Client struct {
	Client *_redis.Client
	ctx    context.Context
	cancel context.CancelFunc
	config *Config
}

type IRedis interface {
	Set(key string, value any, expiration time.Duration) error
	SetRaw(key string, value string, expiration time.Duration) error
	Get(key string) (string, error)
	Del(keys ...string) error
	Expire(key string, expiration time.Duration) error
	SetNX(key string, value string, expiration time.Duration) (bool, error)
	CompareAndDelete(key string, value string) (bool, error)
	Ping() error
	Close() error
}
