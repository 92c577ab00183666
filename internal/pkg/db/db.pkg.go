package database

import (
	"fmt"
	"pos-terminal/internal/pkg/redis"
	"time"

	"github.com/go-gorm/caches/v4"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	_logger "gorm.io/gorm/logger"
)

type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	Database  string
	SSLMode   string
	Driver    DriverEnum
	Cache     bool
	Rds       *redis.Client
	CacheTime time.Duration
}

type Database struct {
	*gorm.DB
	Config *Config
}

func Setup(cfg *Config) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: _logger.Default.LogMode(_logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := useCache(db, cfg); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(20)

	return &Database{
		db,
		cfg,
	}, nil
}

func dialectorFor(cfg *Config) (gorm.Dialector, error) {
	switch cfg.Driver {
	case POSTGRES:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Database,
			cfg.Port,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	case MYSQL:
		dsn := fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Database,
		)
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, mysql)", cfg.Driver)
}

// useCache installs the query cache plugin. Redis is used when a client and
// a cache time are configured, otherwise an in-process map.
func useCache(db *gorm.DB, cfg *Config) error {
	if !cfg.Cache {
		return nil
	}

	var cacher caches.Cacher = &memoryCacher{}
	if cfg.Rds != nil && cfg.CacheTime > 0 {
		cacher = &redisCacher{
			rdb:       cfg.Rds.Client,
			cacheTime: cfg.CacheTime,
		}
	}

	if err := db.Use(&caches.Caches{Conf: &caches.Config{Cacher: cacher}}); err != nil {
		return fmt.Errorf("failed to install query cache: %w", err)
	}
	return nil
}

func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// IsCloseConnection reports whether the pool can no longer reach the server.
func (db *Database) IsCloseConnection() bool {
	sqlDB, err := db.DB.DB()
	if err != nil || sqlDB == nil {
		return true
	}
	return sqlDB.Ping() != nil
}
