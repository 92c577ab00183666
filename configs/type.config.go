package config

import (
	"context"
	"pos-terminal/internal/common/enum"
	"pos-terminal/internal/pkg/backend"
	database "pos-terminal/internal/pkg/db"
	midtransPkg "pos-terminal/internal/pkg/midtrans"
	"pos-terminal/internal/pkg/rabbitmq"
	"pos-terminal/internal/pkg/redis"
	s3aws "pos-terminal/internal/pkg/storage/s3"
	"sync"
	"time"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv     enum.EnvEnum `env:"APP_ENV" envDefault:"development"`
	AppPort    int          `env:"APP_PORT" envDefault:"8080"`
	AppBaseURL string       `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel   string       `env:"LOG_LEVEL" envDefault:"info"`

	BackendURL           string        `env:"BACKEND_URL" envDefault:"http://localhost:5000/api"`
	BackendTimeout       time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	BackendProxyURL      string        `env:"BACKEND_PROXY_URL" envDefault:""`
	BackendSkipTLSVerify bool          `env:"BACKEND_SKIP_TLS_VERIFY" envDefault:"false"`
	JWTSecret            string        `env:"JWT_SECRET" envDefault:""`

	Currency            string                   `env:"CURRENCY" envDefault:"inr"`
	PaymentGateway      enum.GatewayEnum         `env:"PAYMENT_GATEWAY" envDefault:"backend"`
	MidtransServerKey   string                   `env:"MIDTRANS_SERVER_KEY" envDefault:""`
	MidtransClientKey   string                   `env:"MIDTRANS_CLIENT_KEY" envDefault:""`
	MidtransEnvironment string                   `env:"MIDTRANS_ENVIRONMENT" envDefault:"sandbox"`
	HandoffMode         enum.HandoffModeEnum     `env:"HANDOFF_MODE" envDefault:"terminal"`
	HandoffExchange     string                   `env:"HANDOFF_EXCHANGE" envDefault:"pos.checkout"`
	ClearCartPolicy     enum.ClearCartPolicyEnum `env:"CLEAR_CART_POLICY" envDefault:"placement"`
	CallTimeout         time.Duration            `env:"CALL_TIMEOUT" envDefault:"10s"`
	FlowTimeout         time.Duration            `env:"FLOW_TIMEOUT" envDefault:"30s"`
	GuardTTL            time.Duration            `env:"GUARD_TTL" envDefault:"45s"`
	SessionTTL          time.Duration            `env:"SESSION_TTL" envDefault:"12h"`
	CatalogCacheTTL     time.Duration            `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	ReceiptQueue  string `env:"RECEIPT_QUEUE" envDefault:"pos.receipt.print"`
	PrinterDevice string `env:"PRINTER_DEVICE" envDefault:""`
	ReceiptBucket string `env:"RECEIPT_BUCKET" envDefault:""`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string `env:"REDIS_USER" envDefault:"default"`
	RedisPass     string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	RabbitHost string `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort int    `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser string `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass string `env:"RABBIT_PASS" envDefault:"guest"`

	DBDriver  database.DriverEnum `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost    string              `env:"DB_HOST" envDefault:"localhost"`
	DBPort    int                 `env:"DB_PORT" envDefault:"5432"`
	DBUser    string              `env:"DB_USER" envDefault:"postgres"`
	DBPass    string              `env:"DB_PASS" envDefault:""`
	DBName    string              `env:"DB_NAME" envDefault:"postgres"`
	DBSSLMode string              `env:"DB_SSL_MODE" envDefault:"disable"`
	DBCache   bool                `env:"DB_CACHE" envDefault:"false"`

	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:""`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:""`
}

// SetupServerDto contains dependencies for server setup
type SetupServerDto struct {
	Ctx     *context.Context
	Cancel  context.CancelFunc
	Wg      *sync.WaitGroup
	Env     *Config
	Db      *database.Database
	Rds     redis.IRedis
	Rb      *rabbitmq.ConnectionManager
	S3      s3aws.Is3
	Mt      *midtransPkg.MidtransClient
	Backend *backend.Client
}
