package rabbitmq

import (
	"context"
	"fmt"
	"net/url"
	"pos-terminal/internal/pkg/logger"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultRetryInterval = 2 * time.Second

// ConnectionManager owns the broker connection shared by publishers and
// subscribers and redials it when the broker drops.
type ConnectionManager struct {
	conn          *amqp.Connection
	mu            sync.Mutex
	url           string
	addr          string
	isConnected   bool
	retryInterval time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

type QueueConfig struct {
	Durable    bool
	AutoDelete bool
	Exclusive  bool
	NoWait     bool
	Args       amqp.Table
}

func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{Durable: true}
}

type Config struct {
	Username      string
	Password      string
	Host          string
	Port          int
	URI           string
	RetryInterval time.Duration
}

func (c *Config) dialURL() string {
	if c.URI != "" {
		return c.URI
	}
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/",
	}
	return u.String()
}

func NewConnectionManager(ctx context.Context, config *Config) (*ConnectionManager, error) {
	ctx, cancel := context.WithCancel(ctx)

	dial := config.dialURL()
	addr := dial
	if u, err := url.Parse(dial); err == nil {
		addr = u.Redacted()
	}

	cm := &ConnectionManager{
		url:           dial,
		addr:          addr,
		retryInterval: config.RetryInterval,
		ctx:           ctx,
		cancel:        cancel,
	}
	if cm.retryInterval <= 0 {
		cm.retryInterval = defaultRetryInterval
	}

	if err := cm.connect(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}
	logger.Info.Printf("Connected to RabbitMQ at %s", cm.addr)

	return cm, nil
}

func (cm *ConnectionManager) connect() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.isConnected {
		return nil
	}
	if err := cm.ctx.Err(); err != nil {
		return fmt.Errorf("context canceled: %w", err)
	}

	conn, err := amqp.Dial(cm.url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	cm.conn = conn
	cm.isConnected = true

	go cm.watch(conn)

	return nil
}

// watch waits for conn to drop and redials until it succeeds or the manager
// is closed. A successful redial starts a new watcher.
func (cm *ConnectionManager) watch(conn *amqp.Connection) {
	closed := conn.NotifyClose(make(chan *amqp.Error, 1))

	select {
	case <-cm.ctx.Done():
		return
	case err, ok := <-closed:
		if !ok || err == nil {
			// graceful close
			return
		}
		cm.mu.Lock()
		cm.isConnected = false
		cm.mu.Unlock()
		logger.Warning.Printf("RabbitMQ connection to %s lost: %v", cm.addr, err)
	}

	timer := time.NewTimer(cm.retryInterval)
	defer timer.Stop()

	for {
		select {
		case <-cm.ctx.Done():
			return
		case <-timer.C:
		}

		if err := cm.connect(); err != nil {
			logger.Warning.Printf("Failed to reconnect to %s: %v. Retrying in %v", cm.addr, err, cm.retryInterval)
			timer.Reset(cm.retryInterval)
			continue
		}

		logger.Info.Printf("Reconnected to RabbitMQ at %s", cm.addr)
		return
	}
}

func (cm *ConnectionManager) GetConnection() *amqp.Connection {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.ctx.Err() != nil {
		return nil
	}
	return cm.conn
}

// IsHealthy reports whether the manager holds an open connection.
func (cm *ConnectionManager) IsHealthy() bool {
	conn := cm.GetConnection()
	return conn != nil && !conn.IsClosed() && !cm.IsClosed()
}

func (cm *ConnectionManager) Close() error {
	cm.cancel()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.isConnected = false
	if cm.conn == nil {
		return nil
	}
	conn := cm.conn
	cm.conn = nil
	if conn.IsClosed() {
		return nil
	}
	if err := conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}

func (cm *ConnectionManager) IsClosed() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.ctx.Err() != nil || !cm.isConnected
}
