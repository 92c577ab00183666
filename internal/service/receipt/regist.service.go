package receipt

import (
	"context"
	types "pos-terminal/internal/common/type"
	"pos-terminal/internal/pkg/rabbitmq"
)

// SessionStore is the part of the session service the receipt display uses.
type SessionStore interface {
	Load(sessionID string) (*types.Session, error)
	Mutate(sessionID string, fn func(s *types.Session) error) (*types.Session, error)
}

// Publisher queues print jobs.
type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, msg *rabbitmq.Message) error
}

type Service struct {
	ctx       context.Context
	sessions  SessionStore
	publisher Publisher
	queue     string
	formatter *Formatter
}

type IService interface {
	Show(sessionID string) *types.Response
	Close(sessionID string) *types.Response
	Print(sessionID string) *types.Response
}

func NewService(ctx context.Context, sessions SessionStore, publisher Publisher, queue string, formatter *Formatter) IService {
	return &Service{
		ctx:       ctx,
		sessions:  sessions,
		publisher: publisher,
		queue:     queue,
		formatter: formatter,
	}
}

// Request/Response DTOs

// PrintJob is the message body consumed by the print worker.
type PrintJob struct {
	SessionID  string `json:"sessionId"`
	TerminalID string `json:"terminalId"`
	OrderID    string `json:"orderId"`
	Text       string `json:"text"`
}
