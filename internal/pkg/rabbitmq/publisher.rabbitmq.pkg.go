package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrUnroutable means a mandatory message matched no queue.
	ErrUnroutable = errors.New("message returned unroutable")
	// ErrNotConfirmed means the broker nacked the message.
	ErrNotConfirmed = errors.New("message not confirmed by broker")
)

type Publisher struct {
	ctx     context.Context
	plain   *ChannelManager
	confirm *ChannelManager

	mu         sync.Mutex
	returns    chan amqp.Return
	returnsFor *amqp.Channel
}

func NewPublisher(ctx context.Context, connManager *ConnectionManager) (*Publisher, error) {
	p := &Publisher{
		ctx:     ctx,
		plain:   NewChannelManager(ctx, connManager),
		confirm: NewConfirmChannelManager(ctx, connManager),
	}

	if _, err := p.plain.GetChannel(); err != nil {
		return nil, fmt.Errorf("failed to open publisher channel: %w", err)
	}
	return p, nil
}

func (p *Publisher) DeclareExchange(name, kind string) error {
	ch, err := p.plain.GetChannel()
	if err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(name, kind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", name, err)
	}
	return nil
}

func (p *Publisher) DeclareQueue(name string, config *QueueConfig) error {
	ch, err := p.plain.GetChannel()
	if err != nil {
		return err
	}
	if config == nil {
		config = DefaultQueueConfig()
	}
	_, err = ch.QueueDeclare(name, config.Durable, config.AutoDelete, config.Exclusive, config.NoWait, config.Args)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	return nil
}

// Publish sends a persistent message without waiting for the broker.
func (p *Publisher) Publish(ctx context.Context, exchange, routingKey string, msg *Message) error {
	ch, err := p.plain.GetChannel()
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, exchange, routingKey, false, false, *msg.GeneratePayload()); err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.ID, err)
	}
	return nil
}

// PublishMandatory publishes with the mandatory flag and waits for the
// broker's confirm. It returns ErrUnroutable when no queue is bound for the
// routing key and ErrNotConfirmed on a nack.
func (p *Publisher) PublishMandatory(ctx context.Context, exchange, routingKey string, msg *Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.confirm.GetChannel()
	if err != nil {
		return err
	}
	if ch != p.returnsFor {
		p.returns = ch.NotifyReturn(make(chan amqp.Return, 16))
		p.returnsFor = ch
	}
	p.drainReturns()

	dc, err := ch.PublishWithDeferredConfirmWithContext(ctx, exchange, routingKey, true, false, *msg.GeneratePayload())
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", msg.ID, err)
	}

	acked, err := dc.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("waiting for confirm of %s: %w", msg.ID, err)
	}

	// The broker sends basic.return before the ack of the same message.
	if ret := p.takeReturn(msg.ID); ret != nil {
		return fmt.Errorf("%w: %s (%d %s)", ErrUnroutable, routingKey, ret.ReplyCode, ret.ReplyText)
	}

	if !acked {
		return ErrNotConfirmed
	}
	return nil
}

func (p *Publisher) takeReturn(id string) *amqp.Return {
	for {
		select {
		case ret, ok := <-p.returns:
			if !ok {
				p.returnsFor = nil
				return nil
			}
			if ret.MessageId == id {
				return &ret
			}
		default:
			return nil
		}
	}
}

func (p *Publisher) drainReturns() {
	for {
		select {
		case _, ok := <-p.returns:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (p *Publisher) Close() error {
	return errors.Join(p.plain.Close(), p.confirm.Close())
}
