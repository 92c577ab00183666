package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Message struct {
	ID          string      `json:"id"`
	Type        string      `json:"type"`
	Body        []byte      `json:"content"`
	Payload     interface{} `json:"payload"`
	Headers     amqp.Table  `json:"headers,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	ContentType string      `json:"content_type"`
	Expiration  time.Duration
}

func NewMessage(msgType string, payload interface{}, headers *amqp.Table) (*Message, error) {
	gid, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	id := fmt.Sprintf("msg_%s_%d", gid, time.Now().Unix())

	var body []byte
	var contentType string
	switch v := payload.(type) {
	case string:
		body = []byte(v)
		contentType = "text/plain"
	case []byte:
		body = v
		contentType = "application/octet-stream"
	default:
		body, err = json.Marshal(v)
		if err != nil {
			return nil, err
		}
		contentType = "application/json"
	}

	if headers == nil {
		headers = &amqp.Table{}
	}

	return &Message{
		ID:          id,
		Type:        msgType,
		Body:        body,
		Payload:     payload,
		Headers:     *headers,
		Timestamp:   time.Now(),
		ContentType: contentType,
	}, nil
}

func (m *Message) GeneratePayload() *amqp.Publishing {
	m.Headers["id"] = m.ID

	p := &amqp.Publishing{
		ContentType:  m.ContentType,
		Body:         m.Body,
		MessageId:    m.ID,
		Type:         m.Type,
		Timestamp:    m.Timestamp,
		DeliveryMode: amqp.Persistent,
		Headers:      m.Headers,
	}
	if m.Expiration > 0 {
		p.Expiration = fmt.Sprintf("%d", m.Expiration.Milliseconds())
	}
	return p
}
