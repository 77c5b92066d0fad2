package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"knowledgelink/internal/model"
)

// LinkEventPublisher pushes link-created events onto a durable queue for
// downstream consumers (activity feeds, notifications). The ingestion
// pipeline itself never depends on a publish succeeding.
type LinkEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewLinkEventPublisher(conn *amqp.Connection, queueName string) *LinkEventPublisher {
	return &LinkEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *LinkEventPublisher) PublishLinkCreated(ctx context.Context, event model.LinkCreatedEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal link event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish link event failed: %w", err)
	}
	return nil
}
