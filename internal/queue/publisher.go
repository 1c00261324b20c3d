package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger is the logging interface used by the queue components.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher emits events onto the durable low-balance queue. Messages are
// persistent so a broker restart does not drop pending notifications.
type Publisher struct {
	ch  *amqp.Channel
	log Logger
}

// NewPublisher opens a channel and declares the queue.
func NewPublisher(conn *amqp.Connection, log Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("queue: open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		QueueTicketLowBalance,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		ch.Close()
		return nil, fmt.Errorf("queue: declare queue %s: %w", QueueTicketLowBalance, err)
	}

	return &Publisher{ch: ch, log: log}, nil
}

// PublishTicketLowBalance publishes one low-balance event.
func (p *Publisher) PublishTicketLowBalance(ctx context.Context, customerID, customerTicketID int64, remainingCount int) error {
	event := TicketLowBalanceEvent{
		CustomerID:       customerID,
		CustomerTicketID: customerTicketID,
		RemainingCount:   remainingCount,
		OccurredAt:       time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("queue: encode event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"", // default exchange
		QueueTicketLowBalance,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("queue: publish event: %w", err)
	}

	p.log.Info("Published low balance event: customer=%d, ticket=%d, remaining=%d",
		customerID, customerTicketID, remainingCount)

	return nil
}

// Close releases the channel.
func (p *Publisher) Close() error {
	return p.ch.Close()
}
