package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jw-park/petkinder-backend/internal/domain"
	"github.com/jw-park/petkinder-backend/internal/integrations/messageservice"
)

const (
	// maxSendAttempts bounds the delivery retries per event.
	maxSendAttempts = 3
	// sendRetryBackoff is the pause between delivery attempts.
	sendRetryBackoff = 60 * time.Second
)

// CustomerReader resolves the event's customer to a phone number.
type CustomerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// CustomerTicketReader resolves the event's ticket for the message text.
type CustomerTicketReader interface {
	GetByID(ctx context.Context, id int64) (*domain.CustomerTicket, error)
}

// MessageSender delivers the alert.
type MessageSender interface {
	SendLowBalanceAlert(ctx context.Context, phoneNumber, customerName, ticketName string, remainingCount int) error
}

// Notifier consumes low-balance events and sends customer alerts.
// Notification delivery is fire-and-forget: an event that still fails after
// the bounded retries is dropped with an error log, never requeued forever.
type Notifier struct {
	conn        *amqp.Connection
	customers   CustomerReader
	tickets     CustomerTicketReader
	sender      MessageSender
	log         Logger
	backoff     time.Duration
	maxAttempts int
}

// NewNotifier creates a notifier.
func NewNotifier(
	conn *amqp.Connection,
	customers CustomerReader,
	tickets CustomerTicketReader,
	sender MessageSender,
	log Logger,
) *Notifier {
	return &Notifier{
		conn:        conn,
		customers:   customers,
		tickets:     tickets,
		sender:      sender,
		log:         log,
		backoff:     sendRetryBackoff,
		maxAttempts: maxSendAttempts,
	}
}

// Run consumes the queue until the context is canceled.
func (n *Notifier) Run(ctx context.Context) error {
	ch, err := n.conn.Channel()
	if err != nil {
		return fmt.Errorf("queue: open channel: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(QueueTicketLowBalance, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue: declare queue %s: %w", QueueTicketLowBalance, err)
	}

	// One unacked message at a time; delivery retries block the channel.
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("queue: set qos: %w", err)
	}

	deliveries, err := ch.Consume(
		QueueTicketLowBalance,
		"notifier",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue: consume: %w", err)
	}

	n.log.Info("Notifier started on queue %s", QueueTicketLowBalance)

	for {
		select {
		case <-ctx.Done():
			n.log.Info("Notifier stopping: %v", ctx.Err())
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("queue: delivery channel closed")
			}
			n.handle(ctx, delivery)
		}
	}
}

func (n *Notifier) handle(ctx context.Context, delivery amqp.Delivery) {
	var event TicketLowBalanceEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		n.log.Error("Notifier: dropping malformed event: %v", err)
		_ = delivery.Ack(false)
		return
	}

	if err := n.notify(ctx, &event); err != nil {
		n.log.Error("Notifier: giving up on event customer=%d ticket=%d: %v",
			event.CustomerID, event.CustomerTicketID, err)
	}

	// Ack either way: delivery is fire-and-forget past the bounded retries.
	_ = delivery.Ack(false)
}

func (n *Notifier) notify(ctx context.Context, event *TicketLowBalanceEvent) error {
	customer, err := n.customers.GetByID(ctx, event.CustomerID)
	if err != nil {
		return fmt.Errorf("resolve customer: %w", err)
	}

	ticket, err := n.tickets.GetByID(ctx, event.CustomerTicketID)
	if err != nil {
		return fmt.Errorf("resolve customer ticket: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= n.maxAttempts; attempt++ {
		lastErr = n.sender.SendLowBalanceAlert(ctx,
			customer.PhoneNumber,
			customer.Name,
			ticketLabel(ticket.Ticket),
			event.RemainingCount,
		)
		if lastErr == nil {
			n.log.Info("Notifier: alert sent to customer=%d (attempt %d)", event.CustomerID, attempt)
			return nil
		}

		// Template rejections never heal; retrying only delays the queue.
		if errors.Is(lastErr, messageservice.ErrInvalidTemplate) {
			return lastErr
		}

		n.log.Warn("Notifier: send attempt %d/%d failed for customer=%d: %v",
			attempt, n.maxAttempts, event.CustomerID, lastErr)

		if attempt < n.maxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.backoff):
			}
		}
	}

	return lastErr
}

func ticketLabel(t *domain.Ticket) string {
	if t == nil {
		return "ticket"
	}
	switch t.TicketType {
	case domain.TicketTypeTime:
		if t.UsageTimeHours != nil {
			return fmt.Sprintf("%d-hour ticket", *t.UsageTimeHours)
		}
		return "time ticket"
	case domain.TicketTypeAllDay:
		return "all-day ticket"
	case domain.TicketTypeHotel:
		return "hotel ticket"
	default:
		return "ticket"
	}
}
