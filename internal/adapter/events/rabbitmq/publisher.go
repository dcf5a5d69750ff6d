// Package rabbitmq publishes booking state-change events to a durable queue.
// Delivery is at-least-once: a publish is retried a bounded number of times
// and the error surfaces to the caller when every attempt fails. Messages
// are persistent and carry the booking id as MessageId so consumers can
// de-duplicate and order per booking.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/skyfare/flight-booking/internal/core/domain"
)

const (
	bookingEventsQueue = "booking.events"

	publishAttempts = 3
	publishBackoff  = 200 * time.Millisecond
)

type Publisher struct {
	url    string
	logger *logrus.Logger
}

func NewPublisher(url string, logger *logrus.Logger) *Publisher {
	return &Publisher{url: url, logger: logger}
}

func (p *Publisher) PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		if lastErr = p.publish(ctx, event, body); lastErr == nil {
			return nil
		}

		p.logger.WithError(lastErr).WithFields(logrus.Fields{
			"booking_id": event.BookingID,
			"attempt":    attempt,
		}).Warn("Event publish failed")

		if attempt == publishAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(publishBackoff):
		}
	}

	return fmt.Errorf("publish booking event for %s: %w", event.BookingID, lastErr)
}

func (p *Publisher) publish(ctx context.Context, event domain.BookingEvent, body []byte) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so events survive a broker restart.
	if _, err := ch.QueueDeclare(
		bookingEventsQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("amqp queue declare: %w", err)
	}

	return ch.PublishWithContext(ctx,
		"",                 // default exchange
		bookingEventsQueue, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.BookingID.String(),
			Type:         string(event.Status),
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
