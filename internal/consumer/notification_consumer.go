package consumer

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/futsala/futsala-backend/internal/events"
	"github.com/futsala/futsala-backend/internal/notifier"
	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationConsumer turns booking lifecycle and auth events into user
// notifications.
type NotificationConsumer struct {
	notify notifier.Notifier
}

func NewNotificationConsumer(n notifier.Notifier) *NotificationConsumer {
	return &NotificationConsumer{notify: n}
}

func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		log.Println("[NotificationConsumer] channel closed, stopping consumer")
	}()
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var err error
	switch msg.RoutingKey {
	case events.BookingCreated, events.BookingRescheduled, events.BookingCancelled:
		err = nc.handleBooking(msg.RoutingKey, msg.Body)
	case events.PasswordReset:
		err = nc.handlePasswordReset(msg.Body)
	default:
		log.Printf("[NotificationConsumer] ignoring routing key %q", msg.RoutingKey)
		msg.Ack(false)
		return
	}

	if err != nil {
		log.Printf("[NotificationConsumer] failed to handle %s: %v", msg.RoutingKey, err)
		msg.Nack(false, false)
		return
	}
	msg.Ack(false)
}

func (nc *NotificationConsumer) handleBooking(routingKey string, body []byte) error {
	var ev events.BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal booking event: %w", err)
	}

	var subject string
	switch routingKey {
	case events.BookingCreated:
		subject = "Booking received"
	case events.BookingRescheduled:
		subject = "Booking rescheduled"
	case events.BookingCancelled:
		subject = "Booking cancelled"
	}

	message := fmt.Sprintf("%s at %s, %s (ref %s)",
		ev.CourtName, ev.VenueName,
		notifier.HumanWindow(ev.BookingDate, ev.StartTime, ev.EndTime),
		ev.Reference,
	)
	return nc.notify.Notify(subject, message)
}

func (nc *NotificationConsumer) handlePasswordReset(body []byte) error {
	var ev events.PasswordResetEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal password reset event: %w", err)
	}
	return nc.notify.Notify("Password reset", fmt.Sprintf("reset token for %s: %s", ev.Email, ev.Token))
}
