// Package notifier renders booking and auth events into user notifications.
package notifier

import (
	"fmt"
	"log"
)

// Notifier abstracts the delivery channel (console now, mail/SMS later).
type Notifier interface {
	Notify(subject, message string) error
}

type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[Notify] %s :: %s", subject, message)
	return nil
}

// HumanWindow formats a booking window for notification text.
func HumanWindow(date, start, end string) string {
	return fmt.Sprintf("%s %s-%s", date, start, end)
}
