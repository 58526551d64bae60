package notifier

import "context"

// Message is one notification addressed to a record owner.
type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notifier delivers a single notification. Delivery is not idempotent.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}
