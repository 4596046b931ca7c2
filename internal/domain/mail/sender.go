package mail

import "context"

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender defines an interface for delivering email.
// This keeps the application logic independent from the mail provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
