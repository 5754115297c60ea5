package sms

import (
	"context"
	"io"
)

// Message represents a text message payload.
type Message struct {
	// To is the destination phone number in E.164-ish digits form.
	To string
	// Body is the message text.
	Body string
}

// Sender abstracts an SMS provider (HTTP gateway, third-party API, etc).
type Sender interface {
	io.Closer
	// Send dispatches the given message using the underlying provider.
	Send(ctx context.Context, msg Message) error
}
