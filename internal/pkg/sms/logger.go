package sms

import (
	"context"
	"log/slog"
)

// Logger is a Sender that only logs messages. It is meant for local
// development where no real provider is configured.
type Logger struct{}

// NewLogger returns a log-only SMS sender.
func NewLogger() *Logger {
	return &Logger{}
}

// Send logs the message instead of delivering it.
func (l *Logger) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "sms delivery (log only)", "to", msg.To, "body", msg.Body)
	return nil
}

// Close implements io.Closer for interface compatibility.
func (l *Logger) Close() error {
	return nil
}
