// Package sms defines the contracts for sending text messages.
//
// The main purpose is to keep the rest of the application independent from a
// specific SMS provider. Use cases work with the Sender interface and Message
// payload; the concrete delivery mechanism (HTTP gateway, log-only for local
// development) is implemented elsewhere in this package.
package sms
