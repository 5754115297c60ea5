package sms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrGatewayURLRequired is returned when the gateway base URL is missing.
	ErrGatewayURLRequired = errors.New("sms gateway url is required")
	// ErrGatewayRejected is returned when the provider reports a non-success status.
	ErrGatewayRejected = errors.New("sms gateway rejected the message")
)

// HTTPGateway is a Sender backed by a bulk-SMS HTTP provider.
//
// The provider accepts form-encoded POST requests and answers with a small
// JSON envelope carrying a status string.
type HTTPGateway struct {
	baseURL  string
	username string
	password string
	senderID string
	client   *http.Client
}

// HTTPGatewayConfig configures the HTTP gateway implementation.
type HTTPGatewayConfig struct {
	// BaseURL is the provider endpoint.
	BaseURL string
	// Username is the provider account username.
	Username string
	// Password is the provider account password.
	Password string
	// SenderID is the originator shown to recipients.
	SenderID string
	// Timeout bounds a single delivery attempt; defaults to 30s.
	Timeout time.Duration
}

type gatewayResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHTTPGateway constructs an HTTP-based SMS sender.
func NewHTTPGateway(cfg HTTPGatewayConfig) (*HTTPGateway, error) {
	if cfg.BaseURL == "" {
		return nil, ErrGatewayURLRequired
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPGateway{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		senderID: cfg.SenderID,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Send delivers a message through the provider.
func (g *HTTPGateway) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("username", g.username)
	form.Set("password", g.password)
	form.Set("senderid", g.senderID)
	form.Set("destination", msg.To)
	form.Set("message", msg.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", ErrGatewayRejected, resp.StatusCode, body)
	}

	var gr gatewayResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		// Some providers answer with plain text on success.
		if strings.Contains(strings.ToLower(string(body)), "success") {
			return nil
		}
		return fmt.Errorf("%w: unparseable response: %s", ErrGatewayRejected, body)
	}

	if gr.Status != "success" && gr.Status != "sent" {
		return fmt.Errorf("%w: %s", ErrGatewayRejected, gr.Message)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (g *HTTPGateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
