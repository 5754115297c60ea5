package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/finsetu/backend/internal/pkg/config"
	"github.com/finsetu/backend/internal/pkg/instrument"
	"github.com/finsetu/backend/internal/pkg/validator"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type recordingSMS struct {
	sent     []string // "<phone>|<text>"
	failures int      // fail this many sends before succeeding
	calls    int
}

func (r *recordingSMS) SendOtp(_ context.Context, phone, text string) error {
	r.calls++
	if r.calls <= r.failures {
		return errors.New("gateway unavailable")
	}
	r.sent = append(r.sent, phone+"|"+text)
	return nil
}

func newTestUsecase(t *testing.T, sms *recordingSMS, clk *fakeClock) *Usecase {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: FinSetu\n"))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	return New(Dependency{
		RepoSMS:    sms,
		Validator:  v10,
		Config:     cfg,
		Clock:      clk,
		Instrument: instrument.NewNoop(),
	})
}

func TestConsumeOtpIssued(t *testing.T) {

	// Arrange
	now := time.Now()
	sms := &recordingSMS{}
	uc := newTestUsecase(t, sms, &fakeClock{now: now})

	// Act
	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		UserID:      42,
		PhoneNumber: "+6281234567890",
		Code:        "482913",
		ExpiresAt:   now.Add(10 * time.Minute).Unix(),
	})

	// Assert
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if len(sms.sent) != 1 {
		t.Fatalf("expected 1 sms, got %d", len(sms.sent))
	}
	if !strings.HasPrefix(sms.sent[0], "+6281234567890|") {
		t.Fatalf("wrong destination: %s", sms.sent[0])
	}
	if !strings.Contains(sms.sent[0], "482913") || !strings.Contains(sms.sent[0], "10 minutes") {
		t.Fatalf("unexpected text: %s", sms.sent[0])
	}
	if !strings.Contains(sms.sent[0], "FinSetu") {
		t.Fatalf("expected app name in text: %s", sms.sent[0])
	}
}

func TestConsumeOtpIssuedRetries(t *testing.T) {

	// Arrange: first attempt fails, a retry lands it.
	now := time.Now()
	sms := &recordingSMS{failures: 1}
	uc := newTestUsecase(t, sms, &fakeClock{now: now})

	// Act
	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		UserID:      42,
		PhoneNumber: "+6281234567890",
		Code:        "482913",
		ExpiresAt:   now.Add(10 * time.Minute).Unix(),
	})

	// Assert
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if len(sms.sent) != 1 {
		t.Fatalf("expected delivery after retry, got %d", len(sms.sent))
	}
}

func TestConsumeOtpIssuedGivesUp(t *testing.T) {

	// Arrange: all attempts fail; the message is dropped, not requeued.
	now := time.Now()
	sms := &recordingSMS{failures: 10}
	uc := newTestUsecase(t, sms, &fakeClock{now: now})

	// Act
	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		UserID:      42,
		PhoneNumber: "+6281234567890",
		Code:        "482913",
		ExpiresAt:   now.Add(10 * time.Minute).Unix(),
	})

	// Assert
	if err != nil {
		t.Fatalf("expected swallowed failure, got %v", err)
	}
	if sms.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", sms.calls)
	}
	if len(sms.sent) != 0 {
		t.Fatal("nothing must be delivered")
	}
}

func TestConsumeOtpIssuedExpired(t *testing.T) {

	// Arrange
	now := time.Now()
	sms := &recordingSMS{}
	uc := newTestUsecase(t, sms, &fakeClock{now: now})

	// Act
	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		UserID:      42,
		PhoneNumber: "+6281234567890",
		Code:        "482913",
		ExpiresAt:   now.Add(-time.Minute).Unix(),
	})

	// Assert
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if len(sms.sent) != 0 {
		t.Fatal("expired code must not be delivered")
	}
}

func TestConsumeOtpIssuedInvalidPayload(t *testing.T) {

	// Arrange
	sms := &recordingSMS{}
	uc := newTestUsecase(t, sms, &fakeClock{now: time.Now()})

	// Act: malformed events are dropped without error so the broker acks.
	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		UserID: 42,
		Code:   "482913",
	})

	// Assert
	if err != nil {
		t.Fatalf("expected nil for invalid payload, got %v", err)
	}
	if len(sms.sent) != 0 {
		t.Fatal("invalid payload must not be delivered")
	}
}
