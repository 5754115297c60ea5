package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

type ConsumeOtpIssuedInput struct {
	UserID      int64  `validate:"required,gt=0"`
	PhoneNumber string `validate:"required,phone"`
	Code        string `validate:"required,len=6,number"`
	ExpiresAt   int64  `validate:"required"`
}

// ConsumeOtpIssued delivers the verification code over SMS with bounded
// retry. Final delivery failure is logged and swallowed: resend is the
// user-driven retry path, so the message must not loop forever.
func (s *Usecase) ConsumeOtpIssued(ctx context.Context, in ConsumeOtpIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOtpIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	expiresIn := time.Unix(in.ExpiresAt, 0).Sub(s.clock.Now()).Round(time.Minute)
	if expiresIn <= 0 {
		slog.WarnContext(ctx, "otp already expired, skipping delivery", "user_id", in.UserID)
		return nil
	}

	appName := s.cfg.GetString("app.name")
	text := fmt.Sprintf("%s verification code: %s. Valid for %d minutes. Do not share it.",
		appName, in.Code, int(expiresIn.Minutes()))

	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(s.repoSMS.SendOtp(ctx, in.PhoneNumber, text))
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to deliver otp sms after retries", "user_id", in.UserID, "error", err)
		return nil
	}

	return nil
}
