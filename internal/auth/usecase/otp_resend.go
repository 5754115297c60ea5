package usecase

import (
	"context"
	"log/slog"

	"github.com/finsetu/backend/internal/auth/entity"
	"github.com/finsetu/backend/internal/pkg/goerror"
)

type OtpResendInput struct {
	UserID      string // raw client value; "" and "null" mean absent
	PhoneNumber string
}

type OtpResendOutput struct {
	UserID          int64
	ChallengeIssued bool
	Code            string // plaintext code, set only when expose_otp is on
}

func (s *Usecase) OtpResend(ctx context.Context, in OtpResendInput) (*OtpResendOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpResend")
	defer span.End()

	hint, err := parseHint(in.UserID, in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveIdentity(ctx, hint)
	if err != nil {
		return nil, err
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	rec := entity.OtpRecord{
		ID:          s.uid.Generate(),
		UserID:      user.ID,
		PhoneNumber: user.PhoneNumber,
		Code:        code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.otpTTL()),
	}

	if err := s.repoDB.ReplaceOtp(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace otp", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOtpIssued(ctx, OtpIssuedEvent{
		UserID:      user.ID,
		PhoneNumber: user.PhoneNumber,
		Code:        code,
		ExpiresAt:   rec.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "user_id", user.ID, "error", err)
	}

	return &OtpResendOutput{
		UserID:          user.ID,
		ChallengeIssued: true,
		Code:            s.echoOtp(code),
	}, nil
}
