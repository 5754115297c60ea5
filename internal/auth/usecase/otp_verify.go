package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/finsetu/backend/internal/pkg/goerror"
)

type OtpVerifyInput struct {
	UserID      string // raw client value; "" and "null" mean absent
	PhoneNumber string
	Code        string `validate:"required,len=6,number"`
}

type OtpVerifyOutput struct {
	UserID   int64
	Verified bool
}

func (s *Usecase) OtpVerify(ctx context.Context, in OtpVerifyInput) (*OtpVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "OtpVerify")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	hint, err := parseHint(in.UserID, in.PhoneNumber)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveIdentity(ctx, hint)
	if err != nil {
		return nil, err
	}

	ok, err := s.repoDB.ConsumeOtp(ctx, user.ID, in.Code, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Wrong, expired and already-consumed codes are indistinguishable here.
	if !ok {
		slog.WarnContext(ctx, "otp verification rejected", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid or expired OTP", goerror.CodeUnauthorized)
	}

	return &OtpVerifyOutput{UserID: user.ID, Verified: true}, nil
}
