package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/finsetu/backend/internal/auth/entity"
	"github.com/finsetu/backend/internal/pkg/goerror"
	"github.com/finsetu/backend/internal/pkg/idempotency"
)

type RegisterInput struct {
	Username    string `validate:"required,min=3,max=30,alphanum"`
	PhoneNumber string `validate:"required,phone"`
	Password    string `validate:"required,password"`

	// IdempotencyKey is the optional Idempotency-Key header value.
	IdempotencyKey string `validate:"omitempty,max=128"`
}

type RegisterOutput struct {
	UserID          int64
	ChallengeIssued bool
	Code            string // plaintext code, set only when expose_otp is on
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	var out *RegisterOutput
	run := func(ctx context.Context) error {
		var err error
		out, err = s.register(ctx, in)
		return err
	}

	if in.IdempotencyKey == "" {
		if err := run(ctx); err != nil {
			return nil, err
		}
		return out, nil
	}

	err := s.idemp.Exec(ctx, "auth:register:"+in.IdempotencyKey, run)
	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		return nil, goerror.NewBusiness("Registration already processed", goerror.CodeConflict)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Usecase) register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	user, err := s.repoDB.GetUserByUsername(ctx, in.Username)
	if err == nil && user != nil {
		return nil, goerror.NewBusiness("Username already registered", goerror.CodeConflict)
	}
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by username", "error", err)
		return nil, goerror.NewServer(err)
	}

	user, err = s.repoDB.GetUserByPhone(ctx, in.PhoneNumber)
	if err == nil && user != nil {
		return nil, goerror.NewBusiness("Phone number already registered", goerror.CodeConflict)
	}
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by phone", "error", err)
		return nil, goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	newUser := entity.NewUser{
		ID:          s.uid.Generate(),
		Username:    in.Username,
		PhoneNumber: in.PhoneNumber,
	}
	rec := entity.OtpRecord{
		ID:          s.uid.Generate(),
		UserID:      newUser.ID,
		PhoneNumber: newUser.PhoneNumber,
		Code:        code,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.otpTTL()),
	}

	if err := s.repoDB.NewRegistration(ctx, newUser, rec, string(hashedPassword)); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			// Lost a race with a concurrent registration for the same
			// username or phone.
			return nil, goerror.NewBusiness("Username or phone number already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo user registration", "user_id", newUser.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOtpIssued(ctx, OtpIssuedEvent{
		UserID:      newUser.ID,
		PhoneNumber: newUser.PhoneNumber,
		Code:        code,
		ExpiresAt:   rec.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued", "user_id", newUser.ID, "error", err)
	}

	return &RegisterOutput{
		UserID:          newUser.ID,
		ChallengeIssued: true,
		Code:            s.echoOtp(code),
	}, nil
}
