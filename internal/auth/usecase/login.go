package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/finsetu/backend/internal/pkg/goerror"
)

type LoginInput struct {
	PhoneNumber string `validate:"required,phone"`
	Password    string `validate:"required"`
}

type LoginOutput struct {
	UserID      int64
	AccessToken string
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserLoginInfo(ctx, in.PhoneNumber)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found for login")
		return nil, goerror.NewBusiness("invalid phone number or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user login info", "error", err)
		return nil, goerror.NewServer(err)
	}

	if !user.Verified {
		slog.WarnContext(ctx, "unverified account attempted login", "user_id", user.ID)
		return nil, goerror.NewBusiness("Phone number not verified", goerror.CodeForbidden)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid phone number or password", goerror.CodeUnauthorized)
	}

	token, err := s.jwt.Generate(user.ID, user.PhoneNumber)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{UserID: user.ID, AccessToken: token}, nil
}
