package usecase

import (
	"context"
	"log/slog"

	"github.com/finsetu/backend/internal/auth/entity"
	"github.com/finsetu/backend/internal/pkg/goerror"
	"github.com/finsetu/backend/internal/pkg/jwt"
)

type UserListOutput struct {
	Users []entity.User
}

func (s *Usecase) UserList(ctx context.Context) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if clm := jwt.GetAuth(ctx); clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	users, err := s.repoDB.GetUserList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{Users: users}, nil
}
