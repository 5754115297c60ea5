package usecase

import (
	"context"
	"log/slog"

	"github.com/finsetu/backend/internal/group/entity"
	"github.com/finsetu/backend/internal/pkg/goerror"
)

type GroupListOutput struct {
	CallerID int64
	Groups   []entity.GroupDetail
}

func (s *Usecase) GroupList(ctx context.Context) (*GroupListOutput, error) {
	ctx, span := s.startSpan(ctx, "GroupList")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.repoDB.GetGroupsByMember(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list groups", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GroupListOutput{CallerID: clm.UserID, Groups: groups}, nil
}
