package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finsetu/backend/internal/pkg/goerror"
)

type GroupDeleteInput struct {
	GroupID int64 `validate:"required"`
}

func (s *Usecase) GroupDelete(ctx context.Context, in GroupDeleteInput) error {
	ctx, span := s.startSpan(ctx, "GroupDelete")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	member, err := s.repoDB.GetMember(ctx, in.GroupID, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		// Non-members cannot tell whether the group exists.
		return goerror.NewBusiness("Group not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get group member", "group_id", in.GroupID, "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if !member.IsAdmin {
		return goerror.NewBusiness("Only a group admin may delete the group", goerror.CodeForbidden)
	}

	if err := s.repoDB.DeleteGroup(ctx, in.GroupID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete group", "group_id", in.GroupID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
