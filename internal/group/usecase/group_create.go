package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/finsetu/backend/internal/group/entity"
	"github.com/finsetu/backend/internal/pkg/goerror"
	"github.com/samber/lo"
)

type GroupCreateInput struct {
	Name        string  `validate:"required,min=1,max=100"`
	Description string  `validate:"omitempty,max=500"`
	MemberIDs   []int64 `validate:"omitempty,max=50"`
}

type GroupCreateOutput struct {
	GroupID int64
}

func (s *Usecase) GroupCreate(ctx context.Context, in GroupCreateInput) (*GroupCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "GroupCreate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// The creator joins as admin; listed members join as plain members.
	memberIDs := lo.Reject(lo.Uniq(in.MemberIDs), func(id int64, _ int) bool {
		return id == clm.UserID
	})

	newGroup := entity.NewGroup{
		ID:          s.uid.Generate(),
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   clm.UserID,
		MemberIDs:   memberIDs,
	}

	if err := s.repoDB.NewGroup(ctx, newGroup); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("One or more members do not exist", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo create group", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GroupCreateOutput{GroupID: newGroup.ID}, nil
}
