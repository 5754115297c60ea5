package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finsetu/backend/internal/auth/entity"
	"github.com/finsetu/backend/internal/pkg/goerror"
)

// resolveIdentity looks up the user named by the hint. Read-only.
//
// When the hint carries both id and phone they must agree; a mismatch is a
// conflict, never silently ignored, so resend cannot probe phone numbers.
func (s *Usecase) resolveIdentity(ctx context.Context, hint entity.IdentityHint) (*entity.User, error) {
	switch hint.Kind {
	case entity.HintByPhone:
		user, err := s.repoDB.GetUserByPhone(ctx, hint.PhoneNumber)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get user by phone", "error", err)
			return nil, goerror.NewServer(err)
		}
		return user, nil

	case entity.HintByID, entity.HintBoth:
		user, err := s.repoDB.GetUserByID(ctx, hint.UserID)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", hint.UserID, "error", err)
			return nil, goerror.NewServer(err)
		}

		if hint.Kind == entity.HintBoth && user.PhoneNumber != hint.PhoneNumber {
			slog.WarnContext(ctx, "identity hint mismatch", "user_id", hint.UserID)
			return nil, goerror.NewBusiness("identity mismatch", goerror.CodeConflict)
		}
		return user, nil

	default:
		return nil, goerror.NewInvalidFormat("either user id or phone number is required")
	}
}

// parseHint converts raw client identity fields into a resolved hint,
// mapping parse failures onto the error taxonomy.
func parseHint(rawID, phone string) (entity.IdentityHint, error) {
	hint, err := entity.ParseIdentityHint(rawID, phone)
	if errors.Is(err, entity.ErrInvalidUserID) {
		return entity.IdentityHint{}, goerror.NewInvalidFormat("user id must be numeric")
	}
	if errors.Is(err, entity.ErrIdentityRequired) {
		return entity.IdentityHint{}, goerror.NewInvalidFormat("either user id or phone number is required")
	}
	if err != nil {
		return entity.IdentityHint{}, goerror.NewServer(err)
	}
	return hint, nil
}
