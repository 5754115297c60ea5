package inbound

import (
	"github.com/finsetu/backend/internal/group/entity"
	"github.com/finsetu/backend/internal/group/usecase"
	"github.com/finsetu/backend/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for bill-splitting groups.
type HTTPEndpoint struct {
	uc uc
}

// GroupCreate creates a group with the caller as admin.
func (h *HTTPEndpoint) GroupCreate(r *router.Request) (any, error) {
	var req GroupCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.GroupCreate(r.Context(), usecase.GroupCreateInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.MemberIDs,
	})
	if err != nil {
		return nil, err
	}

	return GroupCreateResponse{GroupID: resp.GroupID}, nil
}

// GroupList returns the caller's groups with member summaries.
func (h *HTTPEndpoint) GroupList(r *router.Request) (any, error) {
	resp, err := h.uc.GroupList(r.Context())
	if err != nil {
		return nil, err
	}

	return GroupListResponse{
		Groups: lo.Map(resp.Groups, func(g entity.GroupDetail, _ int) GroupResponse {
			members := lo.Map(g.Members, func(m entity.Member, _ int) MemberResponse {
				return MemberResponse{
					UserID:      m.UserID,
					Username:    m.Username,
					PhoneNumber: m.PhoneNumber,
					IsAdmin:     m.IsAdmin,
				}
			})

			_, callerIsAdmin := lo.Find(g.Members, func(m entity.Member) bool {
				return m.UserID == resp.CallerID && m.IsAdmin
			})

			return GroupResponse{
				ID:          g.ID,
				Name:        g.Name,
				Description: g.Description,
				CreatedAt:   g.CreatedAt,
				IsAdmin:     callerIsAdmin,
				Members:     members,
			}
		}),
	}, nil
}

// GroupDelete removes a group; only admins may do so.
func (h *HTTPEndpoint) GroupDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.GroupDelete(r.Context(), usecase.GroupDeleteInput{GroupID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}
