package inbound

import (
	"context"

	"github.com/finsetu/backend/internal/group/usecase"
	"github.com/finsetu/backend/internal/pkg/router"
)

type uc interface {
	GroupCreate(ctx context.Context, in usecase.GroupCreateInput) (*usecase.GroupCreateOutput, error)
	GroupList(ctx context.Context) (*usecase.GroupListOutput, error)
	GroupDelete(ctx context.Context, in usecase.GroupDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Bill-splitting groups (need authenticated)
	r.POST("/api/v1/groups", end.GroupCreate)
	r.GET("/api/v1/groups", end.GroupList)
	r.DELETE("/api/v1/groups/:id", end.GroupDelete)
}
