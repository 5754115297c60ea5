package inbound

import (
	"context"

	"github.com/finsetu/backend/internal/auth/usecase"
	"github.com/finsetu/backend/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	OtpVerify(ctx context.Context, in usecase.OtpVerifyInput) (*usecase.OtpVerifyOutput, error)
	OtpResend(ctx context.Context, in usecase.OtpResendInput) (*usecase.OtpResendOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	UserList(ctx context.Context) (*usecase.UserListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Phone-identity auth gate
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/verify-otp", end.OtpVerify)
	r.POST("/api/v1/auth/resend-otp", end.OtpResend)
	r.POST("/api/v1/auth/login", end.Login)

	// User directory (need authenticated)
	r.GET("/api/v1/users", end.UserList)
}
