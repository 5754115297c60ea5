package inbound

import (
	"github.com/finsetu/backend/internal/auth/entity"
	"github.com/finsetu/backend/internal/auth/usecase"
	"github.com/finsetu/backend/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for the phone-identity auth workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a user account and issues the first OTP challenge.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username:       req.Username,
		PhoneNumber:    req.PhoneNumber,
		Password:       req.Password,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{UserID: resp.UserID, Code: resp.Code}, nil
}

// OtpVerify consumes a submitted OTP and marks the phone number verified.
func (h *HTTPEndpoint) OtpVerify(r *router.Request) (any, error) {
	var req OtpVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpVerify(r.Context(), usecase.OtpVerifyInput{
		UserID:      string(req.UserID),
		PhoneNumber: req.PhoneNumber,
		Code:        req.Code,
	})
	if err != nil {
		return nil, err
	}

	return OtpVerifyResponse{UserID: resp.UserID, Verified: resp.Verified}, nil
}

// OtpResend replaces any outstanding OTP with a fresh one.
func (h *HTTPEndpoint) OtpResend(r *router.Request) (any, error) {
	var req OtpResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OtpResend(r.Context(), usecase.OtpResendInput{
		UserID:      string(req.UserID),
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	return OtpResendResponse{UserID: resp.UserID, Code: resp.Code}, nil
}

// Login authenticates a verified user and returns an access token.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{UserID: resp.UserID, AccessToken: resp.AccessToken}, nil
}

// UserList returns the directory of registered users.
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	resp, err := h.uc.UserList(r.Context())
	if err != nil {
		return nil, err
	}

	return UserListResponse{
		Users: lo.Map(resp.Users, func(u entity.User, _ int) UserResponse {
			return UserResponse{
				ID:          u.ID,
				Username:    u.Username,
				PhoneNumber: u.PhoneNumber,
				Verified:    u.Verified,
			}
		}),
	}, nil
}
