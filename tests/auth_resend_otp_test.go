package tests

import (
	"net/http"
	"strconv"
	"testing"
)

func TestResendOtp(t *testing.T) {

	// Arrange
	user := registerUser(t, "real-resend")
	payload := map[string]string{
		"userId": strconv.FormatInt(user.ID, 10),
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/resend-otp", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("resend otp failed: status=%d message=%q", status, errEnv.Message)
	}
}

func TestResendOtpInvalidatesPrevious(t *testing.T) {

	// Arrange
	user := registerUser(t, "real-resend-invalidate")

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/resend-otp", map[string]string{
		"phoneNumber": user.PhoneNumber,
	}, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("resend otp failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		OTP string `json:"otp"`
	}
	decodeSuccess(t, body, &data)
	if data.OTP == "" {
		t.Fatal("resend response missing otp, is modules.auth.expose_otp enabled?")
	}

	// Act: the original code must no longer be accepted.
	status, _ = doJSON(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{
		"userId": strconv.FormatInt(user.ID, 10),
		"otp":    user.OTP,
	}, "")

	// Assert
	if data.OTP != user.OTP && status != http.StatusUnauthorized {
		t.Fatalf("expected stale otp to be rejected, got status=%d", status)
	}

	// The replacement code still works.
	user.OTP = data.OTP
	verifyUser(t, user)
}

func TestResendOtpUnknownUser(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"userId": "999999999999999999",
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/resend-otp", payload, "")

	// Assert
	if status != http.StatusNotFound {
		t.Fatalf("expected not found, got status=%d", status)
	}
}

func TestResendOtpMissingIdentity(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"userId": "null",
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/resend-otp", payload, "")

	// Assert
	if status != http.StatusUnprocessableEntity && status != http.StatusBadRequest {
		t.Fatalf("expected validation failure, got status=%d", status)
	}
}
