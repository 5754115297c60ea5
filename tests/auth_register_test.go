package tests

import (
	"net/http"
	"testing"
)

func TestRegister(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"username":    uniqueUsername("real-register"),
		"phoneNumber": uniquePhone(),
		"password":    testPassword,
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/register", payload, "")

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	var data registerData
	decodeSuccess(t, body, &data)
	if data.UserID == "" {
		t.Fatal("register response missing user_id")
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {

	// Arrange
	existing := registerUser(t, "real-dup")
	payload := map[string]string{
		"username":    uniqueUsername("real-dup-other"),
		"phoneNumber": existing.PhoneNumber,
		"password":    testPassword,
	}

	// Act
	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/register", payload, "")

	// Assert
	if status != http.StatusConflict {
		t.Fatalf("expected conflict, got status=%d body=%s", status, body)
	}
}

func TestRegisterInvalidPhone(t *testing.T) {

	// Arrange
	payload := map[string]string{
		"username":    uniqueUsername("real-badphone"),
		"phoneNumber": "not-a-phone",
		"password":    testPassword,
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/register", payload, "")

	// Assert
	if status != http.StatusUnprocessableEntity && status != http.StatusBadRequest {
		t.Fatalf("expected validation failure, got status=%d", status)
	}
}
