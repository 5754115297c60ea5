package tests

import (
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"
)

const testPassword = "Secret123!"

type testUser struct {
	ID          int64
	Username    string
	PhoneNumber string
	Password    string
	OTP         string
}

type registerData struct {
	UserID string `json:"user_id"`
	OTP    string `json:"otp"`
}

type loginData struct {
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

func uniquePhone() string {
	return fmt.Sprintf("+62812%09d", time.Now().UnixNano()%1_000_000_000)
}

func uniqueUsername(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// registerUser creates a fresh account. It relies on the local server running
// with modules.auth.expose_otp enabled so the issued OTP comes back in the
// response instead of over SMS.
func registerUser(t *testing.T, prefix string) testUser {
	t.Helper()

	user := testUser{
		Username:    uniqueUsername(prefix),
		PhoneNumber: uniquePhone(),
		Password:    testPassword,
	}

	payload := map[string]string{
		"username":    user.Username,
		"phoneNumber": user.PhoneNumber,
		"password":    user.Password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/register", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("register failed: status=%d message=%q", status, errEnv.Message)
	}

	var data registerData
	decodeSuccess(t, body, &data)
	if data.UserID == "" {
		t.Fatal("register response missing user_id")
	}
	if data.OTP == "" {
		t.Fatal("register response missing otp, is modules.auth.expose_otp enabled?")
	}

	id, err := strconv.ParseInt(data.UserID, 10, 64)
	if err != nil {
		t.Fatalf("parse user id: %v", err)
	}
	user.ID = id
	user.OTP = data.OTP

	return user
}

func verifyUser(t *testing.T, user testUser) {
	t.Helper()

	payload := map[string]string{
		"userId": strconv.FormatInt(user.ID, 10),
		"otp":    user.OTP,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/verify-otp", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("verify otp failed: status=%d message=%q", status, errEnv.Message)
	}
}

func loginUser(t *testing.T, user testUser) string {
	t.Helper()

	payload := map[string]string{
		"phoneNumber": user.PhoneNumber,
		"password":    user.Password,
	}

	status, body := doJSON(t, http.MethodPost, "/api/v1/auth/login", payload, "")
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("login failed: status=%d message=%q", status, errEnv.Message)
	}

	var data loginData
	decodeSuccess(t, body, &data)
	if data.AccessToken == "" {
		t.Fatal("missing access token")
	}

	return data.AccessToken
}

// verifiedUser registers, verifies and returns a ready-to-login account.
func verifiedUser(t *testing.T, prefix string) testUser {
	t.Helper()

	user := registerUser(t, prefix)
	verifyUser(t, user)

	return user
}
