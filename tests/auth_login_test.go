package tests

import (
	"net/http"
	"testing"
)

func TestLogin(t *testing.T) {

	// Arrange
	user := verifiedUser(t, "real-login")

	// Act
	token := loginUser(t, user)

	// Assert
	if token == "" {
		t.Fatal("expected access token in login response")
	}
}

func TestLoginUnverifiedPhone(t *testing.T) {

	// Arrange
	user := registerUser(t, "real-login-unverified")
	payload := map[string]string{
		"phoneNumber": user.PhoneNumber,
		"password":    user.Password,
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/login", payload, "")

	// Assert
	if status != http.StatusForbidden {
		t.Fatalf("expected forbidden for unverified phone, got status=%d", status)
	}
}

func TestLoginWrongPassword(t *testing.T) {

	// Arrange
	user := verifiedUser(t, "real-login-wrongpass")
	payload := map[string]string{
		"phoneNumber": user.PhoneNumber,
		"password":    "WrongSecret1!",
	}

	// Act
	status, _ := doJSON(t, http.MethodPost, "/api/v1/auth/login", payload, "")

	// Assert
	if status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got status=%d", status)
	}
}

func TestUserList(t *testing.T) {

	// Arrange
	user := verifiedUser(t, "real-userlist")
	token := loginUser(t, user)

	// Act
	status, body := doJSON(t, http.MethodGet, "/api/v1/users", nil, token)

	// Assert
	if status != http.StatusOK {
		errEnv := decodeError(t, body)
		t.Fatalf("user list failed: status=%d message=%q", status, errEnv.Message)
	}

	var data struct {
		Users []struct {
			ID          string `json:"id"`
			Username    string `json:"username"`
			PhoneNumber string `json:"phone_number"`
		} `json:"users"`
	}
	decodeSuccess(t, body, &data)
	if len(data.Users) == 0 {
		t.Fatal("expected at least one user in directory")
	}
}

func TestUserListRequiresAuth(t *testing.T) {

	// Act
	status, _ := doJSON(t, http.MethodGet, "/api/v1/users", nil, "")

	// Assert
	if status != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized without token, got status=%d", status)
	}
}
