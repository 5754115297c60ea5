package usecase

import (
	"context"
	"strconv"
	"testing"

	"github.com/finsetu/backend/internal/pkg/goerror"
)

func (f *fixture) verifiedUser(t *testing.T, username, phone string) int64 {
	t.Helper()

	out := f.register(t, username, phone)
	if _, err := f.uc.OtpVerify(context.Background(), OtpVerifyInput{
		UserID: strconv.FormatInt(out.UserID, 10),
		Code:   out.Code,
	}); err != nil {
		t.Fatalf("verify %s: %v", username, err)
	}
	return out.UserID
}

func TestLogin(t *testing.T) {

	// Arrange
	f := newFixture(t)
	userID := f.verifiedUser(t, "budi", "+6281234567890")

	// Act
	out, err := f.uc.Login(context.Background(), LoginInput{
		PhoneNumber: "+6281234567890",
		Password:    "Secret123!",
	})

	// Assert
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if out.UserID != userID {
		t.Fatalf("expected user %d, got %d", userID, out.UserID)
	}

	claims, err := f.jwt.Verify(out.AccessToken)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.UserID != userID || claims.UserPhone != "+6281234567890" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginUnverifiedPhone(t *testing.T) {

	// Arrange
	f := newFixture(t)
	f.register(t, "budi", "+6281234567890")

	// Act
	_, err := f.uc.Login(context.Background(), LoginInput{
		PhoneNumber: "+6281234567890",
		Password:    "Secret123!",
	})

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeForbidden {
		t.Fatalf("expected forbidden, got %s", ge.Code())
	}
	if ge.Msg() != "Phone number not verified" {
		t.Fatalf("unexpected message %q", ge.Msg())
	}
}

func TestLoginWrongPassword(t *testing.T) {

	// Arrange
	f := newFixture(t)
	f.verifiedUser(t, "budi", "+6281234567890")

	// Act
	_, err := f.uc.Login(context.Background(), LoginInput{
		PhoneNumber: "+6281234567890",
		Password:    "WrongSecret1!",
	})

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %s", ge.Code())
	}
}

func TestLoginUnknownPhone(t *testing.T) {

	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.Login(context.Background(), LoginInput{
		PhoneNumber: "+6280000000000",
		Password:    "Secret123!",
	})

	// Assert: indistinguishable from a bad password.
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %s", ge.Code())
	}
}

func TestUserListRequiresAuth(t *testing.T) {

	// Arrange
	f := newFixture(t)

	// Act
	_, err := f.uc.UserList(context.Background())

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %s", ge.Code())
	}
}
