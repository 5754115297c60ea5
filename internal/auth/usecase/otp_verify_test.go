package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/finsetu/backend/internal/pkg/goerror"
)

func TestOtpVerify(t *testing.T) {

	// Arrange
	f := newFixture(t)
	out := f.register(t, "budi", "+6281234567890")

	// Act
	res, err := f.uc.OtpVerify(context.Background(), OtpVerifyInput{
		UserID: strconv.FormatInt(out.UserID, 10),
		Code:   out.Code,
	})

	// Assert
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if !res.Verified {
		t.Fatal("expected verified result")
	}
	if !f.repo.users[out.UserID].Verified {
		t.Fatal("expected user row to be marked verified")
	}
}

func TestOtpVerifyByPhone(t *testing.T) {

	// Arrange
	f := newFixture(t)
	out := f.register(t, "budi", "+6281234567890")

	// Act
	res, err := f.uc.OtpVerify(context.Background(), OtpVerifyInput{
		PhoneNumber: "+6281234567890",
		Code:        out.Code,
	})

	// Assert
	if err != nil {
		t.Fatalf("verify otp by phone: %v", err)
	}
	if res.UserID != out.UserID {
		t.Fatalf("expected user %d, got %d", out.UserID, res.UserID)
	}
}

func TestOtpVerifySingleUse(t *testing.T) {

	// Arrange
	f := newFixture(t)
	out := f.register(t, "budi", "+6281234567890")
	in := OtpVerifyInput{
		UserID: strconv.FormatInt(out.UserID, 10),
		Code:   out.Code,
	}
	if _, err := f.uc.OtpVerify(context.Background(), in); err != nil {
		t.Fatalf("first verify: %v", err)
	}

	// Act
	_, err := f.uc.OtpVerify(context.Background(), in)

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeUnauthorized {
		t.Fatalf("expected unauthorized on reuse, got %s", ge.Code())
	}
	if ge.Msg() != "Invalid or expired OTP" {
		t.Fatalf("unexpected message %q", ge.Msg())
	}
}

func TestOtpVerifyExpired(t *testing.T) {

	// Arrange
	f := newFixture(t)
	out := f.register(t, "budi", "+6281234567890")
	f.clock.Advance(10*time.Minute + time.Second)

	// Act
	_, err := f.uc.OtpVerify(context.Background(), OtpVerifyInput{
		UserID: strconv.FormatInt(out.UserID, 10),
		Code:   out.Code,
	})

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeUnauthorized {
		t.Fatalf("expected unauthorized on expiry, got %s", ge.Code())
	}
	if f.repo.users[out.UserID].Verified {
		t.Fatal("user must stay unverified after expired code")
	}
}

func TestOtpVerifyWrongCode(t *testing.T) {

	// Arrange
	f := newFixture(t)
	out := f.register(t, "budi", "+6281234567890")

	// Act
	_, err := f.uc.OtpVerify(context.Background(), OtpVerifyInput{
		UserID: strconv.FormatInt(out.UserID, 10),
		Code:   "000000",
	})

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %s", ge.Code())
	}
	if ge.Msg() != "Invalid or expired OTP" {
		t.Fatalf("unexpected message %q", ge.Msg())
	}
}

func TestOtpVerifyIdentityMismatch(t *testing.T) {

	// Arrange
	f := newFixture(t)
	first := f.register(t, "budi", "+6281234567890")
	f.register(t, "siti", "+6289876543210")

	// Act: id and phone point at different accounts.
	_, err := f.uc.OtpVerify(context.Background(), OtpVerifyInput{
		UserID:      strconv.FormatInt(first.UserID, 10),
		PhoneNumber: "+6289876543210",
		Code:        first.Code,
	})

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeConflict {
		t.Fatalf("expected conflict, got %s", ge.Code())
	}
	if ge.Msg() != "identity mismatch" {
		t.Fatalf("unexpected message %q", ge.Msg())
	}
}

func TestOtpVerifyMatchingPair(t *testing.T) {

	// Arrange: both id and phone provided and consistent.
	f := newFixture(t)
	out := f.register(t, "budi", "+6281234567890")

	// Act
	_, err := f.uc.OtpVerify(context.Background(), OtpVerifyInput{
		UserID:      strconv.FormatInt(out.UserID, 10),
		PhoneNumber: "+6281234567890",
		Code:        out.Code,
	})

	// Assert
	if err != nil {
		t.Fatalf("verify with matching pair: %v", err)
	}
}

func TestOtpVerifyIdentityErrors(t *testing.T) {

	// Arrange
	f := newFixture(t)
	f.register(t, "budi", "+6281234567890")

	cases := map[string]struct {
		in   OtpVerifyInput
		code goerror.Code
	}{
		"no identity":      {OtpVerifyInput{Code: "482913"}, goerror.CodeInvalidFormat},
		"null id only":     {OtpVerifyInput{UserID: "null", Code: "482913"}, goerror.CodeInvalidFormat},
		"non-numeric id":   {OtpVerifyInput{UserID: "abc", Code: "482913"}, goerror.CodeInvalidFormat},
		"unknown user id":  {OtpVerifyInput{UserID: "999", Code: "482913"}, goerror.CodeNotFound},
		"unknown phone":    {OtpVerifyInput{PhoneNumber: "+6280000000000", Code: "482913"}, goerror.CodeNotFound},
		"short code":       {OtpVerifyInput{UserID: "1", Code: "123"}, goerror.CodeInvalidInput},
		"non-numeric code": {OtpVerifyInput{UserID: "1", Code: "abcdef"}, goerror.CodeInvalidInput},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {

			// Act
			_, err := f.uc.OtpVerify(context.Background(), tc.in)

			// Assert
			ge := asGoError(t, err)
			if ge.Code() != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, ge.Code())
			}
		})
	}
}
