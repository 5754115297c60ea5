package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/finsetu/backend/internal/pkg/goerror"
)

func TestRegister(t *testing.T) {

	// Arrange
	f := newFixture(t)

	// Act
	out, err := f.uc.Register(context.Background(), RegisterInput{
		Username:    "budi",
		PhoneNumber: "+6281234567890",
		Password:    "Secret123!",
	})

	// Assert
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if out.UserID == 0 {
		t.Fatal("expected non-zero user id")
	}
	if !out.ChallengeIssued {
		t.Fatal("expected otp challenge to be issued")
	}
	if out.Code != "482913" {
		t.Fatalf("expected echoed otp 482913, got %q", out.Code)
	}

	rec, ok := f.repo.otps[out.UserID]
	if !ok {
		t.Fatal("expected otp record to be stored")
	}
	if want := testNow.Add(10 * time.Minute); !rec.ExpiresAt.Equal(want) {
		t.Fatalf("expected otp to expire at %v, got %v", want, rec.ExpiresAt)
	}

	if len(f.repo.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(f.repo.published))
	}
	if f.repo.published[0].Code != "482913" {
		t.Fatalf("published event carries wrong code %q", f.repo.published[0].Code)
	}

	if f.repo.users[out.UserID].Verified {
		t.Fatal("new user must start unverified")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {

	// Arrange
	f := newFixture(t)
	f.register(t, "budi", "+6281234567890")

	// Act
	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username:    "budi",
		PhoneNumber: "+6289876543210",
		Password:    "Secret123!",
	})

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeConflict {
		t.Fatalf("expected conflict, got %s", ge.Code())
	}
	if ge.Msg() != "Username already registered" {
		t.Fatalf("unexpected message %q", ge.Msg())
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {

	// Arrange
	f := newFixture(t)
	f.register(t, "budi", "+6281234567890")

	// Act
	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username:    "siti",
		PhoneNumber: "+6281234567890",
		Password:    "Secret123!",
	})

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeConflict {
		t.Fatalf("expected conflict, got %s", ge.Code())
	}
	if ge.Msg() != "Phone number already registered" {
		t.Fatalf("unexpected message %q", ge.Msg())
	}
}

func TestRegisterInvalidInput(t *testing.T) {

	// Arrange
	f := newFixture(t)

	cases := map[string]RegisterInput{
		"missing username": {PhoneNumber: "+6281234567890", Password: "Secret123!"},
		"bad phone":        {Username: "budi", PhoneNumber: "not-a-phone", Password: "Secret123!"},
		"short password":   {Username: "budi", PhoneNumber: "+6281234567890", Password: "short"},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {

			// Act
			_, err := f.uc.Register(context.Background(), in)

			// Assert
			ge := asGoError(t, err)
			if ge.Code() != goerror.CodeInvalidInput {
				t.Fatalf("expected invalid input, got %s", ge.Code())
			}
		})
	}
}

func TestRegisterIdempotentReplay(t *testing.T) {

	// Arrange
	f := newFixture(t)
	in := RegisterInput{
		Username:       "budi",
		PhoneNumber:    "+6281234567890",
		Password:       "Secret123!",
		IdempotencyKey: "req-42",
	}

	if _, err := f.uc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Act: same key again is rejected instead of re-running.
	in.Username = "siti"
	in.PhoneNumber = "+6289876543210"
	_, err := f.uc.Register(context.Background(), in)

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeConflict {
		t.Fatalf("expected conflict on replay, got %s", ge.Code())
	}
	if len(f.repo.users) != 1 {
		t.Fatalf("expected a single user, got %d", len(f.repo.users))
	}
}

func TestRegisterConcurrentConflict(t *testing.T) {

	// Arrange: duplicate checks pass but the insert loses the race.
	f := newFixture(t)
	f.repo.conflictOnInsert = true

	// Act
	_, err := f.uc.Register(context.Background(), RegisterInput{
		Username:    "budi",
		PhoneNumber: "+6281234567890",
		Password:    "Secret123!",
	})

	// Assert
	ge := asGoError(t, err)
	if ge.Code() != goerror.CodeConflict {
		t.Fatalf("expected conflict, got %s", ge.Code())
	}
	if ge.Msg() != "Username or phone number already registered" {
		t.Fatalf("unexpected message %q", ge.Msg())
	}
}
