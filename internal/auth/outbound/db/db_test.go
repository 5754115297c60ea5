package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/finsetu/backend/internal/auth/entity"
	"github.com/finsetu/backend/internal/pkg/goerror"
	"github.com/finsetu/backend/internal/pkg/instrument"
)

var (
	testPool *pgxpool.Pool
	idSeq    int64
	idMu     sync.Mutex
)

func nextID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	idSeq++
	return idSeq
}

func TestMain(m *testing.M) {
	if os.Getenv("FINSETU_DB_TESTS") == "" {
		fmt.Fprintln(os.Stderr, "skipping db tests, set FINSETU_DB_TESTS=1 to run them (requires docker)")
		os.Exit(0)
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finsetu_test"),
		postgres.WithUsername("finsetu"),
		postgres.WithPassword("finsetu"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres container: %v\n", err)
		os.Exit(1)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "container connection string: %v\n", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}

	schema, err := os.ReadFile("../../../../db/schema.sql")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read schema: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		fmt.Fprintf(os.Stderr, "apply schema: %v\n", err)
		os.Exit(1)
	}

	testPool = pool
	code := m.Run()

	pool.Close()
	if err := testcontainers.TerminateContainer(container); err != nil {
		fmt.Fprintf(os.Stderr, "terminate container: %v\n", err)
	}

	os.Exit(code)
}

func newTestDB() *DB {
	return NewDB(testPool, instrument.NewNoop())
}

func seedUser(t *testing.T, s *DB, username, phone string) (int64, entity.OtpRecord) {
	t.Helper()

	now := time.Now().UTC()
	user := entity.NewUser{ID: nextID(), Username: username, PhoneNumber: phone}
	rec := entity.OtpRecord{
		ID:          nextID(),
		UserID:      user.ID,
		PhoneNumber: phone,
		Code:        "482913",
		CreatedAt:   now,
		ExpiresAt:   now.Add(10 * time.Minute),
	}
	if err := s.NewRegistration(context.Background(), user, rec, "hashed-password"); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user.ID, rec
}

func TestNewRegistration(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	userID, _ := seedUser(t, s, "db-budi", "+6281110000001")

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		t.Fatalf("get user by id: %v", err)
	}
	if user.Username != "db-budi" || user.Verified {
		t.Fatalf("unexpected user: %+v", user)
	}

	byPhone, err := s.GetUserByPhone(ctx, "+6281110000001")
	if err != nil {
		t.Fatalf("get user by phone: %v", err)
	}
	if byPhone.ID != userID {
		t.Fatalf("expected user %d, got %d", userID, byPhone.ID)
	}
}

func TestNewRegistrationDuplicate(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	seedUser(t, s, "db-dup", "+6281110000002")

	now := time.Now().UTC()
	err := s.NewRegistration(ctx,
		entity.NewUser{ID: nextID(), Username: "db-dup", PhoneNumber: "+6281110000003"},
		entity.OtpRecord{
			ID: nextID(), PhoneNumber: "+6281110000003", Code: "111111",
			CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute),
		},
		"hashed-password")
	if !errors.Is(err, goerror.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGetUserMissing(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	if _, err := s.GetUserByID(ctx, -1); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := s.GetUserByPhone(ctx, "+6280000000000"); !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConsumeOtp(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	userID, rec := seedUser(t, s, "db-verify", "+6281110000004")

	ok, err := s.ConsumeOtp(ctx, userID, rec.Code, time.Now().UTC())
	if err != nil {
		t.Fatalf("consume otp: %v", err)
	}
	if !ok {
		t.Fatal("expected consume to succeed")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !user.Verified {
		t.Fatal("expected user to be verified")
	}

	// Second consume finds nothing.
	ok, err = s.ConsumeOtp(ctx, userID, rec.Code, time.Now().UTC())
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if ok {
		t.Fatal("expected reuse to fail")
	}
}

func TestConsumeOtpWrongCode(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	userID, _ := seedUser(t, s, "db-wrong", "+6281110000005")

	ok, err := s.ConsumeOtp(ctx, userID, "000000", time.Now().UTC())
	if err != nil {
		t.Fatalf("consume otp: %v", err)
	}
	if ok {
		t.Fatal("wrong code must not verify")
	}
}

func TestConsumeOtpExpired(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	userID, rec := seedUser(t, s, "db-expired", "+6281110000006")

	ok, err := s.ConsumeOtp(ctx, userID, rec.Code, rec.ExpiresAt.Add(time.Second))
	if err != nil {
		t.Fatalf("consume otp: %v", err)
	}
	if ok {
		t.Fatal("expired code must not verify")
	}
}

func TestConsumeOtpConcurrent(t *testing.T) {
	s := newTestDB()

	userID, rec := seedUser(t, s, "db-race", "+6281110000007")

	const workers = 8
	results := make(chan bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.ConsumeOtp(context.Background(), userID, rec.Code, time.Now().UTC())
			if err != nil {
				t.Errorf("concurrent consume: %v", err)
				return
			}
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for ok := range results {
		if ok {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful consume, got %d", succeeded)
	}
}

func TestReplaceOtp(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	userID, old := seedUser(t, s, "db-replace", "+6281110000008")

	now := time.Now().UTC()
	fresh := entity.OtpRecord{
		ID:          nextID(),
		UserID:      userID,
		PhoneNumber: "+6281110000008",
		Code:        "111111",
		CreatedAt:   now,
		ExpiresAt:   now.Add(10 * time.Minute),
	}
	if err := s.ReplaceOtp(ctx, fresh); err != nil {
		t.Fatalf("replace otp: %v", err)
	}

	ok, err := s.ConsumeOtp(ctx, userID, old.Code, now)
	if err != nil {
		t.Fatalf("consume stale: %v", err)
	}
	if ok {
		t.Fatal("stale code must be dead after replace")
	}

	ok, err = s.ConsumeOtp(ctx, userID, fresh.Code, now)
	if err != nil {
		t.Fatalf("consume fresh: %v", err)
	}
	if !ok {
		t.Fatal("fresh code must verify")
	}
}

func TestGetUserLoginInfo(t *testing.T) {
	s := newTestDB()
	ctx := context.Background()

	userID, rec := seedUser(t, s, "db-login", "+6281110000009")
	if _, err := s.ConsumeOtp(ctx, userID, rec.Code, time.Now().UTC()); err != nil {
		t.Fatalf("consume otp: %v", err)
	}

	info, err := s.GetUserLoginInfo(ctx, "+6281110000009")
	if err != nil {
		t.Fatalf("get login info: %v", err)
	}
	if info.ID != userID || !info.Verified || info.Password != "hashed-password" {
		t.Fatalf("unexpected login info: %+v", info)
	}
}
