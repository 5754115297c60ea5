package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finsetu/backend/internal/auth/entity"
	"github.com/finsetu/backend/internal/pkg/config"
	"github.com/finsetu/backend/internal/pkg/goerror"
	"github.com/finsetu/backend/internal/pkg/hash"
	"github.com/finsetu/backend/internal/pkg/idempotency"
	"github.com/finsetu/backend/internal/pkg/instrument"
	"github.com/finsetu/backend/internal/pkg/jwt"
	"github.com/finsetu/backend/internal/pkg/validator"
)

// testNow anchors the fake clock. Token verification inside golang-jwt always
// reads the real clock, so the fixture time must stay near the present.
var testNow = time.Now().UTC().Truncate(time.Second)

const testConfigYAML = `
modules:
  auth:
    otp_ttl_minutes: 10
    expose_otp: true
`

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type seqUID struct {
	next int64
}

func (u *seqUID) Generate() int64 {
	u.next++
	return u.next
}

type fixedUUID struct{}

func (fixedUUID) Generate() string { return "00000000-0000-0000-0000-000000000001" }

// scriptedOtp returns pre-arranged codes in order.
type scriptedOtp struct {
	codes []string
	calls int
}

func (o *scriptedOtp) Generate() (string, error) {
	if o.calls >= len(o.codes) {
		return "", errors.New("scripted otp exhausted")
	}
	code := o.codes[o.calls]
	o.calls++
	return code, nil
}

type fakeIdemp struct {
	seen map[string]bool
}

func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[key] {
		return idempotency.ErrAlreadyCompleted
	}
	f.seen[key] = true
	return fn(ctx)
}

func (f *fakeIdemp) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdemp) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdemp) MarkFailed(context.Context, string, time.Duration) error { return nil }

// memRepo is an in-memory repoDB.
type memRepo struct {
	users     map[int64]*entity.User
	passwords map[int64]string
	otps      map[int64]entity.OtpRecord // newest live code per user

	published        []OtpIssuedEvent
	failWith         error
	conflictOnInsert bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:     map[int64]*entity.User{},
		passwords: map[int64]string{},
		otps:      map[int64]entity.OtpRecord{},
	}
}

func (m *memRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, goerror.ErrNotFound
}

func (m *memRepo) GetUserByPhone(_ context.Context, phone string) (*entity.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (m *memRepo) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (m *memRepo) GetUserLoginInfo(_ context.Context, phone string) (*entity.UserLoginInfo, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.PhoneNumber == phone {
			return &entity.UserLoginInfo{
				ID:          u.ID,
				Username:    u.Username,
				PhoneNumber: u.PhoneNumber,
				Verified:    u.Verified,
				Password:    m.passwords[u.ID],
			}, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (m *memRepo) GetUserList(_ context.Context) ([]entity.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := make([]entity.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *memRepo) NewRegistration(_ context.Context, user entity.NewUser, rec entity.OtpRecord, hash string) error {
	if m.failWith != nil {
		return m.failWith
	}
	if m.conflictOnInsert {
		return goerror.ErrConflict
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.PhoneNumber == user.PhoneNumber {
			return goerror.ErrConflict
		}
	}
	m.users[user.ID] = &entity.User{
		ID:          user.ID,
		Username:    user.Username,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.CreatedAt,
	}
	m.passwords[user.ID] = hash
	m.otps[user.ID] = rec
	return nil
}

func (m *memRepo) ReplaceOtp(_ context.Context, rec entity.OtpRecord) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[rec.UserID]; !ok {
		return goerror.ErrNotFound
	}
	m.otps[rec.UserID] = rec
	return nil
}

func (m *memRepo) ConsumeOtp(_ context.Context, userID int64, code string, now time.Time) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	rec, ok := m.otps[userID]
	if !ok || rec.Code != code || !rec.ExpiresAt.After(now) {
		return false, nil
	}
	delete(m.otps, userID)
	m.users[userID].Verified = true
	return true, nil
}

func (m *memRepo) PublishOtpIssued(_ context.Context, msg OtpIssuedEvent) error {
	m.published = append(m.published, msg)
	return nil
}

type fixture struct {
	uc    *Usecase
	repo  *memRepo
	clock *fakeClock
	otp   *scriptedOtp
	jwt   jwt.JWT
}

func newFixture(t *testing.T, codes ...string) *fixture {
	t.Helper()

	if len(codes) == 0 {
		codes = []string{"482913", "111111", "222222"}
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("build validator: %v", err)
	}

	clk := &fakeClock{now: testNow}
	tokener, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer:     "finsetu-test",
		Audiences:  []string{"finsetu-app"},
		TTLMinutes: 15 * time.Minute,
		Clock:      clk,
		UUID:       fixedUUID{},
	})
	if err != nil {
		t.Fatalf("build jwt: %v", err)
	}

	repo := newMemRepo()
	otpGen := &scriptedOtp{codes: codes}

	uc := New(Dependency{
		RepoDB:        repo,
		RepoMessaging: repo,
		Idempotency:   &fakeIdemp{},
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        hash.NewBcrypt(4, ""),
		UID:           &seqUID{},
		Otp:           otpGen,
		Clock:         clk,
		JWT:           tokener,
		Instrument:    instrument.NewNoop(),
	})

	return &fixture{uc: uc, repo: repo, clock: clk, otp: otpGen, jwt: tokener}
}

// register drives the register usecase and fails the test on error.
func (f *fixture) register(t *testing.T, username, phone string) *RegisterOutput {
	t.Helper()

	out, err := f.uc.Register(context.Background(), RegisterInput{
		Username:    username,
		PhoneNumber: phone,
		Password:    "Secret123!",
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return out
}

func asGoError(t *testing.T, err error) *goerror.Error {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	return ge
}
