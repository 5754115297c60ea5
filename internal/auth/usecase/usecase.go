package usecase

import (
	"context"
	"time"

	"github.com/finsetu/backend/internal/auth/entity"
	"github.com/finsetu/backend/internal/pkg/clock"
	"github.com/finsetu/backend/internal/pkg/config"
	"github.com/finsetu/backend/internal/pkg/hash"
	"github.com/finsetu/backend/internal/pkg/idempotency"
	"github.com/finsetu/backend/internal/pkg/instrument"
	"github.com/finsetu/backend/internal/pkg/jwt"
	"github.com/finsetu/backend/internal/pkg/otp"
	"github.com/finsetu/backend/internal/pkg/uid"
	"github.com/finsetu/backend/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OtpIssuedEvent struct {
	UserID      int64
	PhoneNumber string
	Code        string
	ExpiresAt   time.Time
}

type repoMessaging interface {
	PublishOtpIssued(ctx context.Context, msg OtpIssuedEvent) error
}

type repoDB interface {
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserLoginInfo(ctx context.Context, phone string) (*entity.UserLoginInfo, error)
	GetUserList(ctx context.Context) ([]entity.User, error)

	NewRegistration(ctx context.Context, user entity.NewUser, rec entity.OtpRecord, hash string) error
	ReplaceOtp(ctx context.Context, rec entity.OtpRecord) error
	ConsumeOtp(ctx context.Context, userID int64, code string, now time.Time) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	uid           uid.NumberID
	otp           otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	UID           uid.NumberID
	Otp           otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		otp:           dep.Otp,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	ttl := s.cfg.GetMinute("modules.auth.otp_ttl_minutes")
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return ttl
}

func (s *Usecase) echoOtp(code string) string {
	if s.cfg.GetBool("modules.auth.expose_otp") {
		return code
	}
	return ""
}
