package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/finsetu/backend/internal/auth/inbound"
	"github.com/finsetu/backend/internal/auth/outbound/db"
	"github.com/finsetu/backend/internal/auth/outbound/mq"
	"github.com/finsetu/backend/internal/auth/usecase"
	"github.com/finsetu/backend/internal/pkg/clock"
	"github.com/finsetu/backend/internal/pkg/config"
	"github.com/finsetu/backend/internal/pkg/hash"
	"github.com/finsetu/backend/internal/pkg/idempotency"
	"github.com/finsetu/backend/internal/pkg/instrument"
	"github.com/finsetu/backend/internal/pkg/jwt"
	"github.com/finsetu/backend/internal/pkg/messaging"
	"github.com/finsetu/backend/internal/pkg/otp"
	"github.com/finsetu/backend/internal/pkg/router"
	"github.com/finsetu/backend/internal/pkg/uid"
	"github.com/finsetu/backend/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	Bcrypt      hash.Hash                  `validate:"required"`
	Otp         otp.Generator              `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		UID:           dep.UID,
		Otp:           dep.Otp,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
