package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/finsetu/backend/internal/pkg/clock"
	"github.com/finsetu/backend/internal/pkg/config"
	"github.com/finsetu/backend/internal/pkg/goroutine"
	"github.com/finsetu/backend/internal/pkg/hash"
	"github.com/finsetu/backend/internal/pkg/idempotency"
	"github.com/finsetu/backend/internal/pkg/instrument"
	"github.com/finsetu/backend/internal/pkg/jwt"
	"github.com/finsetu/backend/internal/pkg/messaging"
	"github.com/finsetu/backend/internal/pkg/otp"
	"github.com/finsetu/backend/internal/pkg/router"
	"github.com/finsetu/backend/internal/pkg/sms"
	"github.com/finsetu/backend/internal/pkg/uid"
	"github.com/finsetu/backend/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	messaging messaging.Messaging
	sms       sms.Sender

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initSMS()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
