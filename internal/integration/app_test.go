package integration_test

import (
	"log/slog"
	"os"

	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mertkaradayi/venue-reservation-system/internal/app"
	"github.com/mertkaradayi/venue-reservation-system/internal/event"
	"github.com/mertkaradayi/venue-reservation-system/internal/mailer"
	"github.com/mertkaradayi/venue-reservation-system/internal/payment"
	appvalidator "github.com/mertkaradayi/venue-reservation-system/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App            *app.Application
	DB             *pgxpool.Pool
	Redis          *redis.Client
	SessionManager *scs.SessionManager
	Mailer         *mailer.MockMailer
	Payments       *payment.MockPaymentProvider
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	validator := appvalidator.NewValidator()
	mockMailer := mailer.NewMockMailer()
	paymentProvider := payment.NewMockPaymentProvider()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	sessionManager := app.NewSessionManager(redisClient)

	application := app.NewApp(
		cfg,
		logger,
		db,
		redisClient,
		validator,
		mockMailer,
		sessionManager,
		event.NewRedisStreamPublisher(redisClient),
		paymentProvider,
	)

	return &TestApp{
		App:            application,
		DB:             db,
		Redis:          redisClient,
		SessionManager: sessionManager,
		Mailer:         mockMailer,
		Payments:       paymentProvider,
	}, nil
}
