// Command api serves the lead funnel HTTP API.
//
//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../internal/docs
//
//	@title						Lead Funnel API
//	@version					1.0
//	@description				Renter and landlord application intake with an admin dashboard.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mercury-homes/lead-funnel/internal/api"
	"github.com/mercury-homes/lead-funnel/internal/api/handler"
	"github.com/mercury-homes/lead-funnel/internal/api/middleware"
	"github.com/mercury-homes/lead-funnel/internal/core/ports"
	"github.com/mercury-homes/lead-funnel/internal/core/service"
	"github.com/mercury-homes/lead-funnel/internal/infrastructure/db/mongo"
	"github.com/mercury-homes/lead-funnel/internal/infrastructure/db/redis"
	"github.com/mercury-homes/lead-funnel/internal/infrastructure/notify"
	"github.com/mercury-homes/lead-funnel/internal/infrastructure/queue"
	"github.com/mercury-homes/lead-funnel/internal/pkg/config"
	"github.com/mercury-homes/lead-funnel/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

var errRedisDisabled = errors.New("redis unreachable at startup")

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "lead-funnel-api",
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	proxies, _ := cfg.TrustedProxyRanges()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unavailable")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	renters := mongo.NewRenterRepository(db)
	landlords := mongo.NewLandlordRepository(db)
	users := mongo.NewAuthRepository(db)
	if err := mongo.EnsureIndexes(ctx, renters, landlords, users); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Redis (optional) ---
	var rdb *goredis.Client
	var idem service.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, idempotency reservations and shared rate limits disabled")
			rdb = nil
		} else {
			defer rdb.Close()
			idem = redis.NewIdempotencyStore(rdb, cfg.IdempotencyTTL)
		}
	}

	// --- Lead alerts ---
	var sender ports.AlertSender = notify.NewLogSender(logger.Component("alerts"))
	if cfg.Alerts.TopicARN != "" {
		sns, err := notify.NewSNSSender(ctx, cfg.Alerts.Region, cfg.Alerts.TopicARN)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure sns")
		}
		sender = sns
	}
	dispatcher := queue.NewDispatcher(cfg.Alerts.Workers, sender, log)
	dispatcher.Start()

	// --- Services ---
	applications := service.NewApplicationService(renters, landlords, idem, dispatcher, logger.Component("applications"))
	auth := service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL)
	if cfg.AdminPassword != "" {
		if _, err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to bootstrap admin account")
		}
	}

	// --- Readiness ---
	required := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
	}
	optional := map[string]handler.Check{}
	if cfg.Redis.Addr != "" {
		optional["redis"] = func(ctx context.Context) error {
			if rdb == nil {
				return errRedisDisabled
			}
			return rdb.Ping(ctx).Err()
		}
	}

	e := api.NewRouter(api.Deps{
		Applications:   applications,
		Auth:           auth,
		JWTSecret:      cfg.JWTSecret,
		RateLimit: middleware.RateLimitConfig{
			Client: rdb,
			RPS:    cfg.RateLimit.RPS,
			Burst:  cfg.RateLimit.Burst,
			Window: cfg.RateLimit.Window,
			Logger: logger.Component("ratelimit"),
		},
		TrustedProxies: proxies,
		Required:       required,
		Optional:       optional,
		Location:       cfg.Location(),
		Logger:         logger.Component("http"),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	// Alerts for requests finished during Shutdown are still queued.
	if err := dispatcher.Stop(sctx); err != nil {
		log.Error().Err(err).Msg("alert queue not fully drained")
	}
}
