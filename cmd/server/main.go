package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tourshield/internal/access"
	alertservice "tourshield/internal/alert/service"
	alertstore "tourshield/internal/alert/store"
	"tourshield/internal/audit"
	authservice "tourshield/internal/auth/service"
	sessionstore "tourshield/internal/auth/store/session"
	userstore "tourshield/internal/auth/store/user"
	"tourshield/internal/auth/workers/cleanup"
	jwttoken "tourshield/internal/jwt_token"
	"tourshield/internal/platform/config"
	"tourshield/internal/platform/database"
	"tourshield/internal/platform/health"
	"tourshield/internal/platform/httpserver"
	"tourshield/internal/platform/kafka/producer"
	"tourshield/internal/platform/logger"
	"tourshield/internal/platform/metrics"
	"tourshield/internal/platform/redis"
	touristmodels "tourshield/internal/tourist/models"
	"tourshield/internal/tourist/presence"
	touristservice "tourshield/internal/tourist/service"
	activitystore "tourshield/internal/tourist/store/activity"
	recordstore "tourshield/internal/tourist/store/record"
	httptransport "tourshield/internal/transport/http"
	id "tourshield/pkg/domain"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing tourshield",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	met := metrics.New()
	healthHandler := health.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Postgres is optional: without it the process runs on in-memory stores,
	// which is how local development and the demo environment work.
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		if err := pool.Migrate(ctx); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		healthHandler.RegisterCheck("postgres", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(checkCtx)
		})
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		healthHandler.RegisterCheck("redis", func() error {
			checkCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(checkCtx)
		})
	}

	auditPublisher, auditSink := newAuditPublisher(cfg, log)
	defer func() {
		if err := auditSink.Close(); err != nil {
			log.Warn("closing audit producer", "error", err)
		}
	}()

	// Stores: durable backends when configured, in-memory otherwise.
	var users authservice.UserStore = userstore.New()
	var records touristservice.RecordStore
	var alerts alertservice.AlertStore
	if pool != nil {
		users = userstore.NewPostgres(pool.DB())
		records = recordstore.NewPostgres(pool.DB())
		alerts = alertstore.NewPostgres(pool.DB())
	} else {
		records = recordstore.New()
		alerts = alertstore.New()
	}

	var sessions authservice.SessionStore
	var cleanupStore cleanup.SessionStore
	var activity touristservice.ActivityStore
	if redisClient != nil {
		redisSessions := sessionstore.NewRedis(redisClient.Client)
		sessions, cleanupStore = redisSessions, redisSessions
		activity = activitystore.NewRedis(redisClient.Client)
	} else {
		memSessions := sessionstore.New()
		sessions, cleanupStore = memSessions, memSessions
		activity = activitystore.New()
	}

	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, "tourshield", cfg.SessionTTL)

	auth := authservice.NewService(users, sessions, jwtService,
		authservice.WithLogger(log),
		authservice.WithMetrics(met),
		authservice.WithAuditPublisher(auditPublisher),
		authservice.WithSessionTTL(cfg.SessionTTL),
	)

	tourists := touristservice.NewService(records, activity,
		touristservice.WithLogger(log),
		touristservice.WithMetrics(met),
		touristservice.WithAuditPublisher(auditPublisher),
		touristservice.WithPresenceThreshold(cfg.PresenceThreshold),
	)

	alertSvc := alertservice.NewService(alerts, &safetyMarker{tourists: tourists},
		alertservice.WithLogger(log),
		alertservice.WithMetrics(met),
		alertservice.WithAuditPublisher(auditPublisher),
	)

	guard := access.NewMiddleware(
		httptransport.NewProfileResolver(auth),
		access.WithMiddlewareLogger(log),
		access.WithMiddlewareMetrics(met),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Auth:     auth,
		Tourists: tourists,
		Alerts:   alertSvc,
		Guard:    guard,
		Token:    httptransport.NewTokenValidator(jwtService),
		Health:   healthHandler,
		Metrics:  met,
		Logger:   log,
	})

	sessionCleanup, err := cleanup.New(cleanupStore,
		cleanup.WithCleanupInterval(cfg.CleanupInterval),
		cleanup.WithCleanupLogger(log),
	)
	if err != nil {
		log.Error("cleanup worker init failed", "error", err)
		os.Exit(1)
	}

	presenceTicker := presence.NewTicker(activity,
		presence.WithTickInterval(cfg.PresenceTick),
		presence.WithThreshold(cfg.PresenceThreshold),
		presence.WithTickerLogger(log),
		presence.WithTickerMetrics(met),
	)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessionCleanup.Start(gctx)
	})
	g.Go(func() error {
		return presenceTicker.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

// auditProducer is the producer lifecycle main owns: Close flushes buffered
// records before exit.
type auditProducer interface {
	audit.MessageProducer
	Close() error
}

// newAuditPublisher builds the kafka-backed audit sink, falling back to a
// local no-op producer when no brokers are configured.
func newAuditPublisher(cfg config.Server, log *slog.Logger) (*audit.Publisher, auditProducer) {
	var mp auditProducer
	switch {
	case cfg.KafkaBrokers == "":
		log.Info("kafka not configured, audit events will be logged only")
		mp = producer.NewNoopProducer(log)
	default:
		kafkaProducer, err := producer.New(producer.Config{
			Brokers:         cfg.KafkaBrokers,
			Acks:            "all",
			Retries:         3,
			DeliveryTimeout: 10 * time.Second,
		}, log)
		if err != nil {
			log.Warn("kafka producer init failed, audit events will be logged only", "error", err)
			mp = producer.NewNoopProducer(log)
		} else {
			mp = kafkaProducer
		}
	}
	return audit.NewPublisher(mp, audit.WithPublisherLogger(log)), mp
}

// safetyMarker adapts the tourist service for alert-driven status escalation.
// Escalation is monotonic; only an authority can lower the status again.
type safetyMarker struct {
	tourists *touristservice.Service
}

func (m *safetyMarker) MarkSafety(ctx context.Context, touristID id.UserID, safety touristmodels.SafetyStatus) error {
	_, err := m.tourists.EscalateSafety(ctx, touristID, safety)
	return err
}
