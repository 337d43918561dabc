package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/metalledger/internal/adapter/http"
	"github.com/iho/metalledger/internal/adapter/http/handler"
	"github.com/iho/metalledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/metalledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/metalledger/internal/adapter/repository/redis"
	"github.com/iho/metalledger/internal/infrastructure/auth"
	"github.com/iho/metalledger/internal/infrastructure/config"
	"github.com/iho/metalledger/internal/infrastructure/eventpublisher"
	"github.com/iho/metalledger/internal/infrastructure/logger"
	"github.com/iho/metalledger/internal/infrastructure/metrics"
	"github.com/iho/metalledger/internal/infrastructure/postgres"
	"github.com/iho/metalledger/internal/infrastructure/redis"
	"github.com/iho/metalledger/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	verifier, err := newTokenVerifier(cfg)
	if err != nil {
		return err
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Redis is optional. Without it requests are not deduplicated and
	// backfill runs are not serialized across instances.
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	idGen := postgresRepo.NewULIDGenerator()
	ledgerRepo := postgresRepo.NewLedgerAccountRepository(pool)
	runningRepo := postgresRepo.NewRunningAccountRepository(pool)
	postingRepo := postgresRepo.NewPostingRepository(pool)
	claimRepo := postgresRepo.NewClaimRepository(pool)
	creditRepo := postgresRepo.NewMetalCreditRepository(pool)
	lotRepo := postgresRepo.NewMetalLotRepository(pool)

	var outboxRepo usecase.OutboxRepository = postgresRepo.NewNullOutboxRepository()
	var realOutbox *postgresRepo.OutboxRepository
	if cfg.OutboxEnabled {
		realOutbox = postgresRepo.NewOutboxRepository(pool)
		outboxRepo = realOutbox
	}

	// Use cases
	uow := usecase.NewUnitOfWork(txManager, retrier)
	accountUC := usecase.NewAccountUseCase(ledgerRepo, runningRepo, idGen)
	postingUC := usecase.NewPostingUseCase(uow, ledgerRepo, runningRepo, postingRepo, outboxRepo, idGen, m)
	claimUC := usecase.NewClaimUseCase(uow, claimRepo, postingRepo, outboxRepo, idGen, cfg.SettlementTolerance)
	postingUC.WithClaims(claimUC)
	creditUC := usecase.NewMetalCreditUseCase(uow, creditRepo, postingUC, outboxRepo, idGen, m, cfg.MetalCreditPayableAccountID)
	lotUC := usecase.NewMetalLotUseCase(uow, lotRepo, outboxRepo, idGen, m)
	ledgerUC := usecase.NewLedgerUseCase(runningRepo, postingRepo)
	backfillUC := usecase.NewBackfillUseCase(uow, usecase.BackfillDeps{
		RunningAccounts: runningRepo,
		Postings:        postingRepo,
		Claims:          claimRepo,
		Credits:         creditRepo,
		Lots:            lotRepo,
		Outbox:          outboxRepo,
		IDGen:           idGen,
		Metrics:         m,
	}, log, cfg.SettlementTolerance, cfg.MetalCreditPayableAccountID)

	routerCfg := httpAdapter.RouterConfig{
		Logger:         log,
		AccountHandler: handler.NewAccountHandler(accountUC),
		PostingHandler: handler.NewPostingHandler(postingUC),
		ClaimHandler:   handler.NewClaimHandler(claimUC),
		MetalHandler:   handler.NewMetalHandler(creditUC, lotUC),
		LedgerHandler:  handler.NewLedgerHandler(ledgerUC, backfillUC),
		TokenVerifier:  verifier,
		IdempotencyTTL: cfg.IdempotencyTTL,
	}

	var redisPinger handler.Pinger
	if redisClient != nil {
		routerCfg.IdempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		backfillUC.WithLocker(redisRepo.NewRunLock(redisClient, log), cfg.BackfillLockTTL)
		redisPinger = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	routerCfg.HealthHandler = handler.NewHealthHandler(pool, redisPinger)

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).OnReject(m.RateLimited)
		go limiter.RunCleanup(ctx, time.Minute)
		routerCfg.RateLimiter = limiter
	}

	// Outbox relay
	if realOutbox != nil {
		publisher, closePublisher := newPublisher(cfg, log)
		defer func() {
			if err := closePublisher(); err != nil {
				log.Error().Err(err).Msg("failed to close event publisher")
			}
		}()

		relay := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: realOutbox,
			Publisher:  publisher,
			Metrics:    m,
			Logger:     log,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxPollInterval,
			Retention:  cfg.OutboxRetention,
		})
		go func() {
			if err := relay.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("outbox relay stopped")
			}
		}()
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      httpAdapter.NewRouter(routerCfg),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Bool("auth", verifier != nil).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// newTokenVerifier returns nil when bearer auth is disabled.
func newTokenVerifier(cfg *config.Config) (middleware.TokenVerifier, error) {
	if !cfg.AuthEnabled {
		return nil, nil
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("AUTH_ENABLED requires JWT_SECRET")
	}
	return auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), nil
}

// newPublisher picks Kafka when brokers are configured and the log otherwise.
// The returned func releases the publisher's resources.
func newPublisher(cfg *config.Config, log zerolog.Logger) (eventpublisher.Publisher, func() error) {
	if len(cfg.KafkaBrokers) == 0 {
		return eventpublisher.NewLogPublisher(log), func() error { return nil }
	}

	log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("relaying events to kafka")
	kp := eventpublisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	return kp, kp.Close
}
