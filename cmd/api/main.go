package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/catalog-service/internal/api/http"
	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/events"
	"github.com/spec-kit/catalog-service/internal/identity"
	"github.com/spec-kit/catalog-service/internal/ledger"
	"github.com/spec-kit/catalog-service/internal/observability"
	"github.com/spec-kit/catalog-service/internal/persistence"
	"github.com/spec-kit/catalog-service/internal/repository"
	"github.com/spec-kit/catalog-service/internal/service"
	"github.com/spec-kit/catalog-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	if cfg.Postgres.RunMigrations {
		if _, err := persistence.RunMigrations(ctx, pool, persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	dependencies := map[string]handlers.Pinger{"postgres": pg}

	var ledgerStore ledger.Store
	switch cfg.Ledger.Backend {
	case config.LedgerBackendRedis:
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		dependencies["redis"] = redis
		ledgerStore = repository.NewRedisCredentialRepository(redis.Client)
	case config.LedgerBackendMemory:
		logger.Warn("revocation ledger kept in memory; revocations are lost on restart and not shared between instances")
		ledgerStore = repository.NewMemoryCredentialRepository()
	default:
		ledgerStore = repository.NewCredentialRepository(pool)
	}
	logger.Info("revocation ledger configured", zap.String("backend", cfg.Ledger.Backend))

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	revocations := ledger.New(ledgerStore, logger, ledger.WithObserver(metrics))
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	var decoder auth.CredentialDecoder = auth.NewUnverifiedDecoder()
	if cfg.Auth.VerifySignatures {
		decoder = auth.NewVerifyingDecoder(tokens)
	}

	guard := auth.NewGuard(decoder, revocations, logger,
		auth.WithUnknownPolicy(unknownPolicy(cfg.Auth.RevocationUnknownPolicy)),
		auth.WithLegacyOwnerPolicy(legacyOwnerPolicy(cfg.Auth.LegacyOwnerPolicy)),
		auth.WithDecisionObserver(metrics),
	)

	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	stockRepo := repository.NewStockRepository(pool)

	authority := identity.NewLocalAuthority(identity.LocalDependencies{
		Users:      userRepo,
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	sessions := service.NewSessionService(service.SessionDependencies{
		Authority:  authority,
		Ledger:     revocations,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	customers := service.NewCustomerService(customerRepo, guard)
	stock := service.NewStockService(stockRepo, guard)

	if cfg.Seed.OnStart {
		if err := service.NewSeedService(customerRepo, stockRepo, logger).SeedDefault(ctx); err != nil {
			logger.Fatal("failed to seed catalog", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Auth:           handlers.NewAuthHandler(sessions),
		Customers:      handlers.NewCustomersHandler(customers),
		Stock:          handlers.NewStockHandler(stock),
		AuthMiddleware: auth.NewMiddleware(decoder),
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()
	logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func unknownPolicy(v string) auth.UnknownPolicy {
	if v == config.UnknownPolicyDeny {
		return auth.FailClosed
	}
	return auth.FailOpen
}

func legacyOwnerPolicy(v string) auth.LegacyOwnerPolicy {
	if v == config.LegacyOwnerOpen {
		return auth.LegacyOpen
	}
	return auth.LegacyLocked
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
