package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/remit_backend/internal/adapters/database/memory"
	"github.com/SscSPs/remit_backend/internal/adapters/database/pgsql"
	"github.com/SscSPs/remit_backend/internal/adapters/events"
	"github.com/SscSPs/remit_backend/internal/adapters/ratesource"
	portsrepo "github.com/SscSPs/remit_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/core/services"
	"github.com/SscSPs/remit_backend/internal/handlers"
	"github.com/SscSPs/remit_backend/internal/middleware"
	"github.com/SscSPs/remit_backend/internal/platform/config"
	"github.com/SscSPs/remit_backend/pkg/database"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Remit Backend API
// @version 1.0
// @description USD remittance quotes, transfers and exchange rates.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	publisher, closePublisher := setupPublisher(cfg, logger)
	defer closePublisher()

	container := services.NewServiceContainer(repos, services.ContainerDeps{
		RateSource: ratesource.NewHTTPSource(cfg.RateSourceURL, cfg.RateSourceTimeout),
		Publisher:  publisher,
		Currencies: cfg.Currencies,
		Limits:     services.QuoteLimits{MinAmountUSD: cfg.MinAmountUSD, MaxAmountUSD: cfg.MaxAmountUSD},
	})

	refresher := services.NewRateRefresher(container.RateCache, cfg.RateRefreshInterval, logger.With(slog.String("component", "rate_refresher")))
	go refresher.Run(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupRepositories connects to PostgreSQL and migrates it, or falls back to
// in-memory storage when no database URL is configured.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("No database configured, data will not survive a restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		ConnectTimeout: 10 * time.Second,
		Ping:           cfg.EnableDBCheck,
	})
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Migrations use database/sql over the pgx stdlib driver.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if err := errors.Join(sourceErr, dbErr); err != nil {
		return err
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// setupPublisher returns the Kafka publisher when brokers are configured.
func setupPublisher(cfg *config.Config, logger *slog.Logger) (portssvc.TransactionEventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("Kafka brokers not configured, transaction events disabled")
		return events.NoopPublisher{}, func() {}
	}

	publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTransactionTopic)
	logger.Info("Publishing transaction events", slog.String("topic", cfg.KafkaTransactionTopic))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close Kafka publisher", slog.String("error", err.Error()))
		}
	}
}
