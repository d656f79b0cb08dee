package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SscSPs/erp_journal_engine/internal/core/services"
	"github.com/SscSPs/erp_journal_engine/internal/handlers"
	"github.com/SscSPs/erp_journal_engine/internal/middleware"
	"github.com/SscSPs/erp_journal_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/erp_journal_engine/pkg/cache"
	"github.com/SscSPs/erp_journal_engine/pkg/database"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API. Pending migrations are applied first unless
--skip-migrations is given.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("skip-migrations", false, "Do not apply pending migrations on start")
}

func runServe(cmd *cobra.Command, args []string) error {
	skipMigrations, _ := cmd.Flags().GetBool("skip-migrations")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if !skipMigrations {
		logger.Info("Running database migrations...")
		if err := database.MigrateUp(logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return err
		}
	}

	checks := []handlers.HealthCheck{{Name: "postgres", Check: dbPool.Ping}}

	var periodCache cache.Store
	if cfg.RedisURL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			// The cache is optional; periods are read from the database instead.
			logger.Warn("Redis unavailable, fiscal periods will not be cached", slog.String("error", err.Error()))
		} else {
			defer cache.CloseRedisClient(redisClient)
			periodCache = cache.NewRedisStore(redisClient)
			checks = append(checks, handlers.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}})
		}
	}

	if err := middleware.SetupValidator(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	container := services.NewServiceContainer(cfg, repos, periodCache)
	defer func() {
		if closer, ok := container.Audit.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Error("Failed to flush audit log", slog.String("error", err.Error()))
			}
		}
	}()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, checks...); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server exited gracefully")
	return nil
}
