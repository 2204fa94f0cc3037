package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/bank_rules_app/internal/adapters/erp"
	"github.com/SscSPs/bank_rules_app/internal/adapters/notify"
	"github.com/SscSPs/bank_rules_app/internal/cache"
	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/core/services"
	"github.com/SscSPs/bank_rules_app/internal/handlers"
	"github.com/SscSPs/bank_rules_app/internal/metrics"
	"github.com/SscSPs/bank_rules_app/internal/middleware"
	"github.com/SscSPs/bank_rules_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_rules_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. When ENABLE_DB_CHECK is set, pending migrations are
applied before the server starts accepting requests.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.EnableDBCheck {
		if err := runMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, func(m *migrate.Migrate) error {
			return m.Up()
		}); err != nil {
			logger.Error("Failed to migrate database", slog.String("error", err.Error()))
			return err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return err
	}
	defer database.ClosePgxPool(dbPool)

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		return err
	}

	var notifier portssvc.Notifier = notify.LogNotifier{}
	if cfg.MailgunEnabled() {
		notifier = notify.NewMailgunNotifier(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
		logger.Info("Mailgun notifications enabled", slog.String("domain", cfg.MailgunDomain))
	}

	container := services.NewServiceContainer(
		cfg,
		pgsql.NewRepositoryProvider(dbPool),
		erp.NewFileDropSubmitter(cfg.ErpDropDir, cfg.ErpRemoteDir),
		notifier,
		cache.NewRuleListCache(cfg.RuleListCacheTTL),
	)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}

	handlers.RegisterRoutes(r, cfg, container, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Failed to run server", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
