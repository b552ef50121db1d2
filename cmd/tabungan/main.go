package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/alfarizqi-test/tabungan/internal/config"
	apphttp "github.com/alfarizqi-test/tabungan/internal/http"
	applog "github.com/alfarizqi-test/tabungan/internal/log"
	"github.com/alfarizqi-test/tabungan/internal/services"
	"github.com/alfarizqi-test/tabungan/internal/storage"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ledgerFile, err := storage.OpenLedgerFile(cfg.StudentsPath)
	if err != nil {
		logger.Error("Failed to open students file",
			applog.FieldError, err,
			applog.FieldPath, cfg.StudentsPath)
		os.Exit(1)
	}

	credentialFile, err := storage.OpenCredentialFile(cfg.CredentialsPath)
	if err != nil {
		logger.Error("Failed to open credentials file",
			applog.FieldError, err,
			applog.FieldPath, cfg.CredentialsPath)
		os.Exit(1)
	}

	ledgerService := services.NewLedgerService(ledgerFile)
	authService := services.NewAuthService(credentialFile)

	srv := apphttp.NewServer(":"+cfg.Port, ledgerService, authService, logger, cfg.RateLimitPerMinute)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting tabungan server",
			applog.FieldPort, cfg.Port,
			applog.FieldPath, cfg.StudentsPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
