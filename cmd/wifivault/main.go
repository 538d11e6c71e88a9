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

	identityadapter "github.com/ericfisherdev/wifivault/internal/adapter/driven/identity"
	qradapter "github.com/ericfisherdev/wifivault/internal/adapter/driven/qr"
	sqliteadapter "github.com/ericfisherdev/wifivault/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/wifivault/internal/adapter/driving/http"
	"github.com/ericfisherdev/wifivault/internal/application"
	"github.com/ericfisherdev/wifivault/internal/codec"
	"github.com/ericfisherdev/wifivault/internal/config"
	"github.com/ericfisherdev/wifivault/internal/domain/model"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.UsingFallbackKey() {
		slog.Warn("WIFIVAULT_SECRET_KEY is not set; using the built-in fallback key, which is unsafe for production")
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"session_ttl", cfg.SessionTTL,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on the writer connection.
	if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters and services.
	userStore := sqliteadapter.NewUserRepo(db)
	networkStore := sqliteadapter.NewNetworkRepo(db)
	provider := identityadapter.NewProvider(userStore, cfg.SessionTTL)
	passwordCodec := codec.New(cfg.SecretKey)

	authSvc := application.NewAuthService(provider)
	networkSvcs := application.NewNetworkServices(networkStore, qradapter.NewEncoder(), passwordCodec, slog.Default())

	// 6. Observe session changes for operational visibility.
	unsubscribe, err := authSvc.OnSessionChange(func(user *model.User) {
		if user != nil {
			slog.Info("session started", "user_id", user.ID)
		} else {
			slog.Info("session ended")
		}
	})
	if err != nil {
		return err
	}
	defer unsubscribe()

	// 7. Serve the API with graceful shutdown.
	handler := httphandler.NewHandler(authSvc, networkSvcs, slog.Default())
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httphandler.NewServeMux(handler, slog.Default()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
