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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Cheertaboi/storefront/internal/api"
	"github.com/Cheertaboi/storefront/internal/apiclient"
	"github.com/Cheertaboi/storefront/internal/config"
	"github.com/Cheertaboi/storefront/internal/session"
	"github.com/Cheertaboi/storefront/pkg/db"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newSessionStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("session store", zap.Error(err))
	}
	defer closeStore()

	client := apiclient.New(cfg.APIBaseURL, logger,
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithHeaders(cfg.APIDefaultHeaders),
	)

	handler, err := api.NewRouter(cfg,
		apiclient.NewStorefront(client),
		session.NewProvider(store, cfg.DefaultUserID),
		logger)
	if err != nil {
		logger.Fatal("build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout(cfg.APITimeout),
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	logger.Info("starting storefront",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("session_store", cfg.SessionStore))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}

	<-idleConnsClosed
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

func newSessionStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Store, func(), error) {
	if cfg.SessionStore != "postgres" {
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	conn, err := db.NewPostgresConnection(ctx, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	store := session.NewPostgresStore(conn)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info("postgres session store ready", zap.String("host", cfg.DB.Host), zap.String("database", cfg.DB.DBName))
	if cfg.SessionTTL > 0 {
		go pruneSessions(ctx, store, cfg.SessionTTL, logger)
	}
	return store, func() { _ = conn.Close() }, nil
}

// writeTimeout covers the slowest page action: a cart load followed by a delete and a refetch,
// each bounded by the backend timeout.
func writeTimeout(apiTimeout time.Duration) time.Duration {
	if apiTimeout == 0 {
		return 0
	}
	return 15*time.Second + 3*apiTimeout
}

// pruneSessions deletes idle sessions until ctx is done.
func pruneSessions(ctx context.Context, store *session.PostgresStore, ttl time.Duration, logger *zap.Logger) {
	interval := ttl
	if interval > time.Hour {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Prune(ctx, ttl)
			if err != nil {
				logger.Warn("prune sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("pruned idle sessions", zap.Int64("count", n))
			}
		}
	}
}
