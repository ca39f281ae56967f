//	@title			Sharedrop API
//	@version		1.0
//	@description	File-sharing relay: presigned uploads, share codes and expiring download links.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin JWT (role=admin). Format: **Bearer {token}**

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

	"github.com/sharedrop/service/internal/config"
	"github.com/sharedrop/service/internal/db"
	"github.com/sharedrop/service/internal/share"
	"github.com/sharedrop/service/internal/storage"

	_ "github.com/sharedrop/service/docs/swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := config.SetupLogger(cfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	objects, err := storage.NewMinioStorage(storage.Options{
		Endpoint:  cfg.StorageEndpoint,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
		Bucket:    cfg.StorageBucket,
		Region:    cfg.StorageRegion,
		UseSSL:    cfg.StorageUseSSL,
	})
	if err != nil {
		return err
	}
	if !cfg.IsProduction() {
		if err := objects.EnsureBucket(ctx); err != nil {
			logger.Warn("bucket bootstrap failed", slog.String("error", err.Error()))
		}
	}

	if cfg.IsProduction() && cfg.IntentSecret == config.DefaultIntentSecret {
		logger.Warn("INTENT_SECRET is the development default")
	}

	// Wire dependencies: store → issuer/registry → handler
	intents := share.NewIntentSigner(cfg.IntentSecret, cfg.IntentTTL)
	issuer := share.NewIssuer(store, objects, share.NewHexGenerator(cfg.CodeLength), intents, cfg.UploadURLTTL)
	registry := share.NewRegistry(store, objects, intents, cfg.Expiry(), cfg.DownloadURLTTL)

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: newRouter(routerDeps{
			logger:         logger,
			shares:         share.NewHandler(issuer, registry),
			prober:         objects,
			bucket:         cfg.StorageBucket,
			requestTimeout: cfg.RequestTimeout,
			adminSecret:    cfg.AdminJWTSecret,
		}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("backend", cfg.MetadataBackend),
			slog.Int("expiry_minutes", cfg.ExpiryMinutes),
		)
		logger.Info("swagger UI at http://localhost:" + cfg.Port + "/swagger/")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	logger.Info("shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

// openStore builds the metadata store selected by METADATA_BACKEND.
func openStore(ctx context.Context, cfg *config.Config) (share.Store, func(), error) {
	switch cfg.MetadataBackend {
	case config.BackendRedis:
		rs, err := share.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	default:
		if _, err := db.Migrate(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{
			MaxConns:        cfg.DatabaseMaxConns,
			MaxConnLifetime: cfg.DatabaseMaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return share.NewPostgresStore(pool), pool.Close, nil
	}
}
