// @title Conference Site API
// @version 1.0
// @description Read-only JSON view of the conference speakers and important dates.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"confsite/config"
	"confsite/internal/adapters/auth"
	"confsite/internal/adapters/render"
	"confsite/internal/adapters/storage"
	"confsite/internal/dbx"
	deliveryhttp "confsite/internal/delivery/http"
	"confsite/internal/delivery/http/controllers"
	"confsite/internal/delivery/http/helpers"
	"confsite/internal/delivery/http/middleware"
	"confsite/internal/repository/sqldb"
	"confsite/internal/services"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.SecretKey == config.DefaultSecretKey {
		logger.Warn("SECRET_KEY is not set; using the development default")
	}

	db, dialect, err := sqldb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := sqldb.Migrate(ctx, db, dialect); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("database ready", "dialect", dialect)

	handler, err := newHandler(ctx, cfg, logger, db, sqldb.NewManager(dialect))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr, "env", cfg.Environment, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newHandler wires repositories, services and controllers into the logged router.
// A failure to seed the admin account is logged and startup continues.
func newHandler(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB, repos *sqldb.Manager) (http.Handler, error) {
	images, err := storage.NewImageStore(ctx, storage.Config{
		Backend:   cfg.StorageBackend,
		UploadDir: cfg.UploadDir,
		S3: storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
			PublicURL:       cfg.S3PublicURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}

	tokens := auth.NewSessionTokens(cfg.SecretKey)
	authSvc := services.NewAuthService(repos.Users(db), dbx.Runner{DB: db}, repos.Users, auth.NewBcryptHasher(auth.DefaultBcryptCost), tokens, cfg.SessionTTL)
	speakerSvc := services.NewSpeakerService(repos.Speakers(db), images, cfg.DefaultImage)
	dateSvc := services.NewImportantDateService(repos.ImportantDates(db))

	created, err := authSvc.EnsureDefaultAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	switch {
	case err != nil:
		logger.Error("could not seed admin account", "username", cfg.AdminUsername, "err", err)
	case created:
		logger.Warn("created default admin account; change its password", "username", cfg.AdminUsername)
	}

	uploadsURL, _ := deliveryhttp.UploadsURL(cfg.StaticDir, cfg.UploadDir)
	renderer, err := render.New(uploadsURL)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	flashes := helpers.NewFlasher(cfg.SecretKey, cfg.IsProduction())

	mux := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Public:         controllers.NewPublicController(logger, speakerSvc, dateSvc, renderer, flashes),
		Auth:           controllers.NewAuthController(logger, authSvc, renderer, flashes, cfg.SessionTTL, cfg.IsProduction()),
		Admin:          controllers.NewAdminController(logger, speakerSvc, dateSvc, renderer, flashes, cfg.MaxUploadBytes),
		Health:         controllers.NewHealthController(logger, db),
		RequireSession: middleware.RequireSession(tokens, authSvc, logger),
		CORSOrigins:    cfg.CORSAllowedOrigins,
		StaticDir:      cfg.StaticDir,
		UploadDir:      cfg.UploadDir,
	})
	return middleware.LoggingMiddleware(logger, mux), nil
}
