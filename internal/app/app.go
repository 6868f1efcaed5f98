package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complaint-desk/internal/config"
	"complaint-desk/internal/database"
	"complaint-desk/internal/event"
	"complaint-desk/internal/handler"
	"complaint-desk/internal/middleware"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/router"
	"complaint-desk/internal/service"
	"complaint-desk/internal/storage"
	"complaint-desk/internal/validation"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(ctx, database.PoolConfig{
		URL:               cfg.DatabaseURL,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	slog.Info("database ready")

	store := repository.NewPostgresStore(db.Pool)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens, err := service.NewTokenCodec(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}

	cleanups := []func(){db.Close}

	bus := event.NewBus()
	if cfg.EventsEnabled() {
		events, unsubscribe := bus.Subscribe()
		forwarder := event.NewKafkaForwarder(cfg.KafkaBrokers, cfg.KafkaTopic)
		forwardCtx, cancelForward := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			forwarder.Run(forwardCtx, events)
		}()
		slog.Info("forwarding events to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)

		cleanups = append([]func(){func() {
			unsubscribe()
			cancelForward()
			<-done
			if err := forwarder.Close(); err != nil {
				slog.Warn("close kafka writer", "error", err)
			}
		}}, cleanups...)
	}

	var uploader service.PhotoUploader
	if cfg.PhotoUploadsEnabled() {
		s3Uploader, err := storage.NewS3Uploader(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			runCleanups(cleanups)
			return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
		}
		uploader = s3Uploader
		slog.Info("complaint photo uploads enabled", "bucket", cfg.S3Bucket)
	}

	authService := service.NewAuthService(store, hasher, tokens, bus)
	complaintService := service.NewComplaintService(store, uploader, bus)
	userService := service.NewUserService(store, hasher, bus)

	if err := userService.EnsureAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword); err != nil {
		runCleanups(cleanups)
		return nil, fmt.Errorf("failed to seed bootstrap admin: %w", err)
	}

	appRouter := router.New(
		cfg,
		middleware.NewAuthMiddleware(authService),
		validation.New(),
		handler.NewAuthHandler(authService),
		handler.NewComplaintHandler(complaintService),
		handler.NewUserHandler(userService),
		handler.NewHealthHandler(db),
		handler.NewDocsHandler(),
	)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return &App{
		server:       server,
		db:           db,
		cleanupFuncs: cleanups,
	}, nil
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		runCleanups(a.cleanupFuncs)
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	runCleanups(a.cleanupFuncs)
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}

func runCleanups(cleanups []func()) {
	for _, cleanup := range cleanups {
		cleanup()
	}
}
