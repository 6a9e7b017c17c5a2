package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"imogest_backend/internal/events"
	"imogest_backend/internal/financing"
	apphttp "imogest_backend/internal/http"
	"imogest_backend/internal/http/router"
	"imogest_backend/internal/leads"
	"imogest_backend/internal/matching"
	"imogest_backend/internal/notification"
	"imogest_backend/internal/notification/email"
	"imogest_backend/internal/notification/whatsapp"
	"imogest_backend/internal/properties"
	"imogest_backend/internal/scheduler"
	"imogest_backend/internal/storage"
	"imogest_backend/internal/tasks"
	"imogest_backend/platform/config"
	"imogest_backend/platform/db"
	"imogest_backend/platform/logger"
	"imogest_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	eventBus := events.NewInMemoryBus(log)

	matchCache := initMatchCache(cfg, log)
	if matchCache != nil {
		defer matchCache.Close()
	}

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	val := validator.New()

	objectStore, photoBucket := initObjectStore(ctx, cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	notificationSvc := initNotifications(cfg, log)
	notificationSvc.Subscribe(eventBus)

	leadsModule := leads.NewModule(pool, eventBus, val, log)
	propertiesModule := properties.NewModule(pool, objectStore, photoBucket, eventBus, val, log)
	matchingModule := matching.NewModule(leadsModule.Repository(), propertiesModule.Repository(), matchCache, log)
	financingModule := financing.NewModule(val)
	tasksModule := tasks.NewModule(pool, reminderScheduler, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			propertiesModule,
			matchingModule,
			financingModule,
			tasksModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initMatchCache(cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; match caching disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("invalid REDIS_URL; match caching disabled", "error", err)
		return nil
	}
	return redis.NewClient(opt)
}

func initReminderScheduler(cfg config.RedisConfig, log *logger.Logger) (scheduler.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; task reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func initObjectStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.ObjectStore, string) {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MinIO not configured; property photos disabled")
		return nil, ""
	}

	store, err := storage.NewMinIOStore(cfg)
	if err != nil {
		log.Error("failed to initialize object storage", "error", err)
		panic("failed to initialize object storage: " + err.Error())
	}

	bucket := cfg.GetMinioBucketPropertyPhotos()
	if err := withRetry(ctx, log, "ensure photo bucket", 5, 2*time.Second, func() error {
		return store.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure photo bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure photo bucket exists: " + err.Error())
	}

	log.Info("object storage initialized", "photoBucket", bucket)
	return store, bucket
}

func initNotifications(cfg *config.Config, log *logger.Logger) *notification.Service {
	var sender email.Sender
	if smtp := email.NewSMTPSender(cfg); smtp != nil {
		sender = smtp
	}
	waClient := whatsapp.NewClient(cfg, log)
	return notification.New(sender, waClient, cfg, log)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
