package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"imogest_backend/internal/events"
	"imogest_backend/internal/notification"
	"imogest_backend/internal/notification/email"
	"imogest_backend/internal/notification/whatsapp"
	"imogest_backend/internal/scheduler"
	"imogest_backend/platform/config"
	"imogest_backend/platform/db"
	"imogest_backend/platform/logger"
)

// The worker consumes the reminder queue and delivers the resulting
// notifications. It shares the API's database and event bus wiring but serves
// no HTTP traffic.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting reminder worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	var sender email.Sender
	if smtp := email.NewSMTPSender(cfg); smtp != nil {
		sender = smtp
	}
	waClient := whatsapp.NewClient(cfg, log)
	notification.New(sender, waClient, cfg, log).Subscribe(eventBus)

	worker, err := scheduler.NewWorker(cfg, pool, eventBus, log)
	if err != nil {
		log.Error("failed to initialize reminder worker", "error", err)
		panic("failed to initialize reminder worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("reminder worker stopped")
}
