package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-notifier/internal/adapters/line"
	mem "pet-care-notifier/internal/adapters/storage/memory"
	pg "pet-care-notifier/internal/adapters/storage/postgres"
	lite "pet-care-notifier/internal/adapters/storage/sqlite"
	"pet-care-notifier/internal/adapters/triggers/pgnotify"
	"pet-care-notifier/internal/config"
	"pet-care-notifier/internal/domain/broadcast"
	"pet-care-notifier/internal/domain/notifications"
	"pet-care-notifier/internal/domain/render"
	"pet-care-notifier/internal/domain/subscribers"
	"pet-care-notifier/internal/platform/logger"
	"pet-care-notifier/internal/router"
)

// @title Pet Care Notifier API
// @version 1.0
// @description Webhook de LINE, aviso de paseo y triggers del event store.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{Format: logger.FormatText}).Error("invalid config", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openSubscriberRepo(ctx, cfg, log)
	if err != nil {
		log.Error("subscriber store unavailable", map[string]any{"err": err})
		os.Exit(1)
	}
	defer closeRepo()

	lineClient, err := line.NewClient(line.Config{
		BaseURL:     cfg.LineAPIBaseURL,
		AccessToken: cfg.LineChannelAccessToken,
		Timeout:     cfg.LineTimeout,
		RatePerSec:  cfg.LineRatePerSec,
	})
	if err != nil {
		log.Error("line client", map[string]any{"err": err})
		os.Exit(1)
	}

	loc, _ := time.LoadLocation(cfg.Timezone)

	subsSvc := subscribers.NewService(repo)
	dispatcher := broadcast.NewDispatcher(subsSvc, lineClient, broadcast.Options{
		ChunkSize: cfg.MulticastChunkSize,
		Log:       log,
	})
	notifSvc := notifications.NewService(render.New(loc), dispatcher, log)

	if cfg.ListenDSN != "" {
		l := pgnotify.New(notifSvc, pgnotify.Options{DSN: cfg.ListenDSN, Log: log})
		go func() { _ = l.Run(ctx) }()
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: router.NewRouter(router.Options{
			Subscribers:   subsSvc,
			Notifications: notifSvc,
			Webhook: subscribers.WebhookOptions{
				Profiles:    lineClient,
				Verifier:    line.NewSignatureVerifier(cfg.LineChannelSecret),
				Concurrency: cfg.WebhookConcurrency,
			},
			TriggerToken: cfg.TriggerToken,
			Log:          log,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Addr, "trigger_auth": cfg.TriggerToken != ""})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}

// openSubscriberRepo elige el backend: Postgres si DB_DSN, SQLite si SQLITE_PATH, si no memoria.
func openSubscriberRepo(ctx context.Context, cfg config.Config, log logger.Logger) (subscribers.Repository, func(), error) {
	switch {
	case cfg.DBDSN != "":
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			return nil, nil, err
		}
		repo := pg.NewSubscribersRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("subscriber store", map[string]any{"backend": "postgres"})
		return repo, closer(db), nil

	case cfg.SQLitePath != "":
		db, err := lite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("subscriber store", map[string]any{"backend": "sqlite", "path": cfg.SQLitePath})
		return lite.NewSubscribersRepo(db), closer(db), nil

	default:
		log.Warn("subscriber store is in-memory; registrations are lost on restart", nil)
		return mem.NewSubscriberRepo(), func() {}, nil
	}
}

func closer(db *sql.DB) func() {
	return func() { _ = db.Close() }
}
