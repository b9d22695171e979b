package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/account-ledger/internal/adapter/events"
	"github.com/api-sage/account-ledger/internal/adapter/http/controller"
	"github.com/api-sage/account-ledger/internal/adapter/http/router"
	"github.com/api-sage/account-ledger/internal/adapter/store"
	storepg "github.com/api-sage/account-ledger/internal/adapter/store/postgres"
	"github.com/api-sage/account-ledger/internal/config"
	"github.com/api-sage/account-ledger/internal/ledger"
	"github.com/api-sage/account-ledger/internal/logger"
	"github.com/api-sage/account-ledger/internal/usecase/services"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.IsDevelopment()); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting account-ledger service", logger.Fields{
		"port":        cfg.ServerPort,
		"environment": cfg.Environment,
	})

	engine := ledger.New()

	// The snapshot store is an optional collaborator: without a DSN the
	// ledger simply starts empty and state lives in memory only.
	var snapshots store.Store
	if cfg.SnapshotDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		pgStore, err := storepg.Open(ctx, cfg.SnapshotDSN)
		cancel()
		if err != nil {
			log.Fatalf("open snapshot store: %v", err)
		}
		snapshots = pgStore
		defer snapshots.Close()

		restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
		snapshot, found, err := snapshots.Load(restoreCtx)
		cancelRestore()
		if err != nil {
			log.Fatalf("load snapshot: %v", err)
		}
		if found {
			if err := engine.Restore(snapshot); err != nil {
				log.Fatalf("restore snapshot: %v", err)
			}
			logger.Info("ledger restored from snapshot", logger.Fields{
				"takenAt":  snapshot.TakenAt,
				"accounts": len(snapshot.Accounts),
			})
		}
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		producer, err := events.NewEventProducer(cfg.RabbitMQURL, cfg.EventExchange)
		if err != nil {
			logger.Error("event producer unavailable, continuing without events", err, nil)
		} else {
			publisher = producer
			defer producer.Close()
			logger.Info("event producer connected", logger.Fields{
				"exchange": cfg.EventExchange,
			})
		}
	}

	accountService := services.NewAccountService(engine, publisher)
	transferService := services.NewTransferService(engine, publisher)

	handler := router.New(
		controller.NewAccountController(accountService),
		controller.NewTransferController(transferService),
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", logger.Fields{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server stopped unexpectedly: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutdown started", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", err, nil)
	}

	if snapshots != nil {
		if err := snapshots.Save(ctx, engine.Snapshot()); err != nil {
			logger.Error("final snapshot save failed", err, nil)
		} else {
			logger.Info("final snapshot saved", nil)
		}
	}

	logger.Info("shutdown complete", nil)
}
