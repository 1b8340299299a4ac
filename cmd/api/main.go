package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seojinp/point-ledger/internal/api"
	"github.com/seojinp/point-ledger/internal/config"
	"github.com/seojinp/point-ledger/internal/db"
	"github.com/seojinp/point-ledger/internal/keyed"
	"github.com/seojinp/point-ledger/internal/logger"
	"github.com/seojinp/point-ledger/internal/metrics"
	"github.com/seojinp/point-ledger/internal/repository"
	"github.com/seojinp/point-ledger/internal/repository/memory"
	"github.com/seojinp/point-ledger/internal/repository/postgres"
	"github.com/seojinp/point-ledger/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var ledger repository.Ledger
	var history repository.History
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, pool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}
		repos := postgres.NewRepositories(pool)
		ledger, history = repos.Ledger, repos.History
		log.Info("using postgres stores")
	} else {
		repos := memory.NewRepositories(
			time.Duration(cfg.LedgerMaxDelayMS)*time.Millisecond,
			time.Duration(cfg.HistoryMaxDelayMS)*time.Millisecond,
		)
		ledger, history = repos.Ledger, repos.History
		log.Info("using in-memory stores",
			"ledger_max_delay_ms", cfg.LedgerMaxDelayMS,
			"history_max_delay_ms", cfg.HistoryMaxDelayMS,
		)
	}

	pointSvc := services.NewPointService(ledger, history, keyed.NewSerializer())

	metrics.Init()
	metrics.ObserveKeyedPending(pointSvc.Keys().Pending)

	r := api.NewRouter(cfg, pointSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
