package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"collector_portal_backend/internal/ebay"
	"collector_portal_backend/internal/scheduler"
	"collector_portal_backend/internal/wishlist"
	"collector_portal_backend/platform/config"
	"collector_portal_backend/platform/db"
	"collector_portal_backend/platform/logger"
	"collector_portal_backend/platform/throttle"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	pacer := throttle.NewIntervalPacer(cfg.GetEbayCallSpacing())
	ebayClient := ebay.NewClient(cfg.GetEbayAppID(), pacer, log)

	wishlistModule := wishlist.NewModule(pool, ebayClient, log)

	worker, err := scheduler.NewWorker(cfg, wishlistModule.Monitor(), log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return enqueueLoop(gctx, client, cfg.GetMonitorInterval(), log)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("scheduler stopped", "error", err)
	}
}

// enqueueLoop schedules a full monitoring batch on every tick. The first
// batch runs immediately on startup.
func enqueueLoop(ctx context.Context, client scheduler.MonitorScheduler, interval time.Duration, log *logger.Logger) error {
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	enqueue := func() {
		if err := client.EnqueueMonitorRun(ctx, scheduler.WishlistMonitorRunPayload{}); err != nil {
			log.Error("failed to enqueue monitor run", "error", err)
			return
		}
		log.Info("monitor run enqueued")
	}

	enqueue()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			enqueue()
		}
	}
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
