package scheduler

import (
	"context"
	"fmt"
	"strings"

	wishlistservice "collector_portal_backend/internal/wishlist/service"
	"collector_portal_backend/platform/config"
	"collector_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Worker consumes monitoring tasks and runs the wishlist monitor batch.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	monitor *wishlistservice.Monitor
	log     *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, monitor *wishlistservice.Monitor, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:  server,
		mux:     mux,
		monitor: monitor,
		log:     log,
	}

	mux.HandleFunc(TaskWishlistMonitorRun, w.handleMonitorRun)

	return w, nil
}

func (w *Worker) handleMonitorRun(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseWishlistMonitorRunPayload(task)
	if err != nil {
		return err
	}

	var itemID *string
	if strings.TrimSpace(payload.WishlistItemID) != "" {
		itemID = &payload.WishlistItemID
	}

	report, err := w.monitor.RunBatch(ctx, itemID)
	if err != nil {
		return err
	}

	w.log.Info("scheduled monitor run complete",
		"items_processed", report.ItemsProcessed,
		"new_listings", report.TotalNewListings,
	)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
