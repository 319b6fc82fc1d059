package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"leadboard_backend/internal/leads/service"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/logger"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  *service.Service
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, leads *service.Service, log *logger.Logger) (*Worker, error) {
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
		server: server,
		mux:    mux,
		leads:  leads,
		log:    log,
	}

	mux.HandleFunc(TaskSnapshotRefresh, w.handleSnapshotRefresh)

	return w, nil
}

func (w *Worker) handleSnapshotRefresh(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSnapshotRefreshPayload(task)
	if err != nil {
		return err
	}

	resp, err := w.leads.Refresh(ctx)
	if err != nil {
		w.log.Error("snapshot refresh failed", "error", err, "reason", payload.Reason)
		return err
	}

	w.log.Info("snapshot refreshed", "count", resp.Count, "reason", payload.Reason)
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
