package cron

import (
	"context"
	"log"
	"time"

	"queuepoint/config"
	"queuepoint/services/directory"

	"github.com/hibiken/asynq"
)

const TypeDirectoryRefresh = "directory:refresh"

// InitDirectoryRefreshWorker runs the async worker in background. It keeps
// the business directory cache warm so browsing never waits on the upstream
// round trip.
func InitDirectoryRefreshWorker(dirSvc directory.Service) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeDirectoryRefresh, handleDirectoryRefresh(dirSvc))

	interval := config.AppConfig.DirectoryRefreshInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every "+interval.String(), asynq.NewTask(TypeDirectoryRefresh, nil)); err != nil {
		log.Printf("[DirectoryWorker] Failed to register refresh schedule: %v", err)
		return
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[DirectoryWorker] Scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[DirectoryWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DirectoryWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Println("[DirectoryWorker] Max retry attempts reached, giving up")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleDirectoryRefresh(dirSvc directory.Service) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		if err := dirSvc.Refresh(ctx); err != nil {
			log.Printf("[DirectoryWorker] Refresh failed: %v", err)
			return err
		}
		return nil
	}
}
