package cron

import (
	"context"
	"time"

	"tourhub/config"
	"tourhub/models"
	"tourhub/services/notification"
	"tourhub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitReviewNotifyWorker runs the asynq worker for review notifications in
// the background. The caller shuts the returned server down on exit.
func InitReviewNotifyWorker(cfg *config.Config, notifier notification.Notifier, logger *zap.Logger) *asynq.Server {
	redisOpts := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeReviewNotify, handleReviewNotifyTask(notifier, logger))

	go func() {
		logger.Info("Starting review notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Failed to start notification worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxAttempts),
				zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Notification worker gave up; notifications stay queued")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleReviewNotifyTask(notifier notification.Notifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseReviewNotifyTask(task)
		if err != nil {
			logger.Error("Invalid notification payload", zap.Error(err))
			// A malformed payload will never decode; do not retry it.
			return asynq.SkipRetry
		}

		switch p.Target {
		case models.NotifyTourist, models.NotifyProvider:
		default:
			logger.Warn("Unknown notification target", zap.String("target", p.Target))
			return nil
		}

		if err := notifier.Deliver(ctx, p); err != nil {
			logger.Warn("Failed to deliver notification",
				zap.String("reviewId", p.ReviewID),
				zap.Error(err))
			return err
		}
		return nil
	}
}
