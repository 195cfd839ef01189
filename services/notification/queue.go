package notification

import (
	"context"

	"tourhub/models"
	"tourhub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueNotificationService enqueues review:notify tasks on asynq.
type QueueNotificationService struct {
	client enqueuer
	logger *zap.Logger
}

func NewQueueNotificationService(client *asynq.Client, logger *zap.Logger) *QueueNotificationService {
	return &QueueNotificationService{client: client, logger: logger}
}

func (s *QueueNotificationService) Dispatch(ctx context.Context, n models.ReviewNotification) {
	task, opts, err := tasks.NewReviewNotifyTask(n)
	if err != nil {
		s.logger.Warn("failed to build notification task", zap.String("reviewId", n.ReviewID), zap.Error(err))
		return
	}
	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		s.logger.Warn("failed to enqueue notification",
			zap.String("target", n.Target),
			zap.String("targetId", n.TargetID),
			zap.String("reviewId", n.ReviewID),
			zap.Error(err))
		return
	}
	s.logger.Debug("notification enqueued", zap.String("taskId", info.ID), zap.String("reviewId", n.ReviewID))
}

// NoopNotificationService is used when no queue is configured.
type NoopNotificationService struct{}

func (NoopNotificationService) Dispatch(context.Context, models.ReviewNotification) {}

// LogNotifier records deliveries in the structured log. Push delivery is
// owned by the messaging service that tails these entries.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Deliver(ctx context.Context, msg models.ReviewNotification) error {
	n.logger.Info("review notification",
		zap.String("target", msg.Target),
		zap.String("targetId", msg.TargetID),
		zap.String("reviewId", msg.ReviewID),
		zap.String("title", msg.Title),
		zap.String("body", msg.Body),
		zap.Any("data", msg.Data))
	return nil
}
