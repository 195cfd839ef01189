package tasks

import (
	"encoding/json"
	"fmt"

	"tourhub/models"

	"github.com/hibiken/asynq"
)

const TypeReviewNotify = "review:notify"

func NewReviewNotifyTask(payload models.ReviewNotification) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeReviewNotify, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Queue("default")}

	return task, opts, nil
}

// ParseReviewNotifyTask decodes the payload written by NewReviewNotifyTask.
func ParseReviewNotifyTask(task *asynq.Task) (models.ReviewNotification, error) {
	var p models.ReviewNotification
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeReviewNotify, err)
	}
	return p, nil
}
