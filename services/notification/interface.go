package notification

import (
	"context"

	"tourhub/models"
)

// NotificationService hands review notifications off for asynchronous
// delivery. Dispatch never fails the caller; problems are logged.
type NotificationService interface {
	Dispatch(ctx context.Context, n models.ReviewNotification)
}

// Notifier performs the final delivery of one notification. The queue
// worker calls it for every task it pulls.
type Notifier interface {
	Deliver(ctx context.Context, n models.ReviewNotification) error
}
