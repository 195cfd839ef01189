package cron

import (
	"context"
	"errors"
	"testing"

	"tourhub/models"
	"tourhub/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Deliver(ctx context.Context, n models.ReviewNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func newTask(t *testing.T, n models.ReviewNotification) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewReviewNotifyTask(n)
	require.NoError(t, err)
	return task
}

func TestHandleReviewNotifyTask_Delivers(t *testing.T) {
	n := models.ReviewNotification{Target: models.NotifyProvider, TargetID: "prov-1", ReviewID: "rev-1"}
	notifier := new(mockNotifier)
	notifier.On("Deliver", mock.Anything, n).Return(nil).Once()

	err := handleReviewNotifyTask(notifier, zap.NewNop())(context.Background(), newTask(t, n))
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestHandleReviewNotifyTask_PropagatesDeliveryError(t *testing.T) {
	n := models.ReviewNotification{Target: models.NotifyTourist, TargetID: "t-1", ReviewID: "rev-1"}
	notifier := new(mockNotifier)
	notifier.On("Deliver", mock.Anything, n).Return(errors.New("push gateway down"))

	err := handleReviewNotifyTask(notifier, zap.NewNop())(context.Background(), newTask(t, n))
	assert.EqualError(t, err, "push gateway down")
}

func TestHandleReviewNotifyTask_SkipsUnknownTarget(t *testing.T) {
	notifier := new(mockNotifier)
	n := models.ReviewNotification{Target: "admin", ReviewID: "rev-1"}

	err := handleReviewNotifyTask(notifier, zap.NewNop())(context.Background(), newTask(t, n))
	require.NoError(t, err)
	notifier.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestHandleReviewNotifyTask_BadPayloadSkipsRetry(t *testing.T) {
	notifier := new(mockNotifier)
	task := asynq.NewTask(tasks.TypeReviewNotify, []byte("not json"))

	err := handleReviewNotifyTask(notifier, zap.NewNop())(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
