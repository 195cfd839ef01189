package tasks

import (
	"testing"

	"tourhub/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewNotifyTask_RoundTrip(t *testing.T) {
	in := models.ReviewNotification{
		Target:   models.NotifyProvider,
		TargetID: "prov-1",
		ReviewID: "rev-1",
		Title:    "New review",
		Body:     "A tourist reviewed Lake Tour",
		Data:     map[string]string{"status": "pending"},
	}

	task, opts, err := NewReviewNotifyTask(in)
	require.NoError(t, err)
	assert.Equal(t, TypeReviewNotify, task.Type())
	assert.Len(t, opts, 2)

	out, err := ParseReviewNotifyTask(task)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParseReviewNotifyTask_BadPayload(t *testing.T) {
	_, err := ParseReviewNotifyTask(asynq.NewTask(TypeReviewNotify, []byte("{")))
	require.Error(t, err)
}
