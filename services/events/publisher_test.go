package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestNewEvent_Envelope(t *testing.T) {
	event, err := NewEvent(TypeReviewSubmitted, "prov-1", map[string]string{"review_id": "r-1"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, TypeReviewSubmitted, event.EventType)
	assert.Equal(t, "prov-1", event.AggregateID)
	assert.WithinDuration(t, time.Now().UTC(), event.OccurredAt, 2*time.Second)

	var data map[string]string
	require.NoError(t, event.UnmarshalData(&data))
	assert.Equal(t, "r-1", data["review_id"])
}

func TestNewEvent_InvalidData(t *testing.T) {
	_, err := NewEvent(TypeReviewSubmitted, "prov-1", make(chan int))
	require.Error(t, err)
}

func TestKafkaPublisher_KeysByAggregate(t *testing.T) {
	w := &fakeWriter{}
	pub := &KafkaPublisher{writer: w, topic: "tourhub.reviews", logger: zap.NewNop()}

	event, err := NewEvent(TypeRatingRecalculated, "prov-9", map[string]int{"total_reviews": 2})
	require.NoError(t, err)
	require.NoError(t, pub.Publish(context.Background(), event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "prov-9", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, TypeRatingRecalculated, string(msg.Headers[0].Value))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "provider_rating.recalculated", decoded["event_type"])
	assert.Equal(t, "prov-9", decoded["aggregate_id"])
}

func TestKafkaPublisher_WrapsWriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	pub := &KafkaPublisher{writer: w, topic: "tourhub.reviews", logger: zap.NewNop()}

	event, err := NewEvent(TypeReviewModerated, "prov-1", nil)
	require.NoError(t, err)

	err = pub.Publish(context.Background(), event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tourhub.reviews")
}

func TestEmit_SwallowsFailures(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	pub := &KafkaPublisher{writer: w, topic: "t", logger: zap.NewNop()}

	assert.NotPanics(t, func() {
		Emit(context.Background(), pub, zap.NewNop(), TypeReviewResponded, "prov-1", map[string]string{})
		Emit(context.Background(), nil, zap.NewNop(), TypeReviewResponded, "prov-1", map[string]string{})
		Emit(context.Background(), NoopPublisher{}, zap.NewNop(), TypeReviewResponded, "prov-1", make(chan int))
	})
}
