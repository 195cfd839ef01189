package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types published by the review services.
const (
	TypeReviewSubmitted    = "review.submitted"
	TypeReviewModerated    = "review.moderated"
	TypeReviewResponded    = "review.responded"
	TypeRatingRecalculated = "provider_rating.recalculated"
)

// Event is the JSON envelope written to the reviews topic. AggregateID is
// the provider id so all events of one provider land on one partition.
type Event struct {
	EventID     string          `json:"event_id"`
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Data        json.RawMessage `json:"data"`
}

// NewEvent marshals data into a fresh envelope.
func NewEvent(eventType, aggregateID string, data any) (*Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{
		EventID:     uuid.New().String(),
		EventType:   eventType,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Data:        raw,
	}, nil
}

func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalData decodes the payload into target.
func (e *Event) UnmarshalData(target any) error {
	return json.Unmarshal(e.Data, target)
}
