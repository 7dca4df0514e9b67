package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event is a domain event announcing a completed write
type Event struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	EventType     string          `json:"event_type"`
	Data          json.RawMessage `json:"data"`
	Timestamp     time.Time       `json:"timestamp"`
}

// NewEvent wraps data in an Event envelope with a fresh id
func NewEvent(aggregateID, aggregateType, eventType string, data any) (Event, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:            uuid.New().String(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Data:          jsonData,
		Timestamp:     time.Now().UTC(),
	}, nil
}

// Publisher announces events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
}
