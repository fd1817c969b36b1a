// Package events publishes verification status changes to downstream
// consumers (membership gating, notifications).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"kycgate/internal/kyc/models"
)

const TypeStatusChanged = "kyc.status_changed"

// StatusChanged is emitted after every applied status mutation.
type StatusChanged struct {
	Type        string        `json:"type"`
	UserID      string        `json:"user_id"`
	ApplicantID string        `json:"applicant_id"`
	Status      models.Status `json:"status"`
	Source      string        `json:"source"`
	Score       *float64      `json:"score,omitempty"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

// FromRecord builds the event for the record's current state.
func FromRecord(rec *models.Record, source string, at time.Time) StatusChanged {
	return StatusChanged{
		Type:        TypeStatusChanged,
		UserID:      rec.UserID.String(),
		ApplicantID: rec.ProviderApplicantID,
		Status:      rec.Status,
		Source:      source,
		Score:       rec.Score,
		OccurredAt:  at,
	}
}

// Producer is the transport the Kafka publisher writes through.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

// KafkaPublisher keys records by user id so one user's changes stay ordered
// within a partition.
type KafkaPublisher struct {
	producer Producer
}

func NewKafkaPublisher(p Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: p}
}

func (p *KafkaPublisher) PublishStatusChanged(ctx context.Context, evt StatusChanged) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}
	return p.producer.Publish(ctx, evt.UserID, value, map[string]string{"event_type": evt.Type})
}

// Recorder keeps published events in memory. Used when Kafka is disabled and
// in tests.
type Recorder struct {
	events chan StatusChanged
}

func NewRecorder(buffer int) *Recorder {
	return &Recorder{events: make(chan StatusChanged, buffer)}
}

// PublishStatusChanged drops the event when the buffer is full.
func (r *Recorder) PublishStatusChanged(_ context.Context, evt StatusChanged) error {
	select {
	case r.events <- evt:
	default:
	}
	return nil
}

// Drain returns everything recorded so far.
func (r *Recorder) Drain() []StatusChanged {
	var out []StatusChanged
	for {
		select {
		case evt := <-r.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}
