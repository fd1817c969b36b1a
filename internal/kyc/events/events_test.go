package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
)

type captureProducer struct {
	key     string
	value   []byte
	headers map[string]string
	err     error
}

func (c *captureProducer) Publish(_ context.Context, key string, value []byte, headers map[string]string) error {
	c.key, c.value, c.headers = key, value, headers
	return c.err
}

func TestKafkaPublisherKeysByUser(t *testing.T) {
	at := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	rec, err := models.NewRecord(id.NewRecordID(), id.UserID(uuid.New()), "ap_1", at)
	require.NoError(t, err)
	score := 0.95
	rec.Status, rec.Score = models.StatusApproved, &score

	prod := &captureProducer{}
	require.NoError(t, NewKafkaPublisher(prod).PublishStatusChanged(context.Background(), FromRecord(rec, models.SourceWebhook, at)))

	assert.Equal(t, rec.UserID.String(), prod.key)
	assert.Equal(t, TypeStatusChanged, prod.headers["event_type"])
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(prod.value, &decoded))
	assert.Equal(t, "approved", decoded["status"])
	assert.Equal(t, "ap_1", decoded["applicant_id"])
	assert.Equal(t, 0.95, decoded["score"])
}

func TestKafkaPublisherPropagatesErrors(t *testing.T) {
	prod := &captureProducer{err: errors.New("broker down")}
	err := NewKafkaPublisher(prod).PublishStatusChanged(context.Background(), StatusChanged{UserID: "u"})
	assert.EqualError(t, err, "broker down")
}

func TestRecorderDropsWhenFull(t *testing.T) {
	r := NewRecorder(1)
	require.NoError(t, r.PublishStatusChanged(context.Background(), StatusChanged{UserID: "a"}))
	require.NoError(t, r.PublishStatusChanged(context.Background(), StatusChanged{UserID: "b"}))

	got := r.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].UserID)
	assert.Empty(t, r.Drain())
}
