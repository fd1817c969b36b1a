package store

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
)

type recordStore interface {
	FindByUserID(ctx context.Context, userID id.UserID) (*models.Record, error)
	FindByApplicantID(ctx context.Context, applicantID string) (*models.Record, error)
	InsertIfAbsent(ctx context.Context, rec *models.Record) (*models.Record, bool, error)
	SetApplicant(ctx context.Context, userID id.UserID, applicantID string, now time.Time) (*models.Record, error)
	SetAccessToken(ctx context.Context, userID id.UserID, token string, now time.Time) error
	ApplyStatusUpdate(ctx context.Context, u models.StatusUpdate, now time.Time) (*models.Record, bool, error)
	ResetReview(ctx context.Context, userID id.UserID, now time.Time) (*models.Record, error)
	Annotate(ctx context.Context, userID id.UserID, notes *string, risk *models.RiskLevel, now time.Time) (*models.Record, error)
}

var (
	_ recordStore = (*InMemoryStore)(nil)
	_ recordStore = (*PostgresStore)(nil)
)

// Postgres keeps microseconds; use whole seconds so round trips compare equal.
var baseTime = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func seedRecord(t *testing.T, s recordStore, applicantID string) *models.Record {
	t.Helper()
	rec, err := models.NewRecord(id.NewRecordID(), id.UserID(uuid.New()), applicantID, baseTime)
	require.NoError(t, err)
	stored, created, err := s.InsertIfAbsent(context.Background(), rec)
	require.NoError(t, err)
	require.True(t, created)
	return stored
}

// runStoreContract exercises behaviour every record store must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) recordStore) {
	ctx := context.Background()

	t.Run("missing records are sentinel not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.FindByUserID(ctx, id.UserID(uuid.New()))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = s.FindByApplicantID(ctx, "ap_missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("insert if absent keeps the first record", func(t *testing.T) {
		s := newStore(t)
		first := seedRecord(t, s, "ap_"+uuid.NewString())

		dup, err := models.NewRecord(id.NewRecordID(), first.UserID, "ap_"+uuid.NewString(), baseTime.Add(time.Minute))
		require.NoError(t, err)
		got, created, err := s.InsertIfAbsent(ctx, dup)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ProviderApplicantID, got.ProviderApplicantID)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("concurrent inserts for one user create one record", func(t *testing.T) {
		s := newStore(t)
		userID := id.UserID(uuid.New())
		var wg sync.WaitGroup
		var mu sync.Mutex
		createdCount := 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec, err := models.NewRecord(id.NewRecordID(), userID, "ap_"+uuid.NewString(), baseTime)
				if err != nil {
					return
				}
				_, created, err := s.InsertIfAbsent(ctx, rec)
				if err == nil && created {
					mu.Lock()
					createdCount++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, createdCount)
	})

	t.Run("status update by applicant id", func(t *testing.T) {
		s := newStore(t)
		rec := seedRecord(t, s, "ap_"+uuid.NewString())
		payload := json.RawMessage(`{"type":"applicantReviewed"}`)

		got, applied, err := s.ApplyStatusUpdate(ctx, models.StatusUpdate{
			ApplicantID:    rec.ProviderApplicantID,
			Status:         models.StatusApproved,
			ReviewResult:   json.RawMessage(`{"reviewAnswer":"GREEN","score":0.95}`),
			Score:          ptr(0.95),
			WebhookPayload: payload,
		}, baseTime.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, models.StatusApproved, got.Status)
		assert.Equal(t, 0.95, *got.Score)
		assert.JSONEq(t, string(payload), string(got.LastWebhookPayload))
		assert.True(t, baseTime.Add(time.Hour).Equal(*got.ReviewedAt))
	})

	t.Run("replay restamps reviewed_at and keeps business fields", func(t *testing.T) {
		s := newStore(t)
		rec := seedRecord(t, s, "ap_"+uuid.NewString())
		u := models.StatusUpdate{ApplicantID: rec.ProviderApplicantID, Status: models.StatusRejected, Score: ptr(0.1),
			ReviewResult: json.RawMessage(`{"reviewAnswer":"RED"}`)}

		first, _, err := s.ApplyStatusUpdate(ctx, u, baseTime.Add(time.Hour))
		require.NoError(t, err)
		second, applied, err := s.ApplyStatusUpdate(ctx, u, baseTime.Add(2*time.Hour))
		require.NoError(t, err)

		assert.True(t, applied)
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, *first.Score, *second.Score)
		assert.JSONEq(t, string(first.ReviewResult), string(second.ReviewResult))
		assert.True(t, baseTime.Add(2*time.Hour).Equal(*second.ReviewedAt))
	})

	t.Run("disallowed transition leaves the row untouched", func(t *testing.T) {
		s := newStore(t)
		rec := seedRecord(t, s, "ap_"+uuid.NewString())
		_, _, err := s.ApplyStatusUpdate(ctx, models.StatusUpdate{ApplicantID: rec.ProviderApplicantID, Status: models.StatusApproved, Score: ptr(0.9)}, baseTime.Add(time.Hour))
		require.NoError(t, err)

		got, applied, err := s.ApplyStatusUpdate(ctx, models.StatusUpdate{ApplicantID: rec.ProviderApplicantID, Status: models.StatusPending, Score: ptr(0.1)}, baseTime.Add(2*time.Hour))
		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, models.StatusApproved, got.Status)
		assert.Equal(t, 0.9, *got.Score)
		assert.True(t, baseTime.Add(time.Hour).Equal(*got.ReviewedAt))
	})

	t.Run("orphan applicant is not found", func(t *testing.T) {
		s := newStore(t)
		_, _, err := s.ApplyStatusUpdate(ctx, models.StatusUpdate{ApplicantID: "ap_orphan", Status: models.StatusApproved}, baseTime)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("reset clears review fields and keeps applicant", func(t *testing.T) {
		s := newStore(t)
		rec := seedRecord(t, s, "ap_"+uuid.NewString())
		_, _, err := s.ApplyStatusUpdate(ctx, models.StatusUpdate{ApplicantID: rec.ProviderApplicantID, Status: models.StatusRejected,
			Score: ptr(0.2), RejectionReason: ptr("expired document"), ReviewResult: json.RawMessage(`{"reviewAnswer":"RED"}`)}, baseTime)
		require.NoError(t, err)
		_, err = s.Annotate(ctx, rec.UserID, ptr("second look"), ptr(models.RiskMedium), baseTime)
		require.NoError(t, err)

		got, err := s.ResetReview(ctx, rec.UserID, baseTime.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, got.Status)
		assert.Equal(t, rec.ProviderApplicantID, got.ProviderApplicantID)
		assert.Equal(t, rec.ProviderExternalUserID, got.ProviderExternalUserID)
		assert.Nil(t, got.Score)
		assert.Nil(t, got.ReviewResult)
		assert.Nil(t, got.ReviewedAt)
		assert.Nil(t, got.RejectionReason)
		assert.Nil(t, got.Notes)
		assert.Equal(t, models.RiskMedium, got.RiskLevel)

		_, err = s.ResetReview(ctx, id.UserID(uuid.New()), baseTime)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("set applicant is set once", func(t *testing.T) {
		s := newStore(t)
		rec := seedRecord(t, s, "ap_"+uuid.NewString())

		same, err := s.SetApplicant(ctx, rec.UserID, rec.ProviderApplicantID, baseTime)
		require.NoError(t, err)
		assert.Equal(t, rec.ProviderApplicantID, same.ProviderApplicantID)

		_, err = s.SetApplicant(ctx, rec.UserID, "ap_other_"+uuid.NewString(), baseTime)
		assert.ErrorIs(t, err, sentinel.ErrAlreadySet)

		_, err = s.SetApplicant(ctx, id.UserID(uuid.New()), "ap_x", baseTime)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("access token is stored", func(t *testing.T) {
		s := newStore(t)
		rec := seedRecord(t, s, "ap_"+uuid.NewString())
		require.NoError(t, s.SetAccessToken(ctx, rec.UserID, "tok-2", baseTime))

		got, err := s.FindByUserID(ctx, rec.UserID)
		require.NoError(t, err)
		assert.Equal(t, "tok-2", got.AccessToken)

		assert.ErrorIs(t, s.SetAccessToken(ctx, id.UserID(uuid.New()), "tok", baseTime), sentinel.ErrNotFound)
	})

	t.Run("annotate keeps absent fields", func(t *testing.T) {
		s := newStore(t)
		rec := seedRecord(t, s, "ap_"+uuid.NewString())
		_, err := s.Annotate(ctx, rec.UserID, ptr("hello"), nil, baseTime)
		require.NoError(t, err)
		got, err := s.Annotate(ctx, rec.UserID, nil, ptr(models.RiskHigh), baseTime)
		require.NoError(t, err)
		assert.Equal(t, "hello", *got.Notes)
		assert.Equal(t, models.RiskHigh, got.RiskLevel)
	})
}
