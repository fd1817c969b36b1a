package store

import (
	"context"
	"sync"
	"time"

	"kycgate/internal/kyc/models"
	id "kycgate/pkg/domain"
	"kycgate/pkg/platform/sentinel"
)

// InMemoryStore keeps verification records in process. Every mutation runs
// under one lock, so same-applicant writers serialize.
type InMemoryStore struct {
	mu          sync.RWMutex
	byUser      map[id.UserID]*models.Record
	byApplicant map[string]id.UserID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byUser:      make(map[id.UserID]*models.Record),
		byApplicant: make(map[string]id.UserID),
	}
}

func (s *InMemoryStore) FindByUserID(_ context.Context, userID id.UserID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byUser[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *InMemoryStore) FindByApplicantID(_ context.Context, applicantID string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.byApplicant[applicantID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.byUser[userID].Clone(), nil
}

// InsertIfAbsent stores rec unless the user already has a record, returning
// whichever record is now stored and whether rec was inserted.
func (s *InMemoryStore) InsertIfAbsent(_ context.Context, rec *models.Record) (*models.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byUser[rec.UserID]; ok {
		return existing.Clone(), false, nil
	}
	if rec.HasApplicant() {
		if _, taken := s.byApplicant[rec.ProviderApplicantID]; taken {
			return nil, false, sentinel.ErrConflict
		}
		s.byApplicant[rec.ProviderApplicantID] = rec.UserID
	}
	s.byUser[rec.UserID] = rec.Clone()
	return rec.Clone(), true, nil
}

func (s *InMemoryStore) SetApplicant(_ context.Context, userID id.UserID, applicantID string, now time.Time) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byUser[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if owner, taken := s.byApplicant[applicantID]; taken && owner != userID {
		return nil, sentinel.ErrConflict
	}
	if err := rec.SetApplicant(applicantID, now); err != nil {
		return nil, sentinel.ErrAlreadySet
	}
	s.byApplicant[applicantID] = userID
	return rec.Clone(), nil
}

func (s *InMemoryStore) SetAccessToken(_ context.Context, userID id.UserID, token string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byUser[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	rec.AccessToken = token
	rec.UpdatedAt = now
	return nil
}

// ApplyStatusUpdate applies u to the record owning u.ApplicantID. It returns
// the record after the attempt and whether the state machine allowed it.
func (s *InMemoryStore) ApplyStatusUpdate(_ context.Context, u models.StatusUpdate, now time.Time) (*models.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.byApplicant[u.ApplicantID]
	if !ok {
		return nil, false, sentinel.ErrNotFound
	}
	rec := s.byUser[userID]
	applied := rec.ApplyStatusUpdate(u, now)
	return rec.Clone(), applied, nil
}

func (s *InMemoryStore) ResetReview(_ context.Context, userID id.UserID, now time.Time) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byUser[userID]
	if !ok || !rec.HasApplicant() {
		return nil, sentinel.ErrNotFound
	}
	if err := rec.ApplyReset(now); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

func (s *InMemoryStore) Annotate(_ context.Context, userID id.UserID, notes *string, risk *models.RiskLevel, now time.Time) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byUser[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	rec.Annotate(notes, risk, now)
	return rec.Clone(), nil
}
