package models

import (
	"encoding/json"
	"strings"
	"time"

	id "kycgate/pkg/domain"
	dErrors "kycgate/pkg/domain-errors"
)

// ExternalUserIDPrefix namespaces our users in the provider's id space.
const ExternalUserIDPrefix = "member_"

// ExternalUserID derives the stable provider-side identifier for a user.
func ExternalUserID(userID id.UserID) string {
	return ExternalUserIDPrefix + userID.String()
}

// Record is the local, durable view of one user's verification.
//
// Invariants:
//   - exactly one Record per UserID
//   - ProviderApplicantID is set at most once and never changes, reset included
//   - a Record without ProviderApplicantID is not_started or pending
//   - Status moves only along Status.CanTransitionTo edges, or via ApplyReset
type Record struct {
	ID                     id.RecordID     `json:"id"`
	UserID                 id.UserID       `json:"user_id"`
	ProviderApplicantID    string          `json:"provider_applicant_id,omitempty"`
	ProviderExternalUserID string          `json:"provider_external_user_id"`
	Status                 Status          `json:"status"`
	RiskLevel              RiskLevel       `json:"risk_level"`
	SubmittedAt            *time.Time      `json:"submitted_at,omitempty"`
	ReviewedAt             *time.Time      `json:"reviewed_at,omitempty"`
	ReviewResult           json.RawMessage `json:"review_result,omitempty"`
	Score                  *float64        `json:"score,omitempty"`
	RejectionReason        *string         `json:"rejection_reason,omitempty"`
	Notes                  *string         `json:"notes,omitempty"`
	LastWebhookPayload     json.RawMessage `json:"last_webhook_payload,omitempty"`
	AccessToken            string          `json:"-"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// NewRecord builds a pending record for a freshly created applicant.
func NewRecord(recordID id.RecordID, userID id.UserID, applicantID string, now time.Time) (*Record, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "record requires a user id")
	}
	if strings.TrimSpace(applicantID) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "record requires a provider applicant id")
	}
	submitted := now
	return &Record{
		ID:                     recordID,
		UserID:                 userID,
		ProviderApplicantID:    applicantID,
		ProviderExternalUserID: ExternalUserID(userID),
		Status:                 StatusPending,
		RiskLevel:              RiskLow,
		SubmittedAt:            &submitted,
		CreatedAt:              now,
		UpdatedAt:              now,
	}, nil
}

func (r *Record) HasApplicant() bool {
	return r.ProviderApplicantID != ""
}

// SetApplicant attaches the provider applicant to a record that has none.
// Setting the same id again is a no-op; a different id violates the set-once invariant.
func (r *Record) SetApplicant(applicantID string, now time.Time) error {
	if r.ProviderApplicantID == applicantID {
		return nil
	}
	if r.HasApplicant() {
		return dErrors.New(dErrors.CodeInvariantViolation, "provider applicant id is already set")
	}
	r.ProviderApplicantID = applicantID
	if r.Status == StatusNotStarted {
		r.Status = StatusPending
	}
	if r.SubmittedAt == nil {
		submitted := now
		r.SubmittedAt = &submitted
	}
	r.UpdatedAt = now
	return nil
}

// ApplyStatusUpdate applies u if the state machine allows it and reports
// whether anything was applied. ReviewedAt is stamped on every applied
// update, identical replays included. Optional fields left nil are kept.
func (r *Record) ApplyStatusUpdate(u StatusUpdate, now time.Time) bool {
	if !r.Status.CanTransitionTo(u.Status) {
		return false
	}
	r.Status = u.Status
	if u.Score != nil {
		score := *u.Score
		r.Score = &score
	}
	if len(u.ReviewResult) > 0 {
		r.ReviewResult = cloneRaw(u.ReviewResult)
	}
	if u.RejectionReason != nil {
		reason := *u.RejectionReason
		r.RejectionReason = &reason
	}
	if len(u.WebhookPayload) > 0 {
		r.LastWebhookPayload = cloneRaw(u.WebhookPayload)
	}
	reviewed := now
	r.ReviewedAt = &reviewed
	r.UpdatedAt = now
	return true
}

// ApplyReset re-opens a decision so the user can resubmit. Applicant identity
// is untouched.
func (r *Record) ApplyReset(now time.Time) error {
	if !r.HasApplicant() {
		return dErrors.New(dErrors.CodeInvariantViolation, "cannot reset a record without a provider applicant")
	}
	r.Status = StatusPending
	r.ReviewedAt = nil
	r.ReviewResult = nil
	r.Score = nil
	r.Notes = nil
	r.RejectionReason = nil
	r.UpdatedAt = now
	return nil
}

// Annotate sets admin-supplied notes and risk level. Nil leaves a field as is.
func (r *Record) Annotate(notes *string, risk *RiskLevel, now time.Time) {
	if notes != nil {
		n := *notes
		r.Notes = &n
	}
	if risk != nil {
		r.RiskLevel = *risk
	}
	r.UpdatedAt = now
}

// Clone returns a deep copy so stores never hand out shared state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.SubmittedAt = cloneTime(r.SubmittedAt)
	c.ReviewedAt = cloneTime(r.ReviewedAt)
	c.ReviewResult = cloneRaw(r.ReviewResult)
	c.LastWebhookPayload = cloneRaw(r.LastWebhookPayload)
	if r.Score != nil {
		s := *r.Score
		c.Score = &s
	}
	if r.RejectionReason != nil {
		s := *r.RejectionReason
		c.RejectionReason = &s
	}
	if r.Notes != nil {
		s := *r.Notes
		c.Notes = &s
	}
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}
