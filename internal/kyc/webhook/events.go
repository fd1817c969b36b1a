// Package webhook receives signed provider notifications and turns them into
// status updates.
package webhook

import (
	"encoding/json"

	"kycgate/internal/kyc/provider"
)

// Provider event type names.
const (
	TypeApplicantReviewed       = "applicantReviewed"
	TypeApplicantPending        = "applicantPending"
	TypeApplicantOnHold         = "applicantOnHold"
	TypeApplicantCreated        = "applicantCreated"
	TypeApplicantActionPending  = "applicantActionPending"
	TypeApplicantActionReviewed = "applicantActionReviewed"
)

// Envelope holds the fields common to every notification.
type Envelope struct {
	Type           string                 `json:"type"`
	ApplicantID    string                 `json:"applicantId"`
	InspectionID   string                 `json:"inspectionId,omitempty"`
	ExternalUserID string                 `json:"externalUserId,omitempty"`
	ReviewStatus   string                 `json:"reviewStatus,omitempty"`
	ReviewResult   *provider.ReviewResult `json:"reviewResult,omitempty"`

	// ResultRaw is reviewResult exactly as received; Raw is the whole body.
	ResultRaw json.RawMessage `json:"-"`
	Raw       json.RawMessage `json:"-"`
}

// Event is the closed set of notifications. Adding a kind means adding a
// Visitor method, so every dispatcher has to handle it before it compiles.
type Event interface {
	Envelope() Envelope
	Accept(v Visitor) error
	sealed()
}

// Visitor handles each event kind.
type Visitor interface {
	VisitApplicantReviewed(e ApplicantReviewed) error
	VisitApplicantPending(e ApplicantPending) error
	VisitApplicantOnHold(e ApplicantOnHold) error
	VisitApplicantCreated(e ApplicantCreated) error
	VisitApplicantActionPending(e ApplicantActionPending) error
	VisitApplicantActionReviewed(e ApplicantActionReviewed) error
	VisitUnknown(e UnknownEvent) error
}

type base struct{ env Envelope }

func (b base) Envelope() Envelope { return b.env }
func (base) sealed()              {}

// ApplicantReviewed carries a final or interim review decision.
type ApplicantReviewed struct{ base }

func (e ApplicantReviewed) Accept(v Visitor) error { return v.VisitApplicantReviewed(e) }

// ApplicantPending means documents were submitted and await review.
type ApplicantPending struct{ base }

func (e ApplicantPending) Accept(v Visitor) error { return v.VisitApplicantPending(e) }

// ApplicantOnHold means the review is paused at the provider.
type ApplicantOnHold struct{ base }

func (e ApplicantOnHold) Accept(v Visitor) error { return v.VisitApplicantOnHold(e) }

// ApplicantCreated confirms an applicant we already created at initiation.
type ApplicantCreated struct{ base }

func (e ApplicantCreated) Accept(v Visitor) error { return v.VisitApplicantCreated(e) }

// ApplicantActionPending asks the user to act (resubmit, complete a step).
type ApplicantActionPending struct{ base }

func (e ApplicantActionPending) Accept(v Visitor) error { return v.VisitApplicantActionPending(e) }

// ApplicantActionReviewed reports the outcome of a user action.
type ApplicantActionReviewed struct{ base }

func (e ApplicantActionReviewed) Accept(v Visitor) error { return v.VisitApplicantActionReviewed(e) }

// UnknownEvent is any type this service does not act on.
type UnknownEvent struct{ base }

func (e UnknownEvent) Accept(v Visitor) error { return v.VisitUnknown(e) }
