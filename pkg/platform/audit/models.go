package audit

import (
	"context"
	"time"

	id "kycgate/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose so stores can
// apply different retention.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: a KYC
	// decision landing on a member, or an admin re-opening one.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers rejected webhook signatures and similar.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity such as token issuance.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category    EventCategory
	Timestamp   time.Time
	UserID      id.UserID
	ApplicantID string
	Action      string
	Decision    string
	Reason      string
	RequestID   string
	// ActorID tracks who performed the action: "admin", "user", "webhook",
	// "reconciliation".
	ActorID string
	Device  string
}

type AuditEvent string

const (
	EventVerificationInitiated AuditEvent = "verification_initiated"
	EventAccessTokenIssued     AuditEvent = "access_token_issued"
	EventStatusUpdated         AuditEvent = "verification_status_updated"
	EventTransitionRejected    AuditEvent = "verification_transition_rejected"
	EventVerificationReset     AuditEvent = "verification_reset"
	EventVerificationAnnotated AuditEvent = "verification_annotated"
	EventWebhookRejected       AuditEvent = "webhook_signature_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventVerificationInitiated: CategoryCompliance,
	EventStatusUpdated:         CategoryCompliance,
	EventVerificationReset:     CategoryCompliance,
	EventVerificationAnnotated: CategoryCompliance,

	EventWebhookRejected:    CategorySecurity,
	EventTransitionRejected: CategorySecurity,

	EventAccessTokenIssued: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
