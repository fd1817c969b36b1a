package models

import (
	"encoding/json"
	"strings"

	id "kycgate/pkg/domain"
)

// Update sources recorded in metrics and audit.
const (
	SourceWebhook        = "webhook"
	SourceReconciliation = "reconciliation"
)

// StatusUpdate is the single input shape for every status mutation. Optional
// fields left nil or empty leave the stored value unchanged.
type StatusUpdate struct {
	ApplicantID     string
	Status          Status
	ReviewResult    json.RawMessage
	Score           *float64
	RejectionReason *string
	WebhookPayload  json.RawMessage
	Source          string
}

// PersonalInfo optionally overrides profile fields sent to the provider when
// an applicant is created.
type PersonalInfo struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Country     string `json:"country,omitempty"`
	DateOfBirth string `json:"dob,omitempty"`
}

// User is the slice of the user directory this module needs.
type User struct {
	ID        id.UserID
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// MergeApplicantInfo seeds applicant fields from the profile, then lets each
// non-empty field of override win.
func MergeApplicantInfo(user *User, override *PersonalInfo) PersonalInfo {
	merged := PersonalInfo{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}
	if override == nil {
		return merged
	}
	pick := func(dst *string, v string) {
		if s := strings.TrimSpace(v); s != "" {
			*dst = s
		}
	}
	pick(&merged.FirstName, override.FirstName)
	pick(&merged.LastName, override.LastName)
	pick(&merged.Email, override.Email)
	pick(&merged.Phone, override.Phone)
	pick(&merged.Country, override.Country)
	pick(&merged.DateOfBirth, override.DateOfBirth)
	return merged
}

// InitiateResult is what a client needs to launch the provider's SDK.
type InitiateResult struct {
	AccessToken string `json:"access_token"`
	ApplicantID string `json:"applicant_id"`
}

// View is the merged status returned by GetStatus. Record is nil when the
// user has never started verification.
type View struct {
	UserID         id.UserID       `json:"user_id"`
	Status         Status          `json:"status"`
	Record         *Record         `json:"record,omitempty"`
	ProviderStatus json.RawMessage `json:"provider_status,omitempty"`
	ReconcileError string          `json:"reconcile_error,omitempty"`
}

// NotStartedView is returned for users without a record.
func NotStartedView(userID id.UserID) *View {
	return &View{UserID: userID, Status: StatusNotStarted}
}

// Details is the admin view: status plus provider documents and checks.
type Details struct {
	View      *View           `json:"view"`
	Documents json.RawMessage `json:"documents,omitempty"`
	Checks    json.RawMessage `json:"checks,omitempty"`
}
