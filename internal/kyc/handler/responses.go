package handler

import (
	"encoding/json"
	"time"

	"kycgate/internal/kyc/models"
)

// UserStatusResponse is what an end user sees about their own verification.
type UserStatusResponse struct {
	Status          string     `json:"status"`
	ApplicantID     string     `json:"applicant_id,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
}

func toUserStatus(v *models.View) *UserStatusResponse {
	resp := &UserStatusResponse{Status: string(v.Status)}
	if rec := v.Record; rec != nil {
		resp.ApplicantID = rec.ProviderApplicantID
		resp.SubmittedAt = rec.SubmittedAt
		resp.ReviewedAt = rec.ReviewedAt
		if rec.Status == models.StatusRejected || rec.Status == models.StatusActionRequired {
			resp.RejectionReason = rec.RejectionReason
		}
	}
	return resp
}

// AdminStatusResponse is the full record plus the provider's raw view.
type AdminStatusResponse struct {
	UserID          string          `json:"user_id"`
	Status          string          `json:"status"`
	ApplicantID     string          `json:"applicant_id,omitempty"`
	ExternalUserID  string          `json:"external_user_id,omitempty"`
	RiskLevel       string          `json:"risk_level,omitempty"`
	SubmittedAt     *time.Time      `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewed_at,omitempty"`
	Score           *float64        `json:"score,omitempty"`
	RejectionReason *string         `json:"rejection_reason,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	ReviewResult    json.RawMessage `json:"review_result,omitempty"`
	ProviderStatus  json.RawMessage `json:"provider_status,omitempty"`
	ReconcileError  string          `json:"reconcile_error,omitempty"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

func toAdminStatus(v *models.View) *AdminStatusResponse {
	resp := &AdminStatusResponse{
		UserID:         v.UserID.String(),
		Status:         string(v.Status),
		ProviderStatus: v.ProviderStatus,
		ReconcileError: v.ReconcileError,
	}
	if rec := v.Record; rec != nil {
		updated := rec.UpdatedAt
		resp.ApplicantID = rec.ProviderApplicantID
		resp.ExternalUserID = rec.ProviderExternalUserID
		resp.RiskLevel = string(rec.RiskLevel)
		resp.SubmittedAt = rec.SubmittedAt
		resp.ReviewedAt = rec.ReviewedAt
		resp.Score = rec.Score
		resp.RejectionReason = rec.RejectionReason
		resp.Notes = rec.Notes
		resp.ReviewResult = rec.ReviewResult
		resp.UpdatedAt = &updated
	}
	return resp
}

func recordView(rec *models.Record) *models.View {
	return &models.View{UserID: rec.UserID, Status: rec.Status, Record: rec}
}

// DetailsResponse adds provider documents and checks to the admin status.
type DetailsResponse struct {
	*AdminStatusResponse
	Documents json.RawMessage `json:"documents,omitempty"`
	Checks    json.RawMessage `json:"checks,omitempty"`
}

// ResetResponse mirrors the {success} result of a reset.
type ResetResponse struct {
	Success bool `json:"success"`
}
