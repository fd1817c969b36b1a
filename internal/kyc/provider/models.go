package provider

import (
	"encoding/json"
	"strings"
	"time"
)

// FixedInfo is applicant data we assert rather than extract from documents.
type FixedInfo struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Country   string `json:"country,omitempty"`
	DOB       string `json:"dob,omitempty"`
}

// CreateApplicantRequest is the body of POST /resources/applicants.
type CreateApplicantRequest struct {
	ExternalUserID string     `json:"externalUserId"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	FixedInfo      *FixedInfo `json:"fixedInfo,omitempty"`
}

// ReviewResult is the provider's decision. Score is absent until scored.
type ReviewResult struct {
	ReviewAnswer      string   `json:"reviewAnswer,omitempty"`
	RejectType        string   `json:"reviewRejectType,omitempty"`
	RejectLabels      []string `json:"rejectLabels,omitempty"`
	ModerationComment string   `json:"moderationComment,omitempty"`
	ClientComment     string   `json:"clientComment,omitempty"`
	Score             *float64 `json:"score,omitempty"`
}

// Reason returns a human-readable rejection reason, or nil if there is none.
func (r *ReviewResult) Reason() *string {
	if r == nil {
		return nil
	}
	reason := r.ModerationComment
	if reason == "" {
		reason = r.ClientComment
	}
	if reason == "" && len(r.RejectLabels) > 0 {
		reason = strings.Join(r.RejectLabels, ", ")
	}
	if reason == "" {
		return nil
	}
	return &reason
}

// ReviewStatus is the applicant's review state. Raw keeps the response body
// verbatim and ResultRaw the reviewResult object, for callers that store them.
type ReviewStatus struct {
	ReviewStatus string          `json:"reviewStatus"`
	ReviewResult *ReviewResult   `json:"reviewResult,omitempty"`
	Raw          json.RawMessage `json:"-"`
	ResultRaw    json.RawMessage `json:"-"`
}

// Answer returns the review answer and reject type, empty if not reviewed.
func (s *ReviewStatus) Answer() (answer, rejectType string) {
	if s.ReviewResult == nil {
		return "", ""
	}
	return s.ReviewResult.ReviewAnswer, s.ReviewResult.RejectType
}

// Applicant is the provider-side verification subject.
type Applicant struct {
	ID             string        `json:"id"`
	ExternalUserID string        `json:"externalUserId"`
	LevelName      string        `json:"levelName,omitempty"`
	CreatedAt      string        `json:"createdAt,omitempty"`
	Email          string        `json:"email,omitempty"`
	Phone          string        `json:"phone,omitempty"`
	FixedInfo      *FixedInfo    `json:"fixedInfo,omitempty"`
	Review         *ReviewStatus `json:"review,omitempty"`
}

// AccessToken is an ephemeral SDK credential.
type AccessToken struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// ApplicantPage is one page of a list or search.
type ApplicantPage struct {
	Items      []Applicant `json:"items"`
	TotalItems int         `json:"totalItems"`
}

// ListParams filters the applicant listing. Zero values are omitted.
type ListParams struct {
	Offset      int
	Limit       int
	CreatedFrom time.Time
	CreatedTo   time.Time
}

// SearchParams matches applicants on contact fields. At least one is required.
type SearchParams struct {
	Email string
	Phone string
}

// WebhookLogParams filters webhook delivery logs.
type WebhookLogParams struct {
	ApplicantID string
	Offset      int
	Limit       int
}
