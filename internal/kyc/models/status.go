package models

import (
	"strings"

	dErrors "kycgate/pkg/domain-errors"
)

// Status is the local verification state of a user.
type Status string

const (
	StatusNotStarted     Status = "not_started"
	StatusPending        Status = "pending"
	StatusUnderReview    Status = "under_review"
	StatusActionRequired Status = "action_required"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
)

var allStatuses = []Status{
	StatusNotStarted,
	StatusPending,
	StatusUnderReview,
	StatusActionRequired,
	StatusApproved,
	StatusRejected,
}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the provider has made a final decision.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo reports whether a webhook or reconciliation may move a
// record from s to next:
//
//	not_started                              -> pending
//	pending | under_review | action_required -> any status except not_started
//	approved | rejected                      -> itself (replay)
//
// Leaving a terminal state is only possible through Record.ApplyReset.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.IsValid() || next == StatusNotStarted {
		return false
	}
	switch s {
	case StatusNotStarted:
		return next == StatusPending
	case StatusPending, StatusUnderReview, StatusActionRequired:
		return true
	case StatusApproved, StatusRejected:
		return next == s
	default:
		return false
	}
}

// AllowedSources lists every status that may move to next.
func AllowedSources(next Status) []Status {
	var out []Status
	for _, s := range allStatuses {
		if s.CanTransitionTo(next) {
			out = append(out, s)
		}
	}
	return out
}

// ParseStatus accepts only local status names.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "unknown verification status: "+raw)
	}
	return s, nil
}

// Provider review states and answers.
const (
	providerInit       = "init"
	providerQueued     = "queued"
	providerPrechecked = "prechecked"
	providerOnHold     = "onHold"
	providerCompleted  = "completed"

	AnswerGreen = "GREEN"
	AnswerRed   = "RED"

	RejectTypeRetry = "RETRY"
	RejectTypeFinal = "FINAL"
)

// ParseProviderStatus maps a provider review state onto a local Status.
// Local names are accepted verbatim so callers may pass either vocabulary.
func ParseProviderStatus(reviewStatus, reviewAnswer, rejectType string) (Status, error) {
	raw := strings.TrimSpace(reviewStatus)
	if s := Status(raw); s.IsValid() {
		return s, nil
	}
	switch raw {
	case providerInit:
		return StatusPending, nil
	case providerQueued, providerPrechecked, providerOnHold:
		return StatusUnderReview, nil
	case providerCompleted:
		switch strings.ToUpper(strings.TrimSpace(reviewAnswer)) {
		case AnswerGreen:
			return StatusApproved, nil
		case AnswerRed:
			if strings.EqualFold(strings.TrimSpace(rejectType), RejectTypeRetry) {
				return StatusActionRequired, nil
			}
			return StatusRejected, nil
		}
		return "", dErrors.New(dErrors.CodeValidation, "completed review without a recognised answer")
	}
	return "", dErrors.New(dErrors.CodeValidation, "unknown review status: "+reviewStatus)
}

// RiskLevel is an admin-assigned classification. Defaults to low.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) IsValid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

func ParseRiskLevel(raw string) (RiskLevel, error) {
	r := RiskLevel(strings.ToLower(strings.TrimSpace(raw)))
	if !r.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "risk_level must be one of low, medium, high")
	}
	return r, nil
}
