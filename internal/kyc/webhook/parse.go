package webhook

import (
	"encoding/json"
	"strings"

	"kycgate/internal/kyc/provider"
	dErrors "kycgate/pkg/domain-errors"
)

// Parse decodes a verified body into its typed event. Unrecognised types come
// back as UnknownEvent; only malformed JSON is an error.
func Parse(body []byte) (Event, error) {
	var wire struct {
		Envelope
		ReviewResult json.RawMessage `json:"reviewResult,omitempty"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "webhook body is not valid JSON")
	}
	env := wire.Envelope
	env.Type = strings.TrimSpace(env.Type)
	env.ApplicantID = strings.TrimSpace(env.ApplicantID)
	env.Raw = append(json.RawMessage(nil), body...)
	if len(wire.ReviewResult) > 0 && string(wire.ReviewResult) != "null" {
		env.ResultRaw = append(json.RawMessage(nil), wire.ReviewResult...)
		var rr provider.ReviewResult
		if err := json.Unmarshal(wire.ReviewResult, &rr); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "webhook reviewResult is malformed")
		}
		env.ReviewResult = &rr
	}

	b := base{env: env}
	switch env.Type {
	case TypeApplicantReviewed:
		return ApplicantReviewed{b}, nil
	case TypeApplicantPending:
		return ApplicantPending{b}, nil
	case TypeApplicantOnHold:
		return ApplicantOnHold{b}, nil
	case TypeApplicantCreated:
		return ApplicantCreated{b}, nil
	case TypeApplicantActionPending:
		return ApplicantActionPending{b}, nil
	case TypeApplicantActionReviewed:
		return ApplicantActionReviewed{b}, nil
	default:
		return UnknownEvent{b}, nil
	}
}
