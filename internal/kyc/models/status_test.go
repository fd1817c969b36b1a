package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "kycgate/pkg/domain-errors"
)

func TestCanTransitionTo(t *testing.T) {
	nonTerminal := []Status{StatusPending, StatusUnderReview, StatusActionRequired}
	targets := []Status{StatusPending, StatusUnderReview, StatusActionRequired, StatusApproved, StatusRejected}

	t.Run("not_started only moves to pending", func(t *testing.T) {
		for _, next := range allStatuses {
			assert.Equal(t, next == StatusPending, StatusNotStarted.CanTransitionTo(next), "next=%s", next)
		}
	})

	t.Run("non-terminal statuses move anywhere but not_started", func(t *testing.T) {
		for _, from := range nonTerminal {
			for _, next := range targets {
				assert.True(t, from.CanTransitionTo(next), "%s -> %s", from, next)
			}
			assert.False(t, from.CanTransitionTo(StatusNotStarted))
		}
	})

	t.Run("terminal statuses accept only replays", func(t *testing.T) {
		for _, from := range []Status{StatusApproved, StatusRejected} {
			for _, next := range allStatuses {
				assert.Equal(t, next == from, from.CanTransitionTo(next), "%s -> %s", from, next)
			}
		}
	})

	t.Run("unknown target is refused", func(t *testing.T) {
		assert.False(t, StatusPending.CanTransitionTo(Status("bogus")))
	})
}

func TestAllowedSources(t *testing.T) {
	assert.ElementsMatch(t,
		[]Status{StatusNotStarted, StatusPending, StatusUnderReview, StatusActionRequired},
		AllowedSources(StatusPending))
	assert.ElementsMatch(t,
		[]Status{StatusPending, StatusUnderReview, StatusActionRequired, StatusApproved},
		AllowedSources(StatusApproved))
	assert.Empty(t, AllowedSources(StatusNotStarted))
}

func TestParseProviderStatus(t *testing.T) {
	tests := []struct {
		review, answer, reject string
		want                   Status
	}{
		{"approved", "", "", StatusApproved},
		{"under_review", "", "", StatusUnderReview},
		{"pending", "", "", StatusPending},
		{"init", "", "", StatusPending},
		{"queued", "", "", StatusUnderReview},
		{"prechecked", "", "", StatusUnderReview},
		{"onHold", "", "", StatusUnderReview},
		{"completed", "GREEN", "", StatusApproved},
		{"completed", "red", "RETRY", StatusActionRequired},
		{"completed", "RED", "FINAL", StatusRejected},
		{"completed", "RED", "", StatusRejected},
	}
	for _, tt := range tests {
		got, err := ParseProviderStatus(tt.review, tt.answer, tt.reject)
		require.NoError(t, err, "%+v", tt)
		assert.Equal(t, tt.want, got, "%+v", tt)
	}

	for _, bad := range [][3]string{{"", "", ""}, {"exploded", "", ""}, {"completed", "", ""}} {
		_, err := ParseProviderStatus(bad[0], bad[1], bad[2])
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "%v", bad)
	}
}

func TestParseRiskLevel(t *testing.T) {
	r, err := ParseRiskLevel(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, r)

	_, err = ParseRiskLevel("extreme")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
