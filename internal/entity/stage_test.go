package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStageTransitions(t *testing.T) {
	assert.True(t, StageNew.CanTransition(StageContacted))
	assert.False(t, StageNew.CanTransition(StageCustomer))

	assert.True(t, StageContacted.CanTransition(StageCustomer))
	assert.True(t, StageContacted.CanTransition(StageNotInterestedTiming))
	assert.True(t, StageContacted.CanTransition(StageNotInterestedCompetitor))
	assert.True(t, StageContacted.CanTransition(StageNotInterestedNoNeed))
	assert.True(t, StageContacted.CanTransition(StageNotInterestedOther))
	assert.False(t, StageContacted.CanTransition(StageNew))
}

func TestTerminalStagesHaveNoExit(t *testing.T) {
	terminals := []Stage{
		StageCustomer,
		StageNotInterestedTiming,
		StageNotInterestedCompetitor,
		StageNotInterestedNoNeed,
		StageNotInterestedOther,
	}
	all := []Stage{
		StageNew, StageContacted, StageCustomer,
		StageNotInterestedTiming, StageNotInterestedCompetitor,
		StageNotInterestedNoNeed, StageNotInterestedOther,
	}

	for _, from := range terminals {
		assert.True(t, from.Terminal(), "%s should be terminal", from)
		for _, to := range all {
			assert.False(t, from.CanTransition(to),
				"%s -> %s should be illegal", from, to)
		}
	}

	assert.False(t, StageNew.Terminal())
	assert.False(t, StageContacted.Terminal())
}

func TestStageForDeclineReason(t *testing.T) {
	cases := map[string]Stage{
		"timing":     StageNotInterestedTiming,
		"competitor": StageNotInterestedCompetitor,
		"no_need":    StageNotInterestedNoNeed,
		"other":      StageNotInterestedOther,
	}
	for reason, want := range cases {
		got, ok := StageForDeclineReason(reason)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := StageForDeclineReason("maybe_later")
	assert.False(t, ok)
}

func TestStageValid(t *testing.T) {
	assert.True(t, StageNew.Valid())
	assert.False(t, Stage("archived").Valid())
}

func TestPrependNote(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := PrependNote("", "Survey response: timing", at)
	assert.Equal(t, "[2026-03-01T12:00:00Z] Survey response: timing", first)

	second := PrependNote(first, "Payment received", at.Add(time.Hour))
	assert.Equal(t,
		"[2026-03-01T13:00:00Z] Payment received\n[2026-03-01T12:00:00Z] Survey response: timing",
		second)
}

func TestLeadPatchApply(t *testing.T) {
	sent := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	lead := Lead{
		ID:         "btx-1",
		Name:       "Acme Plumbing",
		Stage:      StageContacted,
		Notes:      "old",
		FollowUpAt: &sent,
	}

	stage := StageCustomer
	email := "owner@acme.example"
	patched := LeadPatch{
		Stage:           &stage,
		Email:           &email,
		ClearFollowUpAt: true,
	}.Apply(lead)

	assert.Equal(t, StageCustomer, patched.Stage)
	assert.Equal(t, email, patched.Email)
	assert.Nil(t, patched.FollowUpAt)
	// untouched fields survive the merge
	assert.Equal(t, "Acme Plumbing", patched.Name)
	assert.Equal(t, "old", patched.Notes)
	// original is not mutated
	assert.Equal(t, StageContacted, lead.Stage)
}
