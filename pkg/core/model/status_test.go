package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchStatus_IsValid(t *testing.T) {
	for _, s := range MatchStatuses {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, MatchStatus("Bogus").IsValid())
	assert.False(t, MatchStatus("").IsValid())
	assert.False(t, MatchStatus("matched").IsValid(), "status values are case-sensitive")
}

func TestMatchStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     MatchStatus
		to       MatchStatus
		expected bool
	}{
		{StatusPending, StatusMatched, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusPending, true},
		{StatusMatched, StatusCompleted, true},
		{StatusMatched, StatusCancelled, true},
		{StatusMatched, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusMatched, false},
		{StatusCompleted, StatusCompleted, false},
		{StatusCancelled, StatusCancelled, false},
		{StatusMatched, StatusMatched, true},
		{StatusCancelled, StatusMatched, false},
		{StatusCancelled, StatusPending, false},
		{StatusMatched, "Bogus", false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestMatchStatus_Flags(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusMatched.IsActive())
	assert.False(t, StatusCompleted.IsActive())
	assert.False(t, StatusCancelled.IsActive())

	assert.True(t, StatusMatched.BlocksRecommendation())
	assert.True(t, StatusCompleted.BlocksRecommendation())
	assert.False(t, StatusPending.BlocksRecommendation())
	assert.False(t, StatusCancelled.BlocksRecommendation())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusMatched.IsTerminal())
}

func TestConflictError(t *testing.T) {
	err := fmt.Errorf("failed to create match: %w", &ConflictError{MatchID: "m1", VolunteerID: "v1", EventID: "e1"})

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrNotFound))

	id, ok := ConflictMatchID(err)
	assert.True(t, ok)
	assert.Equal(t, "m1", id)

	_, ok = ConflictMatchID(ErrNotFound)
	assert.False(t, ok)
}

func TestEvent_IsOpen(t *testing.T) {
	e := Event{Status: EventStatusActive, Date: "2030-01-10"}
	assert.True(t, e.IsOpen("2030-01-10"))
	assert.True(t, e.IsOpen("2030-01-09"))
	assert.False(t, e.IsOpen("2030-01-11"))

	e.Status = "Cancelled"
	assert.False(t, e.IsOpen("2030-01-01"))
}
