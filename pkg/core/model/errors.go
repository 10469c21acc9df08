package model

import (
	"errors"
	"fmt"
)

// Error kinds shared by the stores, services and API layers.
// The API maps ErrNotFound to 404, ErrConflict and ErrInvalidInput to 400, everything else to 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("unavailable")
)

// ConflictError is returned when a match already exists for a volunteer/event pair.
// It carries the existing match's ID so callers can look it up.
type ConflictError struct {
	MatchID     string
	VolunteerID string
	EventID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("match already exists for volunteer %s and event %s: %s", e.VolunteerID, e.EventID, e.MatchID)
}

// Is makes errors.Is(err, ErrConflict) true for any ConflictError
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// ConflictMatchID extracts the conflicting match ID from an error chain, if any
func ConflictMatchID(err error) (string, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict.MatchID, true
	}
	return "", false
}
