package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/matcher"
	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/notify"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// CreateMatch pairs a volunteer with an event on request.
// Requested matches start as Matched. A second match for the same pair fails
// with a *model.ConflictError naming the existing match.
func CreateMatch(ctx context.Context, store db.MatchingStore, notifier notify.Notifier, logger *zap.Logger, volunteerID, eventID string) (*model.Match, error) {
	if err := requireID("volunteer", volunteerID); err != nil {
		return nil, err
	}
	if err := requireID("event", eventID); err != nil {
		return nil, err
	}

	logger.Debug("Creating match", logging.VolunteerID(volunteerID), logging.EventID(eventID))

	volunteer, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	existing, err := store.GetMatchByPair(ctx, volunteerID, eventID)
	switch {
	case err == nil:
		return nil, &model.ConflictError{MatchID: existing.ID, VolunteerID: volunteerID, EventID: eventID}
	case !errors.Is(err, model.ErrNotFound):
		return nil, fmt.Errorf("failed to check existing match: %w", err)
	}

	timestamp := now().UTC()
	match := &model.Match{
		ID:          uuid.New().String(),
		VolunteerID: volunteerID,
		EventID:     eventID,
		Status:      model.StatusMatched,
		Score:       matcher.Score(volunteer, event),
		CreatedAt:   timestamp,
		UpdatedAt:   timestamp,
	}

	// The store enforces pair uniqueness again in case of a concurrent create
	if err := store.InsertMatch(ctx, match); err != nil {
		var conflict *model.ConflictError
		if errors.As(err, &conflict) {
			return nil, conflict
		}
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}

	logger.Info("Match created",
		logging.MatchID(match.ID),
		logging.VolunteerID(volunteerID),
		logging.EventID(eventID),
		zap.Int("score", match.Score))

	notifier.Notify(ctx, volunteerID, notify.MatchCreated(event.Name))

	return match, nil
}

// UpdateMatchStatus moves a match to a new status.
// Unknown statuses and disallowed transitions fail with model.ErrInvalidInput
// and leave the match untouched.
func UpdateMatchStatus(ctx context.Context, store db.MatchingStore, notifier notify.Notifier, logger *zap.Logger, matchID string, status model.MatchStatus) (*model.Match, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q, must be one of %v: %w", status, model.MatchStatuses, model.ErrInvalidInput)
	}
	if err := requireID("match", matchID); err != nil {
		return nil, err
	}

	match, err := store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}

	previous := match.Status
	if !previous.CanTransitionTo(status) {
		return nil, fmt.Errorf("cannot change match %s from %s to %s: %w", matchID, previous, status, model.ErrInvalidInput)
	}

	name, err := eventName(ctx, store, match.EventID)
	if err != nil {
		return nil, err
	}

	match.Status = status
	match.UpdatedAt = now().UTC()
	if err := store.UpdateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to update match %s: %w", matchID, err)
	}

	logger.Info("Match status updated",
		logging.MatchID(matchID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)))

	if previous != status {
		notifier.Notify(ctx, match.VolunteerID, notify.StatusChanged(name, status))
	}

	return match, nil
}

// DeleteMatch permanently removes a match
func DeleteMatch(ctx context.Context, store db.MatchingStore, notifier notify.Notifier, logger *zap.Logger, matchID string) error {
	if err := requireID("match", matchID); err != nil {
		return err
	}

	match, err := store.GetMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}

	name, err := eventName(ctx, store, match.EventID)
	if err != nil {
		return err
	}

	if err := store.DeleteMatch(ctx, matchID); err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}

	logger.Info("Match deleted",
		logging.MatchID(matchID),
		logging.VolunteerID(match.VolunteerID),
		logging.EventID(match.EventID))

	notifier.Notify(ctx, match.VolunteerID, notify.MatchRemoved(name))

	return nil
}

// GetMatch retrieves a single match
func GetMatch(ctx context.Context, store db.MatchStore, matchID string) (*model.Match, error) {
	if err := requireID("match", matchID); err != nil {
		return nil, err
	}

	match, err := store.GetMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	return match, nil
}

// ListMatches retrieves every match ordered by id
func ListMatches(ctx context.Context, store db.MatchStore) ([]model.Match, error) {
	matches, err := store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	return matches, nil
}
