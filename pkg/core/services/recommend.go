package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/matcher"
	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// RecommendVolunteers ranks the volunteers best suited to an event.
// Fails with model.ErrNotFound when the event does not exist.
func RecommendVolunteers(ctx context.Context, store db.MatchingStore, logger *zap.Logger, eventID string) ([]matcher.VolunteerRecommendation, error) {
	if err := requireID("event", eventID); err != nil {
		return nil, err
	}

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	volunteers, err := store.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}

	matches, err := store.GetMatchesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for event %s: %w", eventID, err)
	}

	recommendations := matcher.RankVolunteers(event, volunteers, matches)

	logger.Debug("Recommended volunteers",
		logging.EventID(eventID),
		zap.Int("candidates", len(volunteers)),
		zap.Int("recommended", len(recommendations)))

	return recommendations, nil
}

// RecommendEvents ranks the open events best suited to a volunteer.
// Fails with model.ErrNotFound when the volunteer does not exist.
func RecommendEvents(ctx context.Context, store db.MatchingStore, logger *zap.Logger, volunteerID string) ([]matcher.EventRecommendation, error) {
	if err := requireID("volunteer", volunteerID); err != nil {
		return nil, err
	}

	volunteer, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}

	events, err := store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	matches, err := store.GetMatchesByVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for volunteer %s: %w", volunteerID, err)
	}

	recommendations := matcher.RankEvents(volunteer, events, matches, today())

	logger.Debug("Recommended events",
		logging.VolunteerID(volunteerID),
		zap.Int("candidates", len(events)),
		zap.Int("recommended", len(recommendations)))

	return recommendations, nil
}
