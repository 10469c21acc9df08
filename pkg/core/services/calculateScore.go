package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/matcher"
	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// ScoreResult is the compatibility of one volunteer with one event
type ScoreResult struct {
	VolunteerID string            `json:"volunteerId"`
	EventID     string            `json:"eventId"`
	Score       int               `json:"matchScore"`
	Breakdown   matcher.Breakdown `json:"breakdown"`
}

// CalculateScore scores a stored volunteer against a stored event
func CalculateScore(ctx context.Context, store db.ProfileStore, logger *zap.Logger, volunteerID, eventID string) (*ScoreResult, error) {
	if err := requireID("volunteer", volunteerID); err != nil {
		return nil, err
	}
	if err := requireID("event", eventID); err != nil {
		return nil, err
	}

	volunteer, err := store.GetVolunteer(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteer %s: %w", volunteerID, err)
	}

	event, err := store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	breakdown := matcher.Explain(volunteer, event)

	logger.Debug("Calculated match score",
		logging.VolunteerID(volunteerID),
		logging.EventID(eventID),
		zap.Int("score", breakdown.Total))

	return &ScoreResult{
		VolunteerID: volunteerID,
		EventID:     eventID,
		Score:       breakdown.Total,
		Breakdown:   breakdown,
	}, nil
}
