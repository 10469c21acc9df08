package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// GetMatchHistory returns every match joined with its volunteer and event,
// most recent event first. No matches is an empty list, not an error.
// Matches whose volunteer or event no longer exists are left out.
func GetMatchHistory(ctx context.Context, store db.MatchingStore, logger *zap.Logger) ([]model.HistoryEntry, error) {
	matches, err := store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	history := make([]model.HistoryEntry, 0, len(matches))
	if len(matches) == 0 {
		return history, nil
	}

	volunteers, err := store.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}
	events, err := store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	volunteersByID := make(map[string]*model.Volunteer, len(volunteers))
	for i := range volunteers {
		volunteersByID[volunteers[i].ID] = &volunteers[i]
	}
	eventsByID := make(map[string]*model.Event, len(events))
	for i := range events {
		eventsByID[events[i].ID] = &events[i]
	}

	for _, m := range matches {
		volunteer, ok := volunteersByID[m.VolunteerID]
		event, ok2 := eventsByID[m.EventID]
		if !ok || !ok2 {
			logger.Debug("Skipping match with missing volunteer or event", logging.MatchID(m.ID))
			continue
		}

		history = append(history, model.HistoryEntry{
			MatchID:        m.ID,
			VolunteerID:    volunteer.ID,
			VolunteerName:  volunteer.Name,
			EventID:        event.ID,
			EventName:      event.Name,
			EventDate:      event.Date,
			Location:       event.Location,
			RequiredSkills: event.RequiredSkills,
			Urgency:        event.Urgency,
			Status:         m.Status,
			Score:          m.Score,
			CreatedAt:      m.CreatedAt,
			UpdatedAt:      m.UpdatedAt,
		})
	}

	sort.SliceStable(history, func(i, j int) bool {
		if history[i].EventDate != history[j].EventDate {
			return history[i].EventDate > history[j].EventDate
		}
		return history[i].MatchID < history[j].MatchID
	})

	logger.Debug("Built match history", zap.Int("entries", len(history)))

	return history, nil
}
