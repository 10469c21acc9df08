package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/matcher"
	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// SeedResult counts the records written by Seed
type SeedResult struct {
	Volunteers     int
	Events         int
	Matches        int
	SkippedMatches int
}

// Seed upserts fixture volunteers and events and inserts fixture matches.
// Matches for pairs that are already matched are skipped.
func Seed(ctx context.Context, store db.Database, logger *zap.Logger, fx *db.Fixtures) (*SeedResult, error) {
	result := &SeedResult{}

	for i := range fx.Volunteers {
		if err := store.UpsertVolunteer(ctx, &fx.Volunteers[i]); err != nil {
			return nil, fmt.Errorf("failed to seed volunteer %s: %w", fx.Volunteers[i].ID, err)
		}
		result.Volunteers++
	}

	for i := range fx.Events {
		if err := store.UpsertEvent(ctx, &fx.Events[i]); err != nil {
			return nil, fmt.Errorf("failed to seed event %s: %w", fx.Events[i].ID, err)
		}
		result.Events++
	}

	for i := range fx.Matches {
		m := fx.Matches[i]
		if m.Score == 0 {
			score, err := scoreFixtureMatch(ctx, store, &m)
			if err != nil {
				return nil, err
			}
			m.Score = score
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now().UTC()
		}
		if m.UpdatedAt.IsZero() {
			m.UpdatedAt = m.CreatedAt
		}

		if err := store.InsertMatch(ctx, &m); err != nil {
			if errors.Is(err, model.ErrConflict) || errors.Is(err, model.ErrInvalidInput) {
				logger.Debug("Skipping existing fixture match", logging.MatchID(m.ID), zap.Error(err))
				result.SkippedMatches++
				continue
			}
			return nil, fmt.Errorf("failed to seed match %s: %w", m.ID, err)
		}
		result.Matches++
	}

	logger.Info("Seeded store",
		zap.Int("volunteers", result.Volunteers),
		zap.Int("events", result.Events),
		zap.Int("matches", result.Matches),
		zap.Int("skipped_matches", result.SkippedMatches))

	return result, nil
}

// scoreFixtureMatch computes the score for a fixture match that does not carry one
func scoreFixtureMatch(ctx context.Context, store db.ProfileStore, m *model.Match) (int, error) {
	volunteer, err := store.GetVolunteer(ctx, m.VolunteerID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch volunteer %s for match %s: %w", m.VolunteerID, m.ID, err)
	}
	event, err := store.GetEvent(ctx, m.EventID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch event %s for match %s: %w", m.EventID, m.ID, err)
	}
	return matcher.Score(volunteer, event), nil
}
