package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/matcher"
	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/db"
	"github.com/jakechorley/volunteer-matching/pkg/notify"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// AutoMatchAll proposes one Pending match per volunteer for their best open event,
// respecting the capacity cap and score threshold. It returns only the matches
// created by this call. On a store failure the matches created so far are
// returned alongside the error.
func AutoMatchAll(ctx context.Context, store db.MatchingStore, notifier notify.Notifier, logger *zap.Logger) ([]model.Match, error) {
	logger.Debug("Starting auto-match")

	volunteers, err := store.ListVolunteers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch volunteers: %w", err)
	}
	events, err := store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	matches, err := store.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	outcome := matcher.PlanAutoMatches(volunteers, events, matches, today())

	logger.Debug("Auto-match plan computed",
		zap.Int("proposals", len(outcome.Proposals)),
		zap.Strings("at_capacity", outcome.AtCapacity),
		zap.Strings("below_threshold", outcome.BelowThreshold),
		zap.Strings("no_candidates", outcome.NoCandidates))

	created := make([]model.Match, 0, len(outcome.Proposals))
	for _, p := range outcome.Proposals {
		timestamp := now().UTC()
		match := model.Match{
			ID:          uuid.New().String(),
			VolunteerID: p.VolunteerID,
			EventID:     p.EventID,
			Status:      model.StatusPending,
			Score:       p.Score,
			CreatedAt:   timestamp,
			UpdatedAt:   timestamp,
		}

		if err := store.InsertMatch(ctx, &match); err != nil {
			if errors.Is(err, model.ErrConflict) {
				// Created concurrently since the plan was computed
				logger.Warn("Skipping auto-match, pair already matched",
					logging.VolunteerID(p.VolunteerID),
					logging.EventID(p.EventID))
				continue
			}
			return created, fmt.Errorf("failed to insert auto-match for volunteer %s: %w", p.VolunteerID, err)
		}

		created = append(created, match)
		notifier.Notify(ctx, p.VolunteerID, notify.MatchProposed(p.EventName, p.Score))
	}

	logger.Info("Auto-match completed",
		zap.Int("volunteers", len(volunteers)),
		zap.Int("created", len(created)))

	return created, nil
}

// ParseSchedule parses an RFC 5545 recurrence rule
func ParseSchedule(schedule string) (*rrule.RRule, error) {
	rule, err := rrule.StrToRRule(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", schedule, model.ErrInvalidInput)
	}
	return rule, nil
}

// RunAutoMatchSchedule calls run at each occurrence of the recurrence rule
// until ctx ends or the rule has no further occurrences. A failed run is
// logged and does not stop the schedule.
func RunAutoMatchSchedule(ctx context.Context, schedule string, logger *zap.Logger, run func(context.Context) error) error {
	rule, err := ParseSchedule(schedule)
	if err != nil {
		return err
	}

	for {
		next := rule.After(now(), false)
		if next.IsZero() {
			logger.Info("Auto-match schedule has no further occurrences")
			return nil
		}

		logger.Debug("Next auto-match run", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := run(ctx); err != nil {
			logger.Error("Scheduled auto-match failed", zap.Error(err))
		}
	}
}
