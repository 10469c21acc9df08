package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

const matchColumns = `id, volunteer_id, event_id, status, match_score, created_at, updated_at`

// GetMatch retrieves a match by id
func (d *DB) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	row := d.q.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = @id`, pgx.NamedArgs{"id": id})

	m, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get match "+id, err)
	}
	return &m, nil
}

// GetMatchByPair retrieves the match for a volunteer and event
func (d *DB) GetMatchByPair(ctx context.Context, volunteerID, eventID string) (*model.Match, error) {
	row := d.q.QueryRow(ctx, `
		SELECT `+matchColumns+` FROM matches
		WHERE volunteer_id = @volunteer_id AND event_id = @event_id
	`, pgx.NamedArgs{"volunteer_id": volunteerID, "event_id": eventID})

	m, err := scanMatch(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("match for volunteer %s and event %s: %w", volunteerID, eventID, model.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get match by pair", err)
	}
	return &m, nil
}

// GetMatchesByVolunteer retrieves all matches for a volunteer ordered by id
func (d *DB) GetMatchesByVolunteer(ctx context.Context, volunteerID string) ([]model.Match, error) {
	return d.queryMatches(ctx, `SELECT `+matchColumns+` FROM matches WHERE volunteer_id = @id ORDER BY id`,
		pgx.NamedArgs{"id": volunteerID})
}

// GetMatchesByEvent retrieves all matches for an event ordered by id
func (d *DB) GetMatchesByEvent(ctx context.Context, eventID string) ([]model.Match, error) {
	return d.queryMatches(ctx, `SELECT `+matchColumns+` FROM matches WHERE event_id = @id ORDER BY id`,
		pgx.NamedArgs{"id": eventID})
}

// ListMatches retrieves all matches ordered by id
func (d *DB) ListMatches(ctx context.Context) ([]model.Match, error) {
	return d.queryMatches(ctx, `SELECT `+matchColumns+` FROM matches ORDER BY id`)
}

func (d *DB) queryMatches(ctx context.Context, sql string, args ...any) ([]model.Match, error) {
	rows, err := d.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, unavailable("query matches", err)
	}
	defer rows.Close()

	matches := make([]model.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, unavailable("scan match", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate matches", err)
	}

	return matches, nil
}

// InsertMatch inserts a new match. The matches_volunteer_event_key constraint
// rejects a second match for the same pair; the existing match is looked up
// and returned inside a *model.ConflictError.
func (d *DB) InsertMatch(ctx context.Context, m *model.Match) error {
	if m == nil || m.ID == "" {
		return fmt.Errorf("match id is required: %w", model.ErrInvalidInput)
	}

	tag, err := d.q.Exec(ctx, `
		INSERT INTO matches (id, volunteer_id, event_id, status, match_score, created_at, updated_at)
		VALUES (@id, @volunteer_id, @event_id, @status, @match_score, @created_at, @updated_at)
		ON CONFLICT ON CONSTRAINT `+matchPairConstraint+` DO NOTHING
	`, pgx.NamedArgs{
		"id":           m.ID,
		"volunteer_id": m.VolunteerID,
		"event_id":     m.EventID,
		"status":       string(m.Status),
		"match_score":  m.Score,
		"created_at":   m.CreatedAt.UTC(),
		"updated_at":   m.UpdatedAt.UTC(),
	})
	if err != nil {
		switch code, _ := pgErrorCode(err); code {
		case pgUniqueViolation:
			return fmt.Errorf("match id %s already in use: %w", m.ID, model.ErrInvalidInput)
		case pgForeignKeyViolation:
			return fmt.Errorf("volunteer %s or event %s: %w", m.VolunteerID, m.EventID, model.ErrNotFound)
		}
		return unavailable("insert match", err)
	}

	if tag.RowsAffected() == 0 {
		existing, err := d.GetMatchByPair(ctx, m.VolunteerID, m.EventID)
		if err != nil {
			return fmt.Errorf("failed to look up conflicting match: %w", err)
		}
		return &model.ConflictError{MatchID: existing.ID, VolunteerID: m.VolunteerID, EventID: m.EventID}
	}

	return nil
}

// UpdateMatch writes the status, score and updated timestamp of an existing match
func (d *DB) UpdateMatch(ctx context.Context, m *model.Match) error {
	if m == nil {
		return fmt.Errorf("match is required: %w", model.ErrInvalidInput)
	}

	tag, err := d.q.Exec(ctx, `
		UPDATE matches
		SET status = @status, match_score = @match_score, updated_at = @updated_at
		WHERE id = @id
	`, pgx.NamedArgs{
		"id":          m.ID,
		"status":      string(m.Status),
		"match_score": m.Score,
		"updated_at":  m.UpdatedAt.UTC(),
	})
	if err != nil {
		return unavailable("update match "+m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %s: %w", m.ID, model.ErrNotFound)
	}
	return nil
}

// DeleteMatch removes a match by id
func (d *DB) DeleteMatch(ctx context.Context, id string) error {
	tag, err := d.q.Exec(ctx, `DELETE FROM matches WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return unavailable("delete match "+id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	return nil
}

func scanMatch(s scanner) (model.Match, error) {
	var (
		m      model.Match
		status string
		score  int32
	)

	if err := s.Scan(&m.ID, &m.VolunteerID, &m.EventID, &status, &score, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return model.Match{}, err
	}

	m.Status = model.MatchStatus(status)
	m.Score = int(score)
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}
