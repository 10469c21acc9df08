package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

const volunteerColumns = `id, name, email, location, skills, availability, max_distance, event_types`

// GetVolunteer retrieves a volunteer by id
func (d *DB) GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	row := d.q.QueryRow(ctx, `SELECT `+volunteerColumns+` FROM volunteers WHERE id = @id`, pgx.NamedArgs{"id": id})

	v, err := scanVolunteer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("volunteer %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get volunteer "+id, err)
	}
	return &v, nil
}

// ListVolunteers retrieves all volunteers ordered by id
func (d *DB) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	rows, err := d.q.Query(ctx, `SELECT `+volunteerColumns+` FROM volunteers ORDER BY id`)
	if err != nil {
		return nil, unavailable("query volunteers", err)
	}
	defer rows.Close()

	volunteers := make([]model.Volunteer, 0)
	for rows.Next() {
		v, err := scanVolunteer(rows)
		if err != nil {
			return nil, unavailable("scan volunteer", err)
		}
		volunteers = append(volunteers, v)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate volunteers", err)
	}

	return volunteers, nil
}

// UpsertVolunteer inserts a volunteer or replaces the stored profile
func (d *DB) UpsertVolunteer(ctx context.Context, v *model.Volunteer) error {
	if v == nil || v.ID == "" {
		return fmt.Errorf("volunteer id is required: %w", model.ErrInvalidInput)
	}

	var maxDistance *int
	var eventTypes []string
	if v.Preferences != nil {
		maxDistance = &v.Preferences.MaxDistance
		eventTypes = v.Preferences.EventTypes
	}

	_, err := d.q.Exec(ctx, `
		INSERT INTO volunteers (id, name, email, location, skills, availability, max_distance, event_types)
		VALUES (@id, @name, @email, @location, @skills, @availability, @max_distance, @event_types)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			location = EXCLUDED.location,
			skills = EXCLUDED.skills,
			availability = EXCLUDED.availability,
			max_distance = EXCLUDED.max_distance,
			event_types = EXCLUDED.event_types
	`, pgx.NamedArgs{
		"id":           v.ID,
		"name":         v.Name,
		"email":        v.Email,
		"location":     v.Location,
		"skills":       nonNil(v.Skills),
		"availability": nonNil(v.Availability),
		"max_distance": maxDistance,
		"event_types":  eventTypes,
	})
	if err != nil {
		return unavailable("upsert volunteer "+v.ID, err)
	}
	return nil
}

func scanVolunteer(s scanner) (model.Volunteer, error) {
	var (
		v           model.Volunteer
		maxDistance *int32
		eventTypes  []string
	)

	if err := s.Scan(&v.ID, &v.Name, &v.Email, &v.Location, &v.Skills, &v.Availability, &maxDistance, &eventTypes); err != nil {
		return model.Volunteer{}, err
	}

	if maxDistance != nil || eventTypes != nil {
		v.Preferences = &model.Preferences{EventTypes: eventTypes}
		if maxDistance != nil {
			v.Preferences.MaxDistance = int(*maxDistance)
		}
	}

	return v, nil
}

// nonNil keeps NOT NULL array columns from receiving NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
