package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

const eventColumns = `id, name, description, date, location, required_skills, urgency, status`

// GetEvent retrieves an event by id
func (d *DB) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	row := d.q.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = @id`, pgx.NamedArgs{"id": id})

	e, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return nil, unavailable("get event "+id, err)
	}
	return &e, nil
}

// ListEvents retrieves all events ordered by id
func (d *DB) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := d.q.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY id`)
	if err != nil {
		return nil, unavailable("query events", err)
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, unavailable("scan event", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate events", err)
	}

	return events, nil
}

// UpsertEvent inserts an event or replaces the stored one
func (d *DB) UpsertEvent(ctx context.Context, e *model.Event) error {
	if e == nil || e.ID == "" {
		return fmt.Errorf("event id is required: %w", model.ErrInvalidInput)
	}

	date, err := time.Parse(model.DateLayout, e.Date)
	if err != nil {
		return fmt.Errorf("event %s has invalid date %q: %w", e.ID, e.Date, model.ErrInvalidInput)
	}

	urgency := e.Urgency
	if urgency == "" {
		urgency = model.UrgencyMedium
	}
	status := e.Status
	if status == "" {
		status = model.EventStatusActive
	}

	_, err = d.q.Exec(ctx, `
		INSERT INTO events (id, name, description, date, location, required_skills, urgency, status)
		VALUES (@id, @name, @description, @date, @location, @required_skills, @urgency, @status)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			date = EXCLUDED.date,
			location = EXCLUDED.location,
			required_skills = EXCLUDED.required_skills,
			urgency = EXCLUDED.urgency,
			status = EXCLUDED.status
	`, pgx.NamedArgs{
		"id":              e.ID,
		"name":            e.Name,
		"description":     e.Description,
		"date":            date,
		"location":        e.Location,
		"required_skills": nonNil(e.RequiredSkills),
		"urgency":         string(urgency),
		"status":          string(status),
	})
	if err != nil {
		return unavailable("upsert event "+e.ID, err)
	}
	return nil
}

func scanEvent(s scanner) (model.Event, error) {
	var (
		e       model.Event
		date    time.Time
		urgency string
		status  string
	)

	if err := s.Scan(&e.ID, &e.Name, &e.Description, &date, &e.Location, &e.RequiredSkills, &urgency, &status); err != nil {
		return model.Event{}, err
	}

	e.Date = date.Format(model.DateLayout)
	e.Urgency = model.Urgency(urgency)
	e.Status = model.EventStatus(status)
	return e, nil
}
