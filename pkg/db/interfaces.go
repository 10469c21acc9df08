package db

import (
	"context"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

// VolunteerStore defines read access to volunteer profiles.
// GetVolunteer returns model.ErrNotFound when no volunteer has the given id.
type VolunteerStore interface {
	GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
	ListVolunteers(ctx context.Context) ([]model.Volunteer, error)
}

// EventStore defines read access to events.
// GetEvent returns model.ErrNotFound when no event has the given id.
type EventStore interface {
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context) ([]model.Event, error)
}

// MatchStore defines the operations for match records.
//
// InsertMatch must reject a second match for the same (volunteer, event) pair
// with a *model.ConflictError carrying the existing match's id. The check and
// the insert must be atomic with respect to other InsertMatch calls.
// Get, update and delete by id return model.ErrNotFound when the match is absent.
// Listings are ordered by ascending match id.
type MatchStore interface {
	GetMatch(ctx context.Context, id string) (*model.Match, error)
	GetMatchByPair(ctx context.Context, volunteerID, eventID string) (*model.Match, error)
	GetMatchesByVolunteer(ctx context.Context, volunteerID string) ([]model.Match, error)
	GetMatchesByEvent(ctx context.Context, eventID string) ([]model.Match, error)
	ListMatches(ctx context.Context) ([]model.Match, error)
	InsertMatch(ctx context.Context, match *model.Match) error
	UpdateMatch(ctx context.Context, match *model.Match) error
	DeleteMatch(ctx context.Context, id string) error
}

// SeedStore writes volunteer and event records loaded from fixtures
type SeedStore interface {
	UpsertVolunteer(ctx context.Context, volunteer *model.Volunteer) error
	UpsertEvent(ctx context.Context, event *model.Event) error
}

// ProfileStore reads the volunteers and events that scores are computed from
type ProfileStore interface {
	VolunteerStore
	EventStore
}

// MatchingStore is everything the matching services read and write
type MatchingStore interface {
	VolunteerStore
	EventStore
	MatchStore
}

// Database defines the interface for all database operations.
// Both the in-memory memstore.Store and postgres.DB implement this interface.
type Database interface {
	MatchingStore
	SeedStore
	Close()
}
