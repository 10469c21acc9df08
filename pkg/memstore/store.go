package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
)

type pairKey struct {
	volunteerID string
	eventID     string
}

// Store is a single-process implementation of db.Database.
// One lock guards every collection, so the pair check in InsertMatch is atomic.
type Store struct {
	mu         sync.RWMutex
	volunteers map[string]model.Volunteer
	events     map[string]model.Event
	matches    map[string]model.Match
	pairs      map[pairKey]string
}

// New creates an empty store
func New() *Store {
	return &Store{
		volunteers: make(map[string]model.Volunteer),
		events:     make(map[string]model.Event),
		matches:    make(map[string]model.Match),
		pairs:      make(map[pairKey]string),
	}
}

// Close is a no-op
func (s *Store) Close() {}

func (s *Store) GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.volunteers[id]
	if !ok {
		return nil, fmt.Errorf("volunteer %s: %w", id, model.ErrNotFound)
	}
	v = cloneVolunteer(v)
	return &v, nil
}

func (s *Store) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Volunteer, 0, len(s.volunteers))
	for _, v := range s.volunteers {
		result = append(result, cloneVolunteer(v))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpsertVolunteer(ctx context.Context, volunteer *model.Volunteer) error {
	if volunteer == nil || volunteer.ID == "" {
		return fmt.Errorf("volunteer id is required: %w", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.volunteers[volunteer.ID] = cloneVolunteer(*volunteer)
	return nil
}

func (s *Store) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, model.ErrNotFound)
	}
	e = cloneEvent(e)
	return &e, nil
}

func (s *Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		result = append(result, cloneEvent(e))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpsertEvent(ctx context.Context, event *model.Event) error {
	if event == nil || event.ID == "" {
		return fmt.Errorf("event id is required: %w", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[event.ID] = cloneEvent(*event)
	return nil
}

func (s *Store) GetMatch(ctx context.Context, id string) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}
	return &m, nil
}

func (s *Store) GetMatchByPair(ctx context.Context, volunteerID, eventID string) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.pairs[pairKey{volunteerID, eventID}]
	if !ok {
		return nil, fmt.Errorf("match for volunteer %s and event %s: %w", volunteerID, eventID, model.ErrNotFound)
	}
	m := s.matches[id]
	return &m, nil
}

func (s *Store) GetMatchesByVolunteer(ctx context.Context, volunteerID string) ([]model.Match, error) {
	return s.filterMatches(func(m model.Match) bool { return m.VolunteerID == volunteerID }), nil
}

func (s *Store) GetMatchesByEvent(ctx context.Context, eventID string) ([]model.Match, error) {
	return s.filterMatches(func(m model.Match) bool { return m.EventID == eventID }), nil
}

func (s *Store) ListMatches(ctx context.Context) ([]model.Match, error) {
	return s.filterMatches(func(model.Match) bool { return true }), nil
}

func (s *Store) filterMatches(keep func(model.Match) bool) []model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Match, 0)
	for _, m := range s.matches {
		if keep(m) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// InsertMatch stores a new match, rejecting duplicates of the (volunteer, event) pair
func (s *Store) InsertMatch(ctx context.Context, match *model.Match) error {
	if match == nil || match.ID == "" {
		return fmt.Errorf("match id is required: %w", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{match.VolunteerID, match.EventID}
	if existingID, ok := s.pairs[key]; ok {
		return &model.ConflictError{MatchID: existingID, VolunteerID: match.VolunteerID, EventID: match.EventID}
	}
	if _, ok := s.matches[match.ID]; ok {
		return fmt.Errorf("match id %s already in use: %w", match.ID, model.ErrInvalidInput)
	}

	s.matches[match.ID] = *match
	s.pairs[key] = match.ID
	return nil
}

// UpdateMatch replaces the status, score and updated timestamp of an existing match.
// The volunteer and event references are immutable.
func (s *Store) UpdateMatch(ctx context.Context, match *model.Match) error {
	if match == nil {
		return fmt.Errorf("match is required: %w", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.matches[match.ID]
	if !ok {
		return fmt.Errorf("match %s: %w", match.ID, model.ErrNotFound)
	}

	existing.Status = match.Status
	existing.Score = match.Score
	existing.UpdatedAt = match.UpdatedAt
	s.matches[match.ID] = existing
	return nil
}

func (s *Store) DeleteMatch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return fmt.Errorf("match %s: %w", id, model.ErrNotFound)
	}

	delete(s.matches, id)
	delete(s.pairs, pairKey{m.VolunteerID, m.EventID})
	return nil
}

func cloneVolunteer(v model.Volunteer) model.Volunteer {
	v.Skills = slices.Clone(v.Skills)
	v.Availability = slices.Clone(v.Availability)
	if v.Preferences != nil {
		p := *v.Preferences
		p.EventTypes = slices.Clone(p.EventTypes)
		v.Preferences = &p
	}
	return v
}

func cloneEvent(e model.Event) model.Event {
	e.RequiredSkills = slices.Clone(e.RequiredSkills)
	return e
}
