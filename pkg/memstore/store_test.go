package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/db"
)

var _ db.Database = (*Store)(nil)

func newMatch(id, volunteerID, eventID string) *model.Match {
	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Match{
		ID:          id,
		VolunteerID: volunteerID,
		EventID:     eventID,
		Status:      model.StatusMatched,
		Score:       80,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestStore_Volunteers(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.UpsertVolunteer(ctx, &model.Volunteer{ID: "v2", Name: "Jane"}))
	require.NoError(t, s.UpsertVolunteer(ctx, &model.Volunteer{ID: "v1", Name: "John", Skills: []string{"First Aid"}}))

	v, err := s.GetVolunteer(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "John", v.Name)

	// Returned records do not alias stored ones
	v.Skills[0] = "Changed"
	again, err := s.GetVolunteer(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"First Aid"}, again.Skills)

	list, err := s.ListVolunteers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "v1", list[0].ID)
	assert.Equal(t, "v2", list[1].ID)

	_, err = s.GetVolunteer(ctx, "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = s.UpsertVolunteer(ctx, &model.Volunteer{})
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestStore_Events(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.UpsertEvent(ctx, &model.Event{ID: "e2", Name: "Second"}))
	require.NoError(t, s.UpsertEvent(ctx, &model.Event{ID: "e1", Name: "First"}))
	require.NoError(t, s.UpsertEvent(ctx, &model.Event{ID: "e1", Name: "First (renamed)"}))

	e, err := s.GetEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "First (renamed)", e.Name)

	list, err := s.ListEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "e1", list[0].ID)

	_, err = s.GetEvent(ctx, "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestStore_InsertMatchConflict(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.InsertMatch(ctx, newMatch("m1", "v1", "e1")))

	err := s.InsertMatch(ctx, newMatch("m2", "v1", "e1"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrConflict))
	id, ok := model.ConflictMatchID(err)
	assert.True(t, ok)
	assert.Equal(t, "m1", id)

	// Conflicts apply regardless of status
	existing, err := s.GetMatch(ctx, "m1")
	require.NoError(t, err)
	existing.Status = model.StatusCancelled
	require.NoError(t, s.UpdateMatch(ctx, existing))
	err = s.InsertMatch(ctx, newMatch("m3", "v1", "e1"))
	assert.True(t, errors.Is(err, model.ErrConflict))

	// Duplicate id for a different pair
	err = s.InsertMatch(ctx, newMatch("m1", "v2", "e2"))
	assert.True(t, errors.Is(err, model.ErrInvalidInput))
}

func TestStore_InsertMatchConcurrent(t *testing.T) {
	ctx := context.Background()
	s := New()

	const workers = 20
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.InsertMatch(ctx, newMatch(fmt.Sprintf("m%02d", i), "v1", "e1"))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, errors.Is(err, model.ErrConflict))
		}
	}
	assert.Equal(t, 1, succeeded)

	all, err := s.ListMatches(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_MatchQueries(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.InsertMatch(ctx, newMatch("m3", "v1", "e2")))
	require.NoError(t, s.InsertMatch(ctx, newMatch("m1", "v1", "e1")))
	require.NoError(t, s.InsertMatch(ctx, newMatch("m2", "v2", "e1")))

	byVolunteer, err := s.GetMatchesByVolunteer(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, byVolunteer, 2)
	assert.Equal(t, "m1", byVolunteer[0].ID)
	assert.Equal(t, "m3", byVolunteer[1].ID)

	byEvent, err := s.GetMatchesByEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)

	none, err := s.GetMatchesByEvent(ctx, "e9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	pair, err := s.GetMatchByPair(ctx, "v2", "e1")
	require.NoError(t, err)
	assert.Equal(t, "m2", pair.ID)

	_, err = s.GetMatchByPair(ctx, "v2", "e2")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestStore_UpdateMatch(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.InsertMatch(ctx, newMatch("m1", "v1", "e1")))

	later := time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC)
	update := &model.Match{ID: "m1", VolunteerID: "ignored", Status: model.StatusCompleted, Score: 80, UpdatedAt: later}
	require.NoError(t, s.UpdateMatch(ctx, update))

	m, err := s.GetMatch(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, m.Status)
	assert.Equal(t, later, m.UpdatedAt)
	assert.Equal(t, "v1", m.VolunteerID)

	err = s.UpdateMatch(ctx, &model.Match{ID: "missing"})
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestStore_DeleteMatchFreesPair(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.InsertMatch(ctx, newMatch("m1", "v1", "e1")))

	require.NoError(t, s.DeleteMatch(ctx, "m1"))

	_, err := s.GetMatch(ctx, "m1")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = s.DeleteMatch(ctx, "m1")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	assert.NoError(t, s.InsertMatch(ctx, newMatch("m2", "v1", "e1")))
}
