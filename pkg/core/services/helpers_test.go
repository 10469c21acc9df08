package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/memstore"
)

// fixedNow pins the service clock for the duration of a test
func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	original := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = original })
}

var testNow = time.Date(2023, 11, 1, 9, 0, 0, 0, time.UTC)

type notification struct {
	volunteerID string
	message     string
}

// recordingNotifier captures notifications
type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(ctx context.Context, volunteerID, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{volunteerID, message})
}

func (n *recordingNotifier) Sent() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.sent...)
}

// newSeededStore returns a store holding the volunteers and events used across service tests
func newSeededStore(t *testing.T) *memstore.Store {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	volunteers := []model.Volunteer{
		{ID: "v1", Name: "John Smith", Email: "john.smith@example.com", Location: "NY", Skills: []string{"First Aid", "Driving"}, Availability: []string{"2023-11-15"}},
		{ID: "v2", Name: "Jane Doe", Location: "Boston", Skills: []string{"Teaching"}, Availability: []string{"2023-11-10"}},
		{ID: "v3", Name: "Michael Johnson", Location: "NY", Skills: []string{"First Aid"}},
	}
	for i := range volunteers {
		require.NoError(t, store.UpsertVolunteer(ctx, &volunteers[i]))
	}

	events := []model.Event{
		{ID: "e1", Name: "Community Food Drive", Date: "2023-11-15", Location: "NY", RequiredSkills: []string{"First Aid", "Driving"}, Urgency: model.UrgencyMedium, Status: model.EventStatusActive},
		{ID: "e2", Name: "Disaster Response Training", Date: "2023-11-10", Location: "Boston", RequiredSkills: []string{"Teaching"}, Urgency: model.UrgencyHigh, Status: model.EventStatusActive},
		{ID: "e3", Name: "Past Cleanup", Date: "2023-10-01", Location: "NY", RequiredSkills: []string{"First Aid"}, Urgency: model.UrgencyLow, Status: model.EventStatusActive},
	}
	for i := range events {
		require.NoError(t, store.UpsertEvent(ctx, &events[i]))
	}

	return store
}

// faultyStore wraps a memstore and fails selected operations
type faultyStore struct {
	*memstore.Store
	getEventErr      error
	listMatchesErr   error
	listVolunteerErr error
	insertErr        error
	updateErr        error
}

func (f *faultyStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	if f.getEventErr != nil {
		return nil, f.getEventErr
	}
	return f.Store.GetEvent(ctx, id)
}

func (f *faultyStore) ListMatches(ctx context.Context) ([]model.Match, error) {
	if f.listMatchesErr != nil {
		return nil, f.listMatchesErr
	}
	return f.Store.ListMatches(ctx)
}

func (f *faultyStore) ListVolunteers(ctx context.Context) ([]model.Volunteer, error) {
	if f.listVolunteerErr != nil {
		return nil, f.listVolunteerErr
	}
	return f.Store.ListVolunteers(ctx)
}

func (f *faultyStore) InsertMatch(ctx context.Context, m *model.Match) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	return f.Store.InsertMatch(ctx, m)
}

func (f *faultyStore) UpdateMatch(ctx context.Context, m *model.Match) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.Store.UpdateMatch(ctx, m)
}
