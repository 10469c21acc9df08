package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/memstore"
)

func TestLogNotifier(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	n := NewLogNotifier(zap.New(core))

	n.Notify(context.Background(), "v1", MatchCreated("Community Food Drive"))

	entries := observed.FilterMessage("Notification sent").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "v1", fields["volunteer_id"])
	assert.Equal(t, "You have been matched with Community Food Drive", fields["message"])
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Food Drive has been marked as completed", StatusChanged("Food Drive", model.StatusCompleted))
	assert.Equal(t, "Food Drive has been cancelled", StatusChanged("Food Drive", model.StatusCancelled))
	assert.Equal(t, "Food Drive has been confirmed", StatusChanged("Food Drive", model.StatusMatched))
	assert.Equal(t, "the event is pending confirmation", StatusChanged("", model.StatusPending))
	assert.Equal(t, "match with Food Drive has been removed", MatchRemoved("Food Drive"))
	assert.Equal(t, "match with an event has been removed", MatchRemoved(""))
	assert.Contains(t, MatchProposed("Food Drive", 80), "match score 80")
}

type recordingSender struct {
	mu    sync.Mutex
	sent  []job
	err   error
	block chan struct{}
}

func (s *recordingSender) Send(ctx context.Context, volunteerID, message string) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, job{volunteerID: volunteerID, message: message})
	return s.err
}

func (s *recordingSender) Sent() []job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]job(nil), s.sent...)
}

func TestQueue_DeliversInOrderAndDrainsOnClose(t *testing.T) {
	sender := &recordingSender{}
	q := NewQueue(sender, 10, zap.NewNop())

	q.Notify(context.Background(), "v1", "first")
	q.Notify(context.Background(), "v2", "second")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.Close(ctx))

	assert.Equal(t, []job{{"v1", "first"}, {"v2", "second"}}, sender.Sent())

	// Notify after close is dropped, not a panic
	q.Notify(context.Background(), "v3", "late")
	assert.Len(t, sender.Sent(), 2)
}

func TestQueue_DropsWhenFull(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	sender := &recordingSender{block: make(chan struct{})}
	q := NewQueue(sender, 1, zap.New(core))

	// One job may be held by the blocked worker and one by the buffer
	for i := 0; i < 5; i++ {
		q.Notify(context.Background(), "v1", "msg")
	}

	assert.NotEmpty(t, observed.FilterMessage("Notification dropped, queue full").All())

	close(sender.block)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, q.Close(ctx))
	assert.LessOrEqual(t, len(sender.Sent()), 2)
}

func TestQueue_LogsSendFailures(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	sender := &recordingSender{err: errors.New("smtp down")}
	q := NewQueue(sender, 0, zap.New(core))

	q.Notify(context.Background(), "v1", "msg")
	require.NoError(t, q.Close(context.Background()))

	entries := observed.FilterMessage("Failed to deliver notification").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "v1", entries[0].ContextMap()["volunteer_id"])
}

type fakeMailer struct {
	to, subject, body string
	err               error
}

func (m *fakeMailer) SendEmail(ctx context.Context, to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestEmailSender(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	require.NoError(t, store.UpsertVolunteer(ctx, &model.Volunteer{ID: "v1", Name: "John", Email: "john@example.com"}))
	require.NoError(t, store.UpsertVolunteer(ctx, &model.Volunteer{ID: "v2", Name: "Jane"}))

	mailer := &fakeMailer{}
	sender := NewEmailSender(store, mailer)

	require.NoError(t, sender.Send(ctx, "v1", "You have been matched with Food Drive"))
	assert.Equal(t, "john@example.com", mailer.to)
	assert.Equal(t, emailSubject, mailer.subject)
	assert.Contains(t, mailer.body, "Hi John")
	assert.Contains(t, mailer.body, "You have been matched with Food Drive")

	err := sender.Send(ctx, "v2", "msg")
	assert.ErrorContains(t, err, "no email address")

	err = sender.Send(ctx, "missing", "msg")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	mailer.err = errors.New("quota exceeded")
	err = sender.Send(ctx, "v1", "msg")
	assert.ErrorContains(t, err, "quota exceeded")
}
