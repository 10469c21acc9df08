package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// DefaultQueueSize is used when a non-positive size is configured
const DefaultQueueSize = 64

// sendTimeout bounds a single delivery attempt
const sendTimeout = 30 * time.Second

// Sender performs the actual delivery for a Queue
type Sender interface {
	Send(ctx context.Context, volunteerID, message string) error
}

type job struct {
	volunteerID string
	message     string
}

// Queue is an asynchronous Notifier. Notifications are buffered and delivered
// in order by a single worker. When the buffer is full the notification is
// dropped and a warning is logged.
type Queue struct {
	sender Sender
	logger *zap.Logger
	jobs   chan job
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewQueue starts the delivery worker
func NewQueue(sender Sender, size int, logger *zap.Logger) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}

	q := &Queue{
		sender: sender,
		logger: logger,
		jobs:   make(chan job, size),
		done:   make(chan struct{}),
	}
	go q.run()
	return q
}

// Notify enqueues a notification without waiting for delivery.
// The caller's context is not used for delivery since it usually ends with the request.
func (q *Queue) Notify(ctx context.Context, volunteerID, message string) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		q.logger.Warn("Notification dropped, queue closed", logging.VolunteerID(volunteerID))
		return
	}

	select {
	case q.jobs <- job{volunteerID: volunteerID, message: message}:
	default:
		q.logger.Warn("Notification dropped, queue full",
			logging.VolunteerID(volunteerID),
			zap.Int("capacity", cap(q.jobs)))
	}
}

// Close stops accepting notifications and waits for queued ones to be delivered
// or for ctx to end
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.jobs)
	}
	q.mu.Unlock()

	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.done)

	for j := range q.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := q.sender.Send(ctx, j.volunteerID, j.message)
		cancel()

		if err != nil {
			q.logger.Error("Failed to deliver notification",
				logging.VolunteerID(j.volunteerID),
				zap.Error(err))
			continue
		}
		q.logger.Debug("Notification delivered", logging.VolunteerID(j.volunteerID))
	}
}
