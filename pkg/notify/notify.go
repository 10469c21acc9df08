package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/utils/logging"
)

// Notifier delivers a message to a volunteer. Delivery is fire and forget:
// implementations must not block the caller on the outcome.
type Notifier interface {
	Notify(ctx context.Context, volunteerID, message string)
}

// LogNotifier records notifications as log lines
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, volunteerID, message string) {
	n.logger.Info("Notification sent",
		logging.VolunteerID(volunteerID),
		zap.String("message", message))
}

// Nop discards every notification
type Nop struct{}

func (Nop) Notify(context.Context, string, string) {}

func eventLabel(eventName, fallback string) string {
	if eventName == "" {
		return fallback
	}
	return eventName
}

// MatchCreated is sent when a match is created on request
func MatchCreated(eventName string) string {
	return fmt.Sprintf("You have been matched with %s", eventLabel(eventName, "an event"))
}

// MatchProposed is sent when the auto-matcher creates a pending match
func MatchProposed(eventName string, score int) string {
	return fmt.Sprintf("You have been proposed for %s (match score %d), please confirm", eventLabel(eventName, "an event"), score)
}

// StatusChanged describes a match moving to a new status
func StatusChanged(eventName string, status model.MatchStatus) string {
	label := eventLabel(eventName, "the event")
	switch status {
	case model.StatusCompleted:
		return fmt.Sprintf("%s has been marked as completed", label)
	case model.StatusCancelled:
		return fmt.Sprintf("%s has been cancelled", label)
	case model.StatusMatched:
		return fmt.Sprintf("%s has been confirmed", label)
	case model.StatusPending:
		return fmt.Sprintf("%s is pending confirmation", label)
	}
	return fmt.Sprintf("%s status is now %s", label, status)
}

// MatchRemoved is sent when a match is deleted
func MatchRemoved(eventName string) string {
	return fmt.Sprintf("match with %s has been removed", eventLabel(eventName, "an event"))
}
