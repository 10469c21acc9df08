package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/volunteer-matching/pkg/core/model"
	"github.com/jakechorley/volunteer-matching/pkg/db"
)

// now is replaced in tests
var now = time.Now

// today returns the current UTC date in ISO format
func today() string {
	return now().UTC().Format(model.DateLayout)
}

// requireID rejects empty or blank identifiers
func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s id is required: %w", kind, model.ErrInvalidInput)
	}
	return nil
}

// eventName looks up an event's name for notification text.
// A missing event yields an empty name, any other failure is returned.
func eventName(ctx context.Context, events db.EventStore, eventID string) (string, error) {
	event, err := events.GetEvent(ctx, eventID)
	if errors.Is(err, model.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}
	return event.Name, nil
}
